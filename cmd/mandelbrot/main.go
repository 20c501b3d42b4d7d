// Command mandelbrot renders a grayscale Mandelbrot-set image into a
// 24-bit BMP file.
//
// Usage:
//
//	mandelbrot [flags] <img_dim> <engines> <UL_X> <UL_Y> <mandel_dim>
//	mandelbrot [flags] -config render.yaml
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/bytedance/sonic"
	"github.com/google/gops/agent"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/mandel"
)

// Exit codes.
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("mandelbrot", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		output     = fs.String("o", "mandeloutput.bmp", "output file")
		configPath = fs.String("config", "", "read parameters from a YAML, JSON or TOML file")
		verbose    = fs.Bool("v", false, "log every row")
		stats      = fs.Bool("stats", false, "print render statistics as JSON")
		gops       = fs.Bool("gops", false, "start the gops diagnostics agent")
	)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: mandelbrot [flags] <img_dim> <engines> <UL_X> <UL_Y> <mandel_dim>")
		fmt.Fprintln(fs.Output(), "       mandelbrot [flags] -config <file>")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	mandel.SetLogger(logger)
	defer mandel.SetLogger(nil)

	p, err := resolve(fs, *configPath, *output)
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		fs.Usage()
		return exitUsage
	}
	if err := p.cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		if errors.Is(err, mandel.ErrResourceExhausted) {
			return exitFailure
		}
		return exitUsage
	}

	if *gops {
		if err := agent.Listen(agent.Options{}); err != nil {
			logger.Warn("gops agent not started", "error", err)
		} else {
			defer agent.Close()
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	progress := mandel.WithProgress(func(written, total int) {
		if written == total || written%64 == 0 {
			logger.Debug("progress", "rows", written, "total", total)
		}
	})
	st, err := mandel.RenderFile(ctx, p.cfg, p.output, progress)
	if err != nil {
		logger.Error("render failed", "output", p.output, "error", err)
		if errors.Is(err, mandel.ErrInvalidConfig) {
			return exitUsage
		}
		return exitFailure
	}

	pr := message.NewPrinter(language.English)
	pr.Fprintf(stdout, "Bitmap file %s created successfully: %d x %d, %d pixels, %d engines, %v\n",
		p.output, p.cfg.Dimension, p.cfg.Dimension, st.Pixels, p.cfg.Engines, st.Elapsed)

	if *stats {
		data, err := sonic.Marshal(st)
		if err != nil {
			logger.Error("encode statistics", "error", err)
			return exitFailure
		}
		fmt.Fprintln(stdout, string(data))
	}
	return exitOK
}

// resolve picks the parameter source. Positional arguments and -config
// are mutually exclusive; -o given on the command line wins over an
// output path from the config file.
func resolve(fs *flag.FlagSet, configPath, output string) (params, error) {
	if configPath == "" {
		p, err := parsePositional(fs.Args())
		p.output = output
		return p, err
	}

	if fs.NArg() > 0 {
		return params{}, fmt.Errorf("%w: positional arguments cannot be combined with -config", mandel.ErrInvalidConfig)
	}
	p, err := loadFile(configPath)
	if err != nil {
		return params{}, err
	}

	explicit := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "o" {
			explicit = true
		}
	})
	if p.output == "" || explicit {
		p.output = output
	}
	return p, nil
}
