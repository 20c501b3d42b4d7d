package main

import (
	"fmt"
	"strconv"

	"github.com/zeromicro/go-zero/core/conf"

	"github.com/gogpu/mandel"
)

// fileConfig is the on-disk form of the render parameters. Every field
// except output is required; conf.Load rejects a file that omits one.
type fileConfig struct {
	Dimension int     `json:"dimension"`
	Engines   int     `json:"engines"`
	TopLeftX  float64 `json:"topLeftX"`
	TopLeftY  float64 `json:"topLeftY"`
	Span      float64 `json:"span"`
	Output    string  `json:"output,optional"`
}

// params is the resolved set of parameters for one run.
type params struct {
	cfg    mandel.Config
	output string
}

// loadFile reads parameters from a YAML, JSON or TOML file. ${VAR}
// references are expanded from the environment.
func loadFile(path string) (params, error) {
	var fc fileConfig
	if err := conf.Load(path, &fc, conf.UseEnv()); err != nil {
		return params{}, fmt.Errorf("%w: %s: %v", mandel.ErrInvalidConfig, path, err)
	}
	return params{
		cfg: mandel.Config{
			Dimension: fc.Dimension,
			Engines:   fc.Engines,
			TopLeftX:  fc.TopLeftX,
			TopLeftY:  fc.TopLeftY,
			Span:      fc.Span,
		},
		output: fc.Output,
	}, nil
}

// parsePositional reads <img_dim> <engines> <UL_X> <UL_Y> <mandel_dim>.
func parsePositional(args []string) (params, error) {
	if len(args) != 5 {
		return params{}, fmt.Errorf("%w: want 5 arguments, got %d", mandel.ErrInvalidConfig, len(args))
	}

	dim, err := strconv.Atoi(args[0])
	if err != nil {
		return params{}, &mandel.ConfigError{Field: "Dimension", Reason: fmt.Sprintf("not an integer: %q", args[0])}
	}
	engines, err := strconv.Atoi(args[1])
	if err != nil {
		return params{}, &mandel.ConfigError{Field: "Engines", Reason: fmt.Sprintf("not an integer: %q", args[1])}
	}

	floats := [3]float64{}
	names := [3]string{"TopLeftX", "TopLeftY", "Span"}
	for i := range floats {
		floats[i], err = strconv.ParseFloat(args[2+i], 64)
		if err != nil {
			return params{}, &mandel.ConfigError{Field: names[i], Reason: fmt.Sprintf("not a number: %q", args[2+i])}
		}
	}

	return params{cfg: mandel.Config{
		Dimension: dim,
		Engines:   engines,
		TopLeftX:  floats[0],
		TopLeftY:  floats[1],
		Span:      floats[2],
	}}, nil
}
