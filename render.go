package mandel

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/gogpu/mandel/internal/escape"
	"github.com/gogpu/mandel/internal/parallel"
)

// Stats summarizes a completed render.
type Stats struct {
	// Rows is the number of rows written.
	Rows int `json:"rows"`

	// Pixels is the number of pixels computed.
	Pixels int `json:"pixels"`

	// EngineJobs holds the number of pixels each engine computed.
	EngineJobs []int64 `json:"engine_jobs"`

	// Elapsed is the wall time from the first goroutine start to the
	// last row written.
	Elapsed time.Duration `json:"elapsed_ns"`
}

// renderer is the rendering context shared by every goroutine of one
// render. It is built once, lives for the whole run, and is torn down
// after all engines, column drivers and the writer have exited.
type renderer struct {
	region Region

	engines   *parallel.EnginePool
	assembler *parallel.RowAssembler

	// barrier has Width+1 parties: every column driver plus the writer.
	barrier *parallel.Barrier

	// rows is the number of rows still to be written. Only the writer
	// decrements it; drivers read it to pick their next row and to stop.
	rows atomic.Int64

	sink Sink
	opts renderOptions
}

// Render computes the escape-time image described by cfg and streams it
// to sink one row at a time, bottom row first.
//
// cfg is validated before any goroutine starts. On success the sink is
// closed; on failure or cancellation it is aborted and Render returns the
// cause (ctx.Err() when ctx was cancelled).
func Render(ctx context.Context, cfg Config, sink Sink, opts ...RenderOption) (*Stats, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := renderOptions{}
	for _, opt := range opts {
		opt(&o)
	}

	region := cfg.Region()
	r := &renderer{
		region: region,
		sink:   sink,
		opts:   o,
	}
	r.assembler = parallel.NewRowAssembler(region.Width)
	r.barrier = parallel.NewBarrier(region.Width + 1)
	r.engines = parallel.NewEnginePool(cfg.Engines, escape.Intensity, r.assembler)
	r.rows.Store(int64(region.Height))

	log := Logger()
	log.Info("render started",
		"width", region.Width, "height", region.Height,
		"engines", cfg.Engines, "top_left", region.TopLeft, "span", region.Span)

	start := time.Now()
	err := r.run(ctx)
	elapsed := time.Since(start)

	if err != nil {
		if abortErr := sink.Abort(); abortErr != nil {
			log.Warn("abort output", "error", abortErr)
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		log.Warn("render aborted", "rows_remaining", r.rows.Load(), "error", err)
		return nil, err
	}

	stats := &Stats{
		Rows:       region.Height,
		Pixels:     region.Pixels(),
		EngineJobs: r.engines.Jobs(),
		Elapsed:    elapsed,
	}
	log.Info("render finished", "rows", stats.Rows, "elapsed", elapsed)
	return stats, nil
}

// RenderFile renders cfg into a 24-bit BMP at path. The file is either
// fully written or absent when RenderFile returns.
func RenderFile(ctx context.Context, cfg Config, path string, opts ...RenderOption) (*Stats, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	f, err := createBitmap(path, cfg.Dimension, cfg.Dimension)
	if err != nil {
		return nil, err
	}
	stats, err := Render(ctx, cfg, f, opts...)
	if err != nil {
		return nil, err
	}
	Logger().Info("bitmap written", "path", f.Path())
	return stats, nil
}

// run starts one goroutine per column plus the writer and waits for all
// of them. The engine pool is closed before run returns.
func (r *renderer) run(ctx context.Context) error {
	defer r.engines.Close()

	g, gctx := errgroup.WithContext(ctx)

	// Waiting at the barrier is not interruptible by itself; breaking it
	// releases every party once the group is cancelled.
	stop := context.AfterFunc(gctx, r.barrier.Break)
	defer stop()

	for col := range r.region.Width {
		g.Go(func() error {
			return r.column(gctx, col)
		})
	}
	g.Go(func() error {
		return r.write(gctx)
	})

	return g.Wait()
}

// column drives one pixel column from the top row index down: submit the
// pixel of the current row, wait for its result, then meet every other
// driver and the writer at the barrier before moving on.
func (r *renderer) column(ctx context.Context, col int) error {
	for {
		remaining := r.rows.Load()
		if remaining <= 0 {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		row := int(remaining) - 1

		if r.opts.coordinate != nil {
			r.opts.coordinate(row, col)
		}
		job := parallel.Job{
			Point:  r.region.Point(col, row),
			Column: col,
		}
		e := r.engines.Engine(route(row, col, r.engines.Len()))
		if err := e.Do(ctx, job); err != nil {
			return err
		}

		if err := r.barrier.Wait(); err != nil {
			return fmt.Errorf("column %d, row %d: %w", col, row, err)
		}
	}
}

// write waits for each assembled row, hands it to the sink, advances the
// row counter and joins the barrier. After the last row it closes the
// sink.
func (r *renderer) write(ctx context.Context) error {
	total := r.region.Height
	log := Logger()

	for {
		select {
		case <-r.assembler.Complete():
		case <-ctx.Done():
			return ctx.Err()
		}

		row := int(r.rows.Load()) - 1
		if row < 0 {
			panic(&ProtocolViolation{Op: "write", Detail: "row completed after the last row was written"})
		}
		err := r.assembler.Flush(func(pix []uint8) error {
			return r.sink.WriteRow(row, pix)
		})
		if err != nil {
			return fmt.Errorf("mandel: write row %d: %w", row, err)
		}

		remaining := r.rows.Add(-1)
		r.assembler.Reset()

		written := total - int(remaining)
		log.Debug("row written", "row", row, "written", written, "total", total)
		if r.opts.progress != nil {
			r.opts.progress(written, total)
		}

		if err := r.barrier.Wait(); err != nil {
			return fmt.Errorf("writer, row %d: %w", row, err)
		}

		if remaining == 0 {
			if err := r.sink.Close(); err != nil {
				return fmt.Errorf("mandel: close output: %w", err)
			}
			return nil
		}
	}
}
