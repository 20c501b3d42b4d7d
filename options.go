package mandel

// RenderOption configures a render.
//
// Example:
//
//	stats, err := mandel.Render(ctx, cfg, sink,
//	    mandel.WithProgress(func(written, total int) {
//	        log.Printf("%d/%d rows", written, total)
//	    }))
type RenderOption func(*renderOptions)

// renderOptions holds optional configuration for a render.
type renderOptions struct {
	progress func(written, total int)

	// coordinate is called by a column driver right before it submits a
	// pixel. Tests use it to observe row ordering.
	coordinate func(row, col int)
}

// WithProgress installs a callback invoked by the writer after each row
// is written, with the number of rows written so far and the total. The
// callback runs on the writer goroutine while every column driver waits
// at the row barrier, so it should return quickly.
func WithProgress(fn func(written, total int)) RenderOption {
	return func(o *renderOptions) {
		o.progress = fn
	}
}
