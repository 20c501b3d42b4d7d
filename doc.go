// Package mandel renders Mandelbrot-set escape-time images and streams
// them to storage one row at a time.
//
// # Quick Start
//
//	cfg := mandel.Config{
//	    Dimension: 1024,
//	    Engines:   runtime.GOMAXPROCS(0),
//	    TopLeftX:  -2,
//	    TopLeftY:  -1.5,
//	    Span:      3,
//	}
//	stats, err := mandel.RenderFile(ctx, cfg, "mandel.bmp")
//
// # Architecture
//
// A render runs three kinds of goroutines that share one rendering
// context:
//   - Engines: a fixed pool of compute goroutines. Each owns a one-deep
//     mailbox; it evaluates the submitted point and publishes the result
//     into the row buffer.
//   - Column drivers: one per pixel column. For the current row a driver
//     picks an engine with a pure hash of (row, column), waits for its
//     turn on that engine's mailbox, submits its pixel and waits for the
//     result.
//   - Writer: a single goroutine woken when the last pixel of a row is
//     published. It hands the row to the Sink, advances the row counter
//     and resets the row buffer.
//
// Drivers and the writer meet at a barrier after every row, so no driver
// starts a row before the previous one has been written. Rows therefore
// reach the Sink in strictly descending row index without buffering the
// whole image.
//
// # Coordinate System
//
// Pixel (col, row) maps to TopLeft + Span*(col/Width, row/Width). Row 0
// is the top row of the image and is written last; BMP output stores rows
// bottom-up, so the file displays row 0 at the top.
//
// # Errors
//
// Invalid parameters are reported as *ConfigError and oversized requests
// as *ResourceError before any goroutine starts. A broken synchronization
// contract panics with *ProtocolViolation.
package mandel
