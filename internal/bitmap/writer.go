package bitmap

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// Writer errors.
var (
	// ErrRowOrder is returned when a row arrives out of bottom-up order.
	ErrRowOrder = errors.New("bitmap: row out of order")

	// ErrIncomplete is returned by Close when fewer rows than the image
	// height have been written.
	ErrIncomplete = errors.New("bitmap: incomplete image")

	// ErrClosed is returned when writing to a closed Writer.
	ErrClosed = errors.New("bitmap: writer closed")
)

// Writer streams a grayscale image into a 24-bit BMP.
//
// Rows are identified by their logical index y, where y = 0 is the top
// of the displayed image. BMP stores rows bottom-up, so WriteRow must be
// called with y = height-1, height-2, ..., 0 in that order.
type Writer struct {
	bw     *bufio.Writer
	width  int
	height int

	// next is the logical index of the next row expected.
	next int

	// scratch holds one encoded row including padding.
	scratch []byte

	closed bool
}

// NewWriter writes the BMP headers for a width x height image to w and
// returns a Writer ready for the first (bottom) row.
func NewWriter(w io.Writer, width, height int) (*Writer, error) {
	bw := bufio.NewWriterSize(w, max(4096, RowStride(width)))
	if err := writeHeader(bw, width, height); err != nil {
		return nil, err
	}
	return &Writer{
		bw:      bw,
		width:   width,
		height:  height,
		next:    height - 1,
		scratch: make([]byte, RowStride(width)),
	}, nil
}

// Remaining returns the number of rows still to be written.
func (w *Writer) Remaining() int { return w.next + 1 }

// WriteRow encodes row y. pix holds one gray level per column.
func (w *Writer) WriteRow(y int, pix []uint8) error {
	if w.closed {
		return ErrClosed
	}
	if y != w.next {
		return fmt.Errorf("%w: got row %d, want %d", ErrRowOrder, y, w.next)
	}
	if len(pix) != w.width {
		return fmt.Errorf("bitmap: row %d has %d pixels, want %d", y, len(pix), w.width)
	}

	for x, v := range pix {
		i := x * bytesPerPixel
		w.scratch[i] = v   // blue
		w.scratch[i+1] = v // green
		w.scratch[i+2] = v // red
	}
	if _, err := w.bw.Write(w.scratch); err != nil {
		return fmt.Errorf("bitmap: write row %d: %w", y, err)
	}
	w.next--
	return nil
}

// Close flushes buffered data. It returns ErrIncomplete if not every row
// has been written. Close does not close the underlying io.Writer.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	if err := w.bw.Flush(); err != nil {
		return fmt.Errorf("bitmap: flush: %w", err)
	}
	if w.next >= 0 {
		return fmt.Errorf("%w: %d of %d rows missing", ErrIncomplete, w.next+1, w.height)
	}
	return nil
}
