package mandel

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/mandel/internal/bitmap"
)

// Sink receives assembled rows from the writer.
//
// WriteRow is called once per row with y = Height-1, Height-2, ..., 0, in
// that order. pix is only valid for the duration of the call. Close is
// called after the last row; Abort is called instead when the render
// fails or is cancelled, and must leave no partial output behind.
type Sink interface {
	WriteRow(y int, pix []uint8) error
	Close() error
	Abort() error
}

// CreateBitmap returns a Sink that streams a 24-bit BMP to path. The file
// appears at path only once every row has been written.
func CreateBitmap(path string, width, height int) (Sink, error) {
	f, err := createBitmap(path, width, height)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func createBitmap(path string, width, height int) (*bitmap.File, error) {
	f, err := bitmap.Create(path, width, height)
	if err != nil {
		if errors.Is(err, bitmap.ErrTooLarge) {
			return nil, &ResourceError{Resource: "bitmap size", Requested: int64(width) * int64(height), Limit: MaxDimension * MaxDimension}
		}
		return nil, err
	}
	return f, nil
}

// ImageSink collects rows into an in-memory grayscale image.
type ImageSink struct {
	img    *image.Gray
	rows   int
	closed bool
}

// NewImageSink creates a sink for a width x height image.
func NewImageSink(width, height int) *ImageSink {
	return &ImageSink{img: image.NewGray(image.Rect(0, 0, width, height))}
}

// WriteRow copies pix into row y.
func (s *ImageSink) WriteRow(y int, pix []uint8) error {
	b := s.img.Bounds()
	if y < b.Min.Y || y >= b.Max.Y {
		return fmt.Errorf("mandel: row %d outside image of height %d", y, b.Dy())
	}
	if len(pix) != b.Dx() {
		return fmt.Errorf("mandel: row %d has %d pixels, want %d", y, len(pix), b.Dx())
	}
	copy(s.img.Pix[y*s.img.Stride:], pix)
	s.rows++
	return nil
}

// Close marks the image complete.
func (s *ImageSink) Close() error {
	s.closed = true
	return nil
}

// Abort discards nothing; the partial image stays readable.
func (s *ImageSink) Abort() error {
	return nil
}

// Image returns the collected image.
func (s *ImageSink) Image() *image.Gray {
	return s.img
}

// Rows returns the number of rows written.
func (s *ImageSink) Rows() int {
	return s.rows
}

// Closed reports whether Close has been called.
func (s *ImageSink) Closed() bool {
	return s.closed
}
