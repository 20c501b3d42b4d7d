package bitmap

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

const (
	fileHeaderLen = 14
	infoHeaderLen = 40

	// HeaderLen is the offset of the pixel data.
	HeaderLen = fileHeaderLen + infoHeaderLen

	bitsPerPixel  = 24
	bytesPerPixel = bitsPerPixel / 8
)

// ErrTooLarge is returned when an image does not fit the 32-bit size
// fields of the BMP headers.
var ErrTooLarge = errors.New("bitmap: image too large")

// fileHeader is the 14-byte BITMAPFILEHEADER.
type fileHeader struct {
	Type     uint16
	Size     uint32
	Reserved uint32
	OffBits  uint32
}

// infoHeader is the 40-byte BITMAPINFOHEADER.
type infoHeader struct {
	Size          uint32
	Width         int32
	Height        int32
	Planes        uint16
	BitCount      uint16
	Compression   uint32
	SizeImage     uint32
	XPelsPerMeter int32
	YPelsPerMeter int32
	ClrUsed       uint32
	ClrImportant  uint32
}

// RowStride returns the number of bytes one row occupies in the file,
// including padding to a four-byte boundary.
func RowStride(width int) int {
	return (bytesPerPixel*width + 3) &^ 3
}

// FileSize returns the total size in bytes of a width x height image.
func FileSize(width, height int) (int64, error) {
	if width <= 0 || height <= 0 {
		return 0, fmt.Errorf("bitmap: invalid dimensions %dx%d", width, height)
	}
	if width > math.MaxInt32 || height > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %dx%d", ErrTooLarge, width, height)
	}
	size := int64(HeaderLen) + int64(RowStride(width))*int64(height)
	if size > math.MaxUint32 {
		return 0, fmt.Errorf("%w: %dx%d needs %d bytes", ErrTooLarge, width, height, size)
	}
	return size, nil
}

// writeHeader writes the file and info headers for a bottom-up image.
func writeHeader(w io.Writer, width, height int) error {
	size, err := FileSize(width, height)
	if err != nil {
		return err
	}

	fh := fileHeader{
		Type:    0x4D42, // "BM"
		Size:    uint32(size),
		OffBits: HeaderLen,
	}
	ih := infoHeader{
		Size:      infoHeaderLen,
		Width:     int32(width),
		Height:    int32(height),
		Planes:    1,
		BitCount:  bitsPerPixel,
		SizeImage: uint32(size - HeaderLen),
	}

	if err := binary.Write(w, binary.LittleEndian, &fh); err != nil {
		return fmt.Errorf("bitmap: write file header: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, &ih); err != nil {
		return fmt.Errorf("bitmap: write info header: %w", err)
	}
	return nil
}
