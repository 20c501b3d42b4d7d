package mandel

import (
	"image"

	"github.com/gogpu/mandel/internal/escape"
)

// Reference renders r on the calling goroutine, row by row. It uses the
// same escape-time function and pixel mapping as Render and therefore
// produces the same pixels.
func Reference(r Region) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, r.Width, r.Height))
	for y := range r.Height {
		row := img.Pix[y*img.Stride : y*img.Stride+r.Width]
		for x := range row {
			row[x] = escape.Intensity(r.Point(x, y))
		}
	}
	return img
}
