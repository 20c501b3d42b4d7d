package mandel

// Region maps pixel coordinates onto the complex plane:
//
//	c(col, row) = TopLeft + Span * (col/Width, row/Width)
//
// Both axes scale by Width so pixels stay square. Row 0 is closest to
// TopLeft and is the top row of the rendered image.
type Region struct {
	Width   int
	Height  int
	TopLeft complex128
	Span    float64
}

// Point returns the complex coordinate of pixel (col, row).
func (r Region) Point(col, row int) complex128 {
	w := float64(r.Width)
	return complex(
		float64(col)/w*r.Span+real(r.TopLeft),
		float64(row)/w*r.Span+imag(r.TopLeft),
	)
}

// Pixels returns Width * Height.
func (r Region) Pixels() int {
	return r.Width * r.Height
}
