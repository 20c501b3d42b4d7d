// Package escape implements the Mandelbrot escape-time function.
package escape

// MaxIterations caps the orbit length. Points that never escape within
// MaxIterations steps are treated as members of the set.
const MaxIterations = 255

// Iterations returns the number of z <- z*z + c steps taken from z = 0
// before |z|^2 exceeds 4, capped at MaxIterations.
func Iterations(c complex128) int {
	cx, cy := real(c), imag(c)
	x, y := 0.0, 0.0
	n := 0
	for x*x+y*y <= 4 && n < MaxIterations {
		x, y = x*x-y*y+cx, 2*x*y+cy
		n++
	}
	return n
}

// Intensity maps c to an 8-bit gray level. Interior points map to 0
// (black); points that escape quickly map close to MaxIterations.
func Intensity(c complex128) uint8 {
	return uint8(MaxIterations - Iterations(c))
}
