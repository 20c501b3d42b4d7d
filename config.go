package mandel

import (
	"fmt"
	"math"
)

// Limits enforced before any goroutine or output file is created.
const (
	// MaxDimension bounds the image side. One column driver runs per
	// pixel column, and a 24-bit bitmap of this size stays under the
	// 4 GiB limit of the BMP size field.
	MaxDimension = 32768

	// MaxEngines bounds the engine pool.
	MaxEngines = 65536
)

// Config holds the startup parameters of a render.
type Config struct {
	// Dimension is the width and height of the square image in pixels.
	Dimension int

	// Engines is the number of compute goroutines.
	Engines int

	// TopLeftX and TopLeftY locate pixel (0, 0) on the complex plane.
	TopLeftX float64
	TopLeftY float64

	// Span is the width and height of the rendered square of the plane.
	Span float64
}

// Validate checks every field. It returns a *ConfigError for missing or
// invalid values and a *ResourceError for values beyond the limits.
func (c Config) Validate() error {
	switch {
	case c.Dimension <= 0:
		return &ConfigError{Field: "Dimension", Reason: fmt.Sprintf("must be positive, got %d", c.Dimension)}
	case c.Engines <= 0:
		return &ConfigError{Field: "Engines", Reason: fmt.Sprintf("must be positive, got %d", c.Engines)}
	case !finite(c.TopLeftX):
		return &ConfigError{Field: "TopLeftX", Reason: "must be finite"}
	case !finite(c.TopLeftY):
		return &ConfigError{Field: "TopLeftY", Reason: "must be finite"}
	case !finite(c.Span) || c.Span <= 0:
		return &ConfigError{Field: "Span", Reason: fmt.Sprintf("must be a finite positive number, got %v", c.Span)}
	}

	if c.Dimension > MaxDimension {
		return &ResourceError{Resource: "dimension", Requested: int64(c.Dimension), Limit: MaxDimension}
	}
	if c.Engines > MaxEngines {
		return &ResourceError{Resource: "engines", Requested: int64(c.Engines), Limit: MaxEngines}
	}
	return nil
}

// Region returns the pixel-to-plane mapping described by c.
func (c Config) Region() Region {
	return Region{
		Width:   c.Dimension,
		Height:  c.Dimension,
		TopLeft: complex(c.TopLeftX, c.TopLeftY),
		Span:    c.Span,
	}
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
