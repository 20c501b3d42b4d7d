package mandel

import (
	"errors"
	"fmt"

	"github.com/gogpu/mandel/internal/parallel"
)

// Error categories. Typed errors unwrap to one of these so callers can
// branch with errors.Is.
var (
	// ErrInvalidConfig reports a missing or out-of-range startup parameter.
	ErrInvalidConfig = errors.New("mandel: invalid configuration")

	// ErrResourceExhausted reports a configuration whose structures or
	// output would exceed supported limits.
	ErrResourceExhausted = errors.New("mandel: resource exhausted")
)

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return "mandel: invalid config." + e.Field + ": " + e.Reason
}

// Unwrap returns ErrInvalidConfig.
func (e *ConfigError) Unwrap() error { return ErrInvalidConfig }

// ResourceError reports a request beyond a supported limit.
type ResourceError struct {
	Resource  string
	Requested int64
	Limit     int64
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("mandel: %s: requested %d, limit %d", e.Resource, e.Requested, e.Limit)
}

// Unwrap returns ErrResourceExhausted.
func (e *ResourceError) Unwrap() error { return ErrResourceExhausted }

// ProtocolViolation is the panic value raised when the row assembly or
// barrier contract is broken. It indicates a synchronization bug and is
// never returned as an error.
type ProtocolViolation = parallel.ProtocolViolation
