// Package gen implements the type-resolution engine and the per-target
// renderers: it turns normalized column descriptors into TypeScript
// declarations for the configured targets.
package gen

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure cases.
var (
	// ErrUnsupportedType indicates a column type the fidelity-validator
	// target cannot express.
	ErrUnsupportedType = errors.New("tsgen: unsupported column type")
	// ErrMissingConfig indicates a configuration error.
	ErrMissingConfig = errors.New("tsgen: missing configuration")
	// ErrRenderFailed indicates a rendering failure.
	ErrRenderFailed = errors.New("tsgen: rendering failed")
)

// UnsupportedTypeError is returned when a column classifies as unknown,
// no override applies, and the active target is the Zod generator. The
// other targets fall back to `any` instead of failing.
type UnsupportedTypeError struct {
	Table   string // entity name, filled in by the renderer
	Column  string
	RawType string
}

// Error implements the error interface.
func (e *UnsupportedTypeError) Error() string {
	if e.Table != "" {
		return fmt.Sprintf("tsgen: unsupported type %q on column %s.%s", e.RawType, e.Table, e.Column)
	}
	return fmt.Sprintf("tsgen: unsupported type %q on column %s", e.RawType, e.Column)
}

// Is reports whether the target matches the sentinel error for
// UnsupportedTypeError.
func (e *UnsupportedTypeError) Is(target error) bool {
	return target == ErrUnsupportedType
}

// NewUnsupportedTypeError creates a new UnsupportedTypeError.
func NewUnsupportedTypeError(column, rawType string) *UnsupportedTypeError {
	return &UnsupportedTypeError{Column: column, RawType: rawType}
}

// IsUnsupportedType reports whether err is an unsupported-type failure.
func IsUnsupportedType(err error) bool {
	return errors.Is(err, ErrUnsupportedType)
}

// ConfigError represents a configuration error.
type ConfigError struct {
	Option  string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("tsgen: config error for %q (value: %v): %s", e.Option, e.Value, e.Message)
	}
	return fmt.Sprintf("tsgen: config error for %q: %s", e.Option, e.Message)
}

// Is reports whether the target matches the sentinel error for ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrMissingConfig
}

// NewConfigError creates a new ConfigError.
func NewConfigError(option string, value any, message string) *ConfigError {
	return &ConfigError{Option: option, Value: value, Message: message}
}

// RenderError represents a failure while rendering one entity.
type RenderError struct {
	Entity string
	Target string
	Cause  error
}

// Error implements the error interface.
func (e *RenderError) Error() string {
	return fmt.Sprintf("tsgen: render %s for target %s: %s", e.Entity, e.Target, e.Cause)
}

// Unwrap returns the underlying error.
func (e *RenderError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for RenderError.
func (e *RenderError) Is(target error) bool {
	return target == ErrRenderFailed
}
