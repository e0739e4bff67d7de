package fde

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfiguration is returned when a Config is inconsistent.
	// Every *ConfigError matches it via errors.Is.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrInvalidInput is returned when a point cloud does not match the
	// configured dimension. Every *InputError matches it via errors.Is.
	ErrInvalidInput = errors.New("invalid input")
)

// ConfigError describes which configuration field is invalid and why.
type ConfigError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s=%v: %s", e.Field, e.Value, e.Reason)
}

func (e *ConfigError) Unwrap() error { return ErrInvalidConfiguration }

// InputError indicates a point cloud whose flat length is not a multiple of
// the configured dimension.
type InputError struct {
	Length    int
	Dimension int
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid input: point cloud length %d is not a multiple of dimension %d", e.Length, e.Dimension)
}

func (e *InputError) Unwrap() error { return ErrInvalidInput }
