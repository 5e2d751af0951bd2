package fieldode

import (
	"errors"
	"fmt"
)

// Sentinels for errors.Is checks. The typed errors below unwrap to these.
var (
	// ErrInvalidSize reports a non-positive node count.
	ErrInvalidSize = errors.New("fieldode: field size must be positive")
	// ErrDimensionMismatch reports a slice whose length differs from the field size.
	ErrDimensionMismatch = errors.New("fieldode: dimension mismatch")
	// ErrNotConfigured reports an operation issued before Redim or before an initial condition.
	ErrNotConfigured = errors.New("fieldode: field not configured")
)

// InvalidSizeError is returned by Redim for a non-positive node count.
type InvalidSizeError struct {
	N int
}

func (e InvalidSizeError) Error() string {
	return fmt.Sprintf("fieldode: invalid field size %d (must be positive)", e.N)
}

// Unwrap links the error to ErrInvalidSize.
func (e InvalidSizeError) Unwrap() error { return ErrInvalidSize }

// DimensionMismatchError is returned when a supplied slice does not hold
// exactly one value per node.
type DimensionMismatchError struct {
	Want, Got int
}

func (e DimensionMismatchError) Error() string {
	return fmt.Sprintf("fieldode: dimension mismatch: field holds %d nodes, got %d values", e.Want, e.Got)
}

// Unwrap links the error to ErrDimensionMismatch.
func (e DimensionMismatchError) Unwrap() error { return ErrDimensionMismatch }

// NotConfiguredError is returned when an operation runs before the field is
// ready for it. Missing names what has not been set yet.
type NotConfiguredError struct {
	Op      string
	Missing string
}

func (e NotConfiguredError) Error() string {
	return fmt.Sprintf("fieldode: %s called without %s set", e.Op, e.Missing)
}

// Unwrap links the error to ErrNotConfigured.
func (e NotConfiguredError) Unwrap() error { return ErrNotConfigured }
