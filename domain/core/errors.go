package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Schema errors
	ErrColumnNotFound = errors.New("column not found")
	ErrColumnType     = errors.New("column has incompatible type")

	// Statistical validity errors
	ErrInsufficientData   = errors.New("insufficient data for analysis")
	ErrInsufficientGroups = errors.New("fewer than two non-empty groups")
	ErrDegenerateVariance = errors.New("zero within-group variance")
	ErrInvalidContrast    = errors.New("invalid contrast specification")
	ErrMissingGroup       = errors.New("referenced group has no members")
	ErrUnsupportedMethod  = errors.New("unsupported correlation method")
)

// Error constructors with context

func NewColumnNotFoundError(column string) error {
	return fmt.Errorf("%w: %q", ErrColumnNotFound, column)
}

func NewColumnTypeError(column, want, got string) error {
	return fmt.Errorf("%w: %q must be %s, is %s", ErrColumnType, column, want, got)
}

func NewInsufficientDataError(need, got int) error {
	return fmt.Errorf("%w: need at least %d observations, have %d", ErrInsufficientData, need, got)
}

func NewInvalidContrastError(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidContrast, reason)
}

func NewMissingGroupError(label string) error {
	return fmt.Errorf("%w: %q", ErrMissingGroup, label)
}

// Error checking helpers

func IsSchemaError(err error) bool {
	return errors.Is(err, ErrColumnNotFound) ||
		errors.Is(err, ErrColumnType)
}

// IsStatisticalError reports whether err indicates a statistic that could
// not validly be computed from the data, as opposed to schema misuse.
func IsStatisticalError(err error) bool {
	return errors.Is(err, ErrInsufficientData) ||
		errors.Is(err, ErrInsufficientGroups) ||
		errors.Is(err, ErrDegenerateVariance) ||
		errors.Is(err, ErrInvalidContrast) ||
		errors.Is(err, ErrMissingGroup)
}
