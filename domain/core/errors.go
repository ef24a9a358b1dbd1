package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Load-time errors
	ErrDataFormat        = errors.New("data format error")
	ErrHeaderMismatch    = fmt.Errorf("%w: header does not match expected schema", ErrDataFormat)
	ErrUnsupportedFormat = fmt.Errorf("%w: unsupported file format", ErrDataFormat)

	// Statistical validity errors
	ErrInsufficientData = errors.New("insufficient data for analysis")
	ErrTooFewGroups     = fmt.Errorf("%w: too few groups for comparison", ErrInsufficientData)

	// Lookup errors
	ErrNotFound       = errors.New("resource not found")
	ErrRunNotFound    = fmt.Errorf("%w: run", ErrNotFound)
	ErrResultNotFound = fmt.Errorf("%w: test result", ErrNotFound)
)

// NewHeaderMismatchError reports the columns missing from a header row
func NewHeaderMismatchError(missing []string) error {
	return fmt.Errorf("%w: missing columns %v", ErrHeaderMismatch, missing)
}

// NewInsufficientDataError reports a group that is below the minimum sample count
func NewInsufficientDataError(group string, n, min int) error {
	return fmt.Errorf("%w: group %q has %d samples, minimum is %d", ErrInsufficientData, group, n, min)
}

// IsDataFormat checks whether err is a fatal load error
func IsDataFormat(err error) bool {
	return errors.Is(err, ErrDataFormat)
}

// IsInsufficientData checks whether err is a statistical validity error
func IsInsufficientData(err error) bool {
	return errors.Is(err, ErrInsufficientData)
}
