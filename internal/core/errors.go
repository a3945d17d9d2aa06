package core

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfiguration is returned when pipeline settings cannot produce a page.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrStaleReference is returned when a row identity is not on the current page.
	ErrStaleReference = errors.New("stale row reference")

	// ErrSelectionDisabled is returned by selection operations on an engine built WithoutSelection.
	ErrSelectionDisabled = errors.New("selection disabled")
)

// configError wraps ErrInvalidConfiguration with the offending field.
func configError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfiguration, fmt.Sprintf(format, args...))
}

// IsInvalidConfiguration reports whether err stems from a rejected configuration.
func IsInvalidConfiguration(err error) bool {
	return errors.Is(err, ErrInvalidConfiguration)
}

// IsStaleReference reports whether err stems from a row identity that left the page.
func IsStaleReference(err error) bool {
	return errors.Is(err, ErrStaleReference)
}
