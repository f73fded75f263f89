package trace

import (
	"errors"
	"strings"
)

// Sentinel errors for trace normalization.
var (
	// ErrInvalidFormat indicates the raw trace is structurally
	// unrecognizable or totally unparseable. Fatal for the run.
	ErrInvalidFormat = errors.New("invalid trace format")
)

// IsInvalidFormatError checks if an error indicates an unparseable trace.
// Uses errors.Is for sentinel errors, with fallback to string matching for
// errors that crossed a serialization boundary.
func IsInvalidFormatError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, ErrInvalidFormat) {
		return true
	}

	return strings.Contains(strings.ToLower(err.Error()), "invalid trace format")
}
