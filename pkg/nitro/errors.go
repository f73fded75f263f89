package nitro

import (
	"errors"
	"strings"
)

// Sentinel errors for trace retrieval. Each transport failure mode is
// distinct and fatal to the fetch step; none is silently retried past
// the transient-error backoff.
var (
	// ErrTransactionNotFound indicates the node does not know the
	// transaction.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrTracerNotSupported indicates the node does not expose the
	// requested tracer (or the debug API at all).
	ErrTracerNotSupported = errors.New("tracer not supported by node")

	// ErrInvalidResponse indicates a malformed JSON-RPC response.
	ErrInvalidResponse = errors.New("invalid RPC response")
)

// IsTransactionNotFoundError checks if an error indicates an unknown
// transaction. Uses errors.Is for sentinel errors, with fallback to
// string matching for errors surfaced by remote clients.
func IsTransactionNotFoundError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, ErrTransactionNotFound) {
		return true
	}

	errStr := strings.ToLower(err.Error())

	return strings.Contains(errStr, "transaction not found") ||
		strings.Contains(errStr, "not found")
}

// IsTracerNotSupportedError checks if an error indicates a missing
// tracer or debug API on the remote side.
func IsTracerNotSupportedError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, ErrTracerNotSupported) {
		return true
	}

	errStr := strings.ToLower(err.Error())

	return strings.Contains(errStr, "method not found") ||
		strings.Contains(errStr, "does not exist/is not available") ||
		strings.Contains(errStr, "tracer not found")
}
