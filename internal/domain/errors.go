package domain

import (
	"errors"
	"fmt"
)

// ErrQueryTooShort rejects queries shorter than the minimum length after
// trimming. It is a client-input fault and never reaches retrieval.
var ErrQueryTooShort = errors.New("query too short after trimming; provide at least 3 characters")

// ErrUpstreamTimeout marks an external generation call that exceeded the
// caller-enforced time budget. Callers distinguish it from other failures
// with errors.Is.
var ErrUpstreamTimeout = errors.New("upstream generation timed out")

// InternalError is an opaque failure surfaced to callers. The message carries
// only a correlation ID; the wrapped cause stays server-side for logs.
type InternalError struct {
	CorrelationID string
	Err           error
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("internal failure (correlation_id=%s)", e.CorrelationID)
}

func (e *InternalError) Unwrap() error { return e.Err }
