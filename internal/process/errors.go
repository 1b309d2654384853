package process

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode categorizes rewrite failures.
type ErrorCode string

const (
	// ErrCodeConfig indicates invalid rewriter construction parameters.
	ErrCodeConfig ErrorCode = "INVALID_CONFIG"

	// ErrCodeEmptyState indicates a chunked rewrite of a zero-length state.
	// Parallelizing zero elements is meaningless and a reserved error case.
	ErrCodeEmptyState ErrorCode = "EMPTY_STATE"

	// ErrCodeOverflow indicates a size computation (allocation estimate or
	// length accumulation) exceeded the platform int range.
	ErrCodeOverflow ErrorCode = "SIZE_OVERFLOW"

	// ErrCodeChunkFailures indicates one or more parallel chunk tasks
	// failed. The error carries every underlying chunk failure.
	ErrCodeChunkFailures ErrorCode = "CHUNK_FAILURES"
)

// Error is a structured rewrite failure.
//
// Rewriter failures are returned to the direct caller as ordinary error
// values, never as a panic. The worker actor converts them into error
// events and keeps running.
type Error struct {
	// Code identifies the failure category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Chunks holds the individual chunk failures for ErrCodeChunkFailures.
	Chunks []error
}

// Error implements the error interface. For aggregated chunk failures the
// underlying messages are concatenated, one per line.
func (e *Error) Error() string {
	if len(e.Chunks) == 0 {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %s:", e.Code, e.Message)
	for _, err := range e.Chunks {
		sb.WriteString("\n")
		sb.WriteString(err.Error())
	}
	return sb.String()
}

// Unwrap exposes the aggregated chunk failures to errors.Is/errors.As.
func (e *Error) Unwrap() []error {
	return e.Chunks
}

// IsConfig reports whether err is an invalid-configuration error.
func IsConfig(err error) bool {
	return hasCode(err, ErrCodeConfig)
}

// IsEmptyState reports whether err is an empty-state error.
func IsEmptyState(err error) bool {
	return hasCode(err, ErrCodeEmptyState)
}

// IsOverflow reports whether err is a size-overflow error.
func IsOverflow(err error) bool {
	return hasCode(err, ErrCodeOverflow)
}

// IsChunkFailure reports whether err aggregates failed chunk tasks.
func IsChunkFailure(err error) bool {
	return hasCode(err, ErrCodeChunkFailures)
}

func hasCode(err error, code ErrorCode) bool {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Code == code
	}
	return false
}

func newConfigError(format string, args ...any) *Error {
	return &Error{Code: ErrCodeConfig, Message: fmt.Sprintf(format, args...)}
}

func newEmptyStateError() *Error {
	return &Error{Code: ErrCodeEmptyState, Message: "cannot rewrite an empty state"}
}

func newOverflowError(context string) *Error {
	return &Error{Code: ErrCodeOverflow, Message: context + ": int overflow when computing state size"}
}

func newChunkError(chunkErrs []error) *Error {
	return &Error{
		Code:    ErrCodeChunkFailures,
		Message: fmt.Sprintf("%d chunk task(s) failed", len(chunkErrs)),
		Chunks:  chunkErrs,
	}
}
