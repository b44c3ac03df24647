package executor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/oshokin/oneshot/internal/engine"
)

// Error kinds. A *TransportError matches its kind with errors.Is.
var (
	// ErrInitFailed indicates that no transport handle could be acquired.
	ErrInitFailed = errors.New("transport initialization failed")
	// ErrConfigFailed indicates that the engine rejected an option or a header.
	ErrConfigFailed = errors.New("transport configuration failed")
	// ErrTransport indicates that the transfer itself failed.
	ErrTransport = errors.New("transport error")
	// ErrOutOfMemory indicates that the response body did not fit into the allowed buffer size.
	ErrOutOfMemory = errors.New("response buffer exhausted")
	// ErrNilRequest indicates that Execute was called without a request.
	ErrNilRequest = errors.New("request is nil")
)

// TransportError describes a failed Execute call.
type TransportError struct {
	// Kind is one of the Err* kinds of this package.
	Kind error
	// Code is the engine result code.
	Code engine.Code
	// Message is the engine description of Code.
	Message string
	// Detail is the underlying failure reported by the engine, if any.
	Detail string
	// State is the executor state in which the failure happened.
	State State
	// URL is the requested URL.
	URL string
	// cause is the wrapped error, if any.
	cause error
}

// Error returns the error message.
func (e *TransportError) Error() string {
	parts := make([]string, 0, 6) //nolint:mnd // Number of optional parts below.

	if e.Kind != nil {
		parts = append(parts, "kind: "+e.Kind.Error())
	}

	parts = append(parts, fmt.Sprintf("code: %d", int(e.Code)))

	if e.Message != "" {
		parts = append(parts, "msg: "+e.Message)
	}

	if e.Detail != "" {
		parts = append(parts, "detail: "+e.Detail)
	}

	if e.URL != "" {
		parts = append(parts, "url: "+e.URL)
	}

	if e.cause != nil {
		parts = append(parts, "cause: "+e.cause.Error())
	}

	return strings.Join(parts, " | ")
}

// Is reports whether the kind or the cause matches target.
func (e *TransportError) Is(target error) bool {
	if e.Kind != nil && errors.Is(e.Kind, target) {
		return true
	}

	return e.cause != nil && errors.Is(e.cause, target)
}

// Unwrap returns the cause of the error.
func (e *TransportError) Unwrap() error {
	return e.cause
}

func newTransportError(kind error, code engine.Code, message string, state State, url string) *TransportError {
	return &TransportError{
		Kind:    kind,
		Code:    code,
		Message: message,
		State:   state,
		URL:     url,
	}
}

func (e *TransportError) withCause(err error) *TransportError {
	e.cause = err

	return e
}

func (e *TransportError) withDetail(detail string) *TransportError {
	e.Detail = detail

	return e
}
