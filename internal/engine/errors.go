package engine

import (
	"errors"
	"fmt"
)

// ErrTimeout is returned when a request exceeds the engine's per-request
// timeout. The underlying mutation may still land on the server.
var ErrTimeout = errors.New("request timed out")

// ValidationError reports malformed input caught before any network call.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NetworkError wraps a transport failure where no response was received.
// Recoverable by retrying at the caller's discretion; the engine never
// retries on its own.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("cart service unreachable: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// RemoteRejection is a non-success response from the cart service. Message
// is the server-provided cause, surfaced verbatim to the user.
type RemoteRejection struct {
	Status  int
	Message string
}

func (e *RemoteRejection) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("cart service rejected the request (status %d)", e.Status)
}

// NotFoundError means a referenced product or line does not exist on the
// server. AddItem treats it as a hard failure; RemoveItem treats it as a
// successful no-op.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "not found"
}
