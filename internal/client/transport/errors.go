package transport

import (
	"errors"
	"fmt"
)

// Kind classifies a transport failure.
type Kind string

const (
	// KindNotFound means the operation referenced a nonexistent identifier.
	KindNotFound Kind = "not_found"
	// KindNetwork means the request could not complete; no response arrived.
	KindNetwork Kind = "network"
	// KindServer means a non-success status was returned.
	KindServer Kind = "server"
	// KindMalformedResponse means a success status carried a body that
	// failed inbound validation.
	KindMalformedResponse Kind = "malformed_response"
)

// Error is a structured transport failure.
type Error struct {
	Kind    Kind
	Status  int    // HTTP status, when a response was received
	Code    string // machine-readable server code, when the body carried one
	Message string
	// ClientFault marks a 4xx other than 404: the server rejected the
	// request itself, which points at a client-side bug rather than a
	// server-side one.
	ClientFault bool
	cause       error
}

func (e *Error) Error() string {
	switch {
	case e.cause != nil && e.Message != "":
		return fmt.Sprintf("transport: %s: %s: %v", e.Kind, e.Message, e.cause)
	case e.cause != nil:
		return fmt.Sprintf("transport: %s: %v", e.Kind, e.cause)
	case e.Status != 0 && e.Message != "":
		return fmt.Sprintf("transport: %s: status %d: %s", e.Kind, e.Status, e.Message)
	case e.Message != "":
		return fmt.Sprintf("transport: %s: %s", e.Kind, e.Message)
	default:
		return fmt.Sprintf("transport: %s", e.Kind)
	}
}

func (e *Error) Unwrap() error {
	return e.cause
}

// AsError unwraps err into a *Error if there is one in the chain.
func AsError(err error) (*Error, bool) {
	var te *Error
	if errors.As(err, &te) {
		return te, true
	}
	return nil, false
}
