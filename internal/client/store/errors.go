package store

import (
	"fmt"

	"github.com/rosterhq/roster/internal/client/transport"
	"github.com/rosterhq/roster/internal/schema"
)

// Kind classifies a store error for consumers.
type Kind string

const (
	// KindValidation means the input failed the schema rules before any
	// request was sent; Fields lists every violation.
	KindValidation Kind = "validation"
	// KindNotFound means the action referenced a nonexistent identifier.
	// This is a recoverable outcome, not a crash condition.
	KindNotFound Kind = "not_found"
	// KindNetwork means the round-trip could not complete.
	KindNetwork Kind = "network"
	// KindServer means the server answered with a non-success status.
	KindServer Kind = "server"
	// KindMalformed means the server answered success with a body that
	// failed validation.
	KindMalformed Kind = "malformed_response"
	// KindInternal covers failures outside the expected taxonomy, such as
	// a broken token collaborator.
	KindInternal Kind = "internal"
)

// Error is the caller-facing normalization of any failure an action can
// produce. Consumers render Message and, for KindValidation, the per-field
// messages in Fields.
type Error struct {
	Kind    Kind
	Message string
	Fields  []schema.FieldError
}

func (e *Error) Error() string {
	return fmt.Sprintf("store: %s: %s", e.Kind, e.Message)
}

// normalize folds the three-tier error taxonomy into a single *Error.
func normalize(err error) *Error {
	if ve, ok := schema.AsValidation(err); ok {
		return &Error{Kind: KindValidation, Message: ve.Error(), Fields: ve.Fields}
	}
	if te, ok := transport.AsError(err); ok {
		switch te.Kind {
		case transport.KindNotFound:
			return &Error{Kind: KindNotFound, Message: te.Message}
		case transport.KindNetwork:
			return &Error{Kind: KindNetwork, Message: te.Error()}
		case transport.KindMalformedResponse:
			return &Error{Kind: KindMalformed, Message: te.Error()}
		default:
			return &Error{Kind: KindServer, Message: te.Message}
		}
	}
	return &Error{Kind: KindInternal, Message: err.Error()}
}
