package transport

import (
	"context"

	"github.com/rosterhq/roster/internal/schema"
)

// TokenFunc supplies the current bearer token for a request. It is called
// once per operation; returning an empty string sends the request without
// an Authorization header. The transport never stores tokens itself.
type TokenFunc func(ctx context.Context) (string, error)

// Transport performs the canonical operations for the user resource.
type Transport interface {
	List(ctx context.Context) ([]schema.User, error)
	GetByID(ctx context.Context, id string) (schema.User, error)
	Create(ctx context.Context, in schema.CreateUserInput) (schema.User, error)
	Update(ctx context.Context, id string, in schema.UpdateUserInput) (schema.User, error)
	Delete(ctx context.Context, id string) error
}
