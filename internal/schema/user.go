// Package schema defines the User entity, its input shapes, and the pure
// validation and parsing rules shared by the client transport and the server.
// Everything here is side-effect free; no function performs I/O or suspends.
package schema

import "time"

// User is the domain record the rest of the system moves around.
// The ID is assigned server-side and immutable afterwards; timestamps are
// server-managed with UpdatedAt never preceding CreatedAt.
type User struct {
	ID        string
	Name      string
	Email     string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// CreateUserInput carries the fields needed to construct a new User.
// Password is write-only: it never appears in the persisted User shape.
type CreateUserInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateUserInput is CreateUserInput with every field optional.
// An unset field means "leave unchanged"; a set empty string is a real
// value, not an omission.
type UpdateUserInput struct {
	Name     Optional[string] `json:"name,omitzero"`
	Email    Optional[string] `json:"email,omitzero"`
	Password Optional[string] `json:"password,omitzero"`
}

// UserPayload is the wire shape of a User: loose field types as they travel
// in JSON bodies. Both the client transport and the server marshal through
// this type so the two sides share one contract.
type UserPayload struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	IsActive  bool    `json:"is_active"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
	DeletedAt *string `json:"deleted_at"`
}

// ErrorPayload is the wire shape of a non-success response body: a
// machine-readable code, a human-readable message, and for validation
// failures the offending fields.
type ErrorPayload struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Fields  []FieldError `json:"fields,omitempty"`
}

// PayloadFromUser serializes a User into its wire shape. Timestamps are
// formatted as RFC 3339 with nanoseconds so ParseUser round-trips exactly.
func PayloadFromUser(u User) UserPayload {
	p := UserPayload{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt.Format(time.RFC3339Nano),
		UpdatedAt: u.UpdatedAt.Format(time.RFC3339Nano),
	}
	if u.DeletedAt != nil {
		s := u.DeletedAt.Format(time.RFC3339Nano)
		p.DeletedAt = &s
	}
	return p
}
