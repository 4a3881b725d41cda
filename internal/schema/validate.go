package schema

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
)

const maxNameLength = 255

const minPasswordLength = 6

// FieldError is a single violated rule on a single field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError reports every violated rule, not just the first, so a
// consumer can surface all offending fields at once.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("validation failed")
	for i, f := range e.Fields {
		if i == 0 {
			b.WriteString(": ")
		} else {
			b.WriteString("; ")
		}
		b.WriteString(f.Field)
		b.WriteString(": ")
		b.WriteString(f.Message)
	}
	return b.String()
}

func (e *ValidationError) add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// orNil avoids returning a non-nil error interface around a nil-meaning
// value when nothing was violated.
func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// AsValidation unwraps err into a *ValidationError if there is one in the
// chain.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// ValidateCreate checks every field of a create input against its rule and
// returns a *ValidationError listing all violations, or nil.
func ValidateCreate(in CreateUserInput) error {
	var ve ValidationError
	checkName(&ve, in.Name)
	checkEmail(&ve, in.Email)
	checkPassword(&ve, in.Password)
	return ve.orNil()
}

// ValidateUpdate applies the same per-field rules as ValidateCreate, but
// only to fields that are set. An unset field is not an omission error.
func ValidateUpdate(in UpdateUserInput) error {
	var ve ValidationError
	if v, ok := in.Name.Get(); ok {
		checkName(&ve, v)
	}
	if v, ok := in.Email.Get(); ok {
		checkEmail(&ve, v)
	}
	if v, ok := in.Password.Get(); ok {
		checkPassword(&ve, v)
	}
	return ve.orNil()
}

func checkName(ve *ValidationError, name string) {
	if strings.TrimSpace(name) == "" {
		ve.add("name", "must not be empty")
		return
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		ve.add("name", fmt.Sprintf("must be at most %d characters", maxNameLength))
	}
}

func checkEmail(ve *ValidationError, email string) {
	// mail.ParseAddress also accepts the "Name <a@b.com>" form; requiring
	// the parsed address to equal the input rules that out.
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		ve.add("email", "must be a valid email address")
	}
}

func checkPassword(ve *ValidationError, password string) {
	if utf8.RuneCountInString(password) < minPasswordLength {
		ve.add("password", fmt.Sprintf("must be at least %d characters", minPasswordLength))
	}
	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit {
		ve.add("password", "must contain an uppercase letter, a lowercase letter, and a digit")
	}
}

// ParseUser validates the wire shape of a User and converts it into the
// typed entity. It enforces the response-shape invariants: the ID is a
// syntactically valid UUID, timestamps parse as RFC 3339, UpdatedAt does
// not precede CreatedAt, and DeletedAt may be null.
func ParseUser(p UserPayload) (User, error) {
	var ve ValidationError

	if _, err := uuid.Parse(p.ID); err != nil {
		ve.add("id", "must be a valid UUID")
	}

	createdAt, err := time.Parse(time.RFC3339, p.CreatedAt)
	if err != nil {
		ve.add("created_at", "must be a valid RFC 3339 timestamp")
	}
	updatedAt, err := time.Parse(time.RFC3339, p.UpdatedAt)
	if err != nil {
		ve.add("updated_at", "must be a valid RFC 3339 timestamp")
	} else if !createdAt.IsZero() && updatedAt.Before(createdAt) {
		ve.add("updated_at", "must not precede created_at")
	}

	var deletedAt *time.Time
	if p.DeletedAt != nil {
		t, err := time.Parse(time.RFC3339, *p.DeletedAt)
		if err != nil {
			ve.add("deleted_at", "must be a valid RFC 3339 timestamp or null")
		} else {
			deletedAt = &t
		}
	}

	if err := ve.orNil(); err != nil {
		return User{}, err
	}

	return User{
		ID:        p.ID,
		Name:      p.Name,
		Email:     p.Email,
		IsActive:  p.IsActive,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
	}, nil
}

// ParseUserList runs ParseUser over a slice, prefixing field paths with the
// element index such as "[2].id". The result preserves input order.
func ParseUserList(ps []UserPayload) ([]User, error) {
	users := make([]User, 0, len(ps))
	var ve ValidationError
	for i, p := range ps {
		u, err := ParseUser(p)
		if err != nil {
			if inner, ok := AsValidation(err); ok {
				for _, f := range inner.Fields {
					ve.add(fmt.Sprintf("[%d].%s", i, f.Field), f.Message)
				}
				continue
			}
			return nil, err
		}
		users = append(users, u)
	}
	if err := ve.orNil(); err != nil {
		return nil, err
	}
	return users, nil
}
