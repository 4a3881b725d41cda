package schema

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldsOf(t *testing.T, err error) []string {
	t.Helper()
	ve, ok := AsValidation(err)
	require.True(t, ok, "expected *ValidationError, got %v", err)
	fields := make([]string, 0, len(ve.Fields))
	for _, f := range ve.Fields {
		fields = append(fields, f.Field)
	}
	return fields
}

func TestValidateCreate_ValidInputPasses(t *testing.T) {
	err := ValidateCreate(CreateUserInput{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "Abcdef1",
	})
	require.NoError(t, err)
}

func TestValidateCreate_ReportsAllViolatedFields(t *testing.T) {
	err := ValidateCreate(CreateUserInput{
		Name:     "",
		Email:    "not-an-email",
		Password: "Abcdef1",
	})
	fields := fieldsOf(t, err)
	assert.ElementsMatch(t, []string{"name", "email"}, fields)
}

func TestValidateCreate_NameRules(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "empty", value: "", wantErr: true},
		{name: "only spaces", value: "   ", wantErr: true},
		{name: "single char ok", value: "A", wantErr: false},
		{name: "255 chars ok", value: strings.Repeat("a", 255), wantErr: false},
		{name: "256 chars too long", value: strings.Repeat("a", 256), wantErr: true},
		{name: "255 multibyte runes ok", value: strings.Repeat("ж", 255), wantErr: false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCreate(CreateUserInput{Name: tt.value, Email: "a@b.com", Password: "Abcdef1"})
			if tt.wantErr {
				assert.Contains(t, fieldsOf(t, err), "name")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateCreate_EmailRules(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "plain address", value: "a@b.com", wantErr: false},
		{name: "subdomain", value: "user@mail.example.org", wantErr: false},
		{name: "missing at", value: "abc.example.com", wantErr: true},
		{name: "empty", value: "", wantErr: true},
		{name: "display name form rejected", value: "Ana <a@b.com>", wantErr: true},
		{name: "trailing space", value: "a@b.com ", wantErr: true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCreate(CreateUserInput{Name: "Ana", Email: tt.value, Password: "Abcdef1"})
			if tt.wantErr {
				assert.Contains(t, fieldsOf(t, err), "email")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateCreate_PasswordRules(t *testing.T) {
	tests := []struct {
		name       string
		value      string
		violations int
	}{
		{name: "meets all rules", value: "Abcdef1", violations: 0},
		{name: "too short but complex", value: "Ab1", violations: 1},
		{name: "long but no digit", value: "Abcdefgh", violations: 1},
		{name: "long but no upper", value: "abcdef1", violations: 1},
		{name: "long but no lower", value: "ABCDEF1", violations: 1},
		{name: "short and simple reports both rules", value: "abc", violations: 2},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCreate(CreateUserInput{Name: "Ana", Email: "a@b.com", Password: tt.value})
			if tt.violations == 0 {
				assert.NoError(t, err)
				return
			}
			fields := fieldsOf(t, err)
			count := 0
			for _, f := range fields {
				if f == "password" {
					count++
				}
			}
			assert.Equal(t, tt.violations, count)
		})
	}
}

func TestValidateUpdate_UnsetFieldsAreSkipped(t *testing.T) {
	require.NoError(t, ValidateUpdate(UpdateUserInput{}))
	require.NoError(t, ValidateUpdate(UpdateUserInput{Name: Some("Ana")}))
}

func TestValidateUpdate_SetFieldsMustSatisfyRules(t *testing.T) {
	err := ValidateUpdate(UpdateUserInput{
		Name:  Some(""),
		Email: Some("bad"),
	})
	fields := fieldsOf(t, err)
	assert.ElementsMatch(t, []string{"name", "email"}, fields)
}

func validTestUser() User {
	created := time.Date(2025, 3, 10, 12, 0, 0, 500, time.UTC)
	return User{
		ID:        "6a7e74cf-6c1b-4f6a-9d5a-51f6ddcb3b5e",
		Name:      "Ana",
		Email:     "ana@example.com",
		IsActive:  true,
		CreatedAt: created,
		UpdatedAt: created.Add(time.Hour),
	}
}

func TestParseUser_RoundTrip(t *testing.T) {
	u := validTestUser()

	got, err := ParseUser(PayloadFromUser(u))
	require.NoError(t, err)
	assert.Equal(t, u, got)
}

func TestParseUser_RoundTripWithDeletedAt(t *testing.T) {
	u := validTestUser()
	deleted := u.UpdatedAt.Add(time.Minute)
	u.DeletedAt = &deleted
	u.IsActive = false

	got, err := ParseUser(PayloadFromUser(u))
	require.NoError(t, err)
	assert.Equal(t, u, got)
}

func TestParseUser_InvalidID(t *testing.T) {
	p := PayloadFromUser(validTestUser())
	p.ID = "42"

	_, err := ParseUser(p)
	assert.Contains(t, fieldsOf(t, err), "id")
}

func TestParseUser_InvalidTimestamps(t *testing.T) {
	p := PayloadFromUser(validTestUser())
	p.CreatedAt = "yesterday"
	p.UpdatedAt = ""

	_, err := ParseUser(p)
	fields := fieldsOf(t, err)
	assert.Contains(t, fields, "created_at")
	assert.Contains(t, fields, "updated_at")
}

func TestParseUser_UpdatedBeforeCreated(t *testing.T) {
	u := validTestUser()
	u.UpdatedAt = u.CreatedAt.Add(-time.Second)

	_, err := ParseUser(PayloadFromUser(u))
	assert.Contains(t, fieldsOf(t, err), "updated_at")
}

func TestParseUser_InvalidDeletedAt(t *testing.T) {
	p := PayloadFromUser(validTestUser())
	bad := "not-a-time"
	p.DeletedAt = &bad

	_, err := ParseUser(p)
	assert.Contains(t, fieldsOf(t, err), "deleted_at")
}

func TestParseUserList_PreservesOrder(t *testing.T) {
	u1 := validTestUser()
	u2 := validTestUser()
	u2.ID = "0b8f5f26-3a5a-4a86-b5a4-7e58f2f06a1d"
	u2.Name = "Bob"

	got, err := ParseUserList([]UserPayload{PayloadFromUser(u1), PayloadFromUser(u2)})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Ana", got[0].Name)
	assert.Equal(t, "Bob", got[1].Name)
}

func TestParseUserList_IndexedFieldPaths(t *testing.T) {
	good := PayloadFromUser(validTestUser())
	bad := PayloadFromUser(validTestUser())
	bad.ID = "nope"

	_, err := ParseUserList([]UserPayload{good, bad})
	assert.Contains(t, fieldsOf(t, err), "[1].id")
}

func TestValidationError_ErrorMessageListsFields(t *testing.T) {
	err := ValidateCreate(CreateUserInput{Name: "", Email: "bad", Password: "x"})
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "validation failed")
	assert.Contains(t, msg, "name")
	assert.Contains(t, msg, "email")
	assert.Contains(t, msg, "password")
}
