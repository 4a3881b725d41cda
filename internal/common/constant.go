// Package common contains shared constants and sentinel errors used across
// Roster components.
package common

// Wire-level error codes carried in the JSON error body. The client maps
// them back onto error kinds, so both sides must agree on the exact strings.
const (
	CodeInvalidBody  = "INVALID_BODY"
	CodeValidation   = "VALIDATION"
	CodeNotFound     = "NOT_FOUND"
	CodeEmailExists  = "EMAIL_EXISTS"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeTokenExpired = "TOKEN_EXPIRED"
	CodeInternal     = "INTERNAL"
)
