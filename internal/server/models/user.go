// Package models holds the server-side persistence structs shared by
// repositories and services.
package models

import "time"

// User is the persisted account row. PasswordHash is a bcrypt digest and
// never leaves the server. A non-nil DeletedAt marks the row soft-deleted:
// it stays in storage for audit but is invisible to the API.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash []byte
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}
