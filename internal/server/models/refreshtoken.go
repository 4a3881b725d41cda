package models

import "time"

// RefreshToken is an opaque server-stored token that can be exchanged for a
// fresh token pair until Expires passes. Rotation deletes the row.
type RefreshToken struct {
	ID        string
	UserID    string
	Token     string
	Expires   time.Time
	CreatedAt time.Time
}
