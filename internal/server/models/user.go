// Package models holds the server-side persistent records.
package models

import "time"

// User is a row of the users table.
//
// RefreshTokenHash is nil when the user has no active session. At most one
// refresh token is valid per user: issuing a new pair overwrites the hash.
type User struct {
	ID               string
	Email            string
	PasswordHash     string
	RefreshTokenHash *string
	CreatedAt        time.Time
}

// HasSession reports whether a refresh token hash is stored.
func (u *User) HasSession() bool {
	return u.RefreshTokenHash != nil && *u.RefreshTokenHash != ""
}
