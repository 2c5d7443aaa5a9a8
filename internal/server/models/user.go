// Package models holds the server-side data structures persisted in
// PostgreSQL and exchanged between repositories, services, and transport.
package models

import "time"

// User is an account row. PasswordHash is a bcrypt hash; the plaintext
// password never leaves the registration/login request scope.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"-"`
}
