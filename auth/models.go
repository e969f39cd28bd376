// Package auth handles user registration, login and bearer-token
// authentication. This file defines the User record as stored in the
// `users` table.
package auth

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered user.
// The `json:"-"` tag on PasswordHash keeps the digest out of every API
// response; the field is write-only from the client's point of view.
type User struct {
	ID           uuid.UUID `json:"_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Bio          string    `json:"bio"`
	Avatar       string    `json:"avatar"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
