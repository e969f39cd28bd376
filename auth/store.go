package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Store errors. Implementations return these (possibly wrapped) so the
// service can tell a business outcome from an infrastructure failure.
var (
	// ErrEmailTaken is returned by Create when the email is already in use.
	ErrEmailTaken = errors.New("email already registered")
	// ErrUserNotFound is returned by the lookups when no row matches.
	ErrUserNotFound = errors.New("user not found")
)

// CredentialStore persists users. Email is expected to be normalised
// (trimmed, lowercased) by the caller; uniqueness is enforced by the store.
type CredentialStore interface {
	// Create inserts u, filling in ID and timestamps.
	Create(ctx context.Context, u *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
}
