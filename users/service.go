// Package users serves public profile pages.
package users

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/user/minilinkedin-go/apperror"
	"github.com/user/minilinkedin-go/auth"
)

// UserFinder is the lookup the profile service needs. auth.PostgresStore
// satisfies it.
type UserFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*auth.User, error)
}

// UserService loads profiles. The password hash never leaves the User
// value through JSON.
type UserService struct {
	users UserFinder
}

// NewUserService creates a new UserService.
func NewUserService(users UserFinder) *UserService {
	return &UserService{users: users}
}

// GetUserProfile returns the user with the given id. A malformed id is
// reported as not found.
func (s *UserService) GetUserProfile(ctx context.Context, userID string) (*auth.User, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, apperror.NewNotFoundError(auth.MsgUserNotFound, err)
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			return nil, apperror.NewNotFoundError(auth.MsgUserNotFound, err)
		}
		return nil, apperror.NewDatabaseError(auth.MsgProfileFailed, err)
	}
	return user, nil
}
