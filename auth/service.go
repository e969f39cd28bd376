package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/user/minilinkedin-go/apperror"
)

// Client-facing messages.
const (
	MsgEmailTaken         = "Email address is already registered"
	MsgInvalidCredentials = "Invalid email or password"
	MsgRegisterFailed     = "Failed to register user, please try again."
	MsgLoginFailed        = "Failed to login, please try again."
	MsgUserNotFound       = "User not found"
	MsgProfileFailed      = "Failed to fetch user profile"
	MsgPasswordTooLong    = "Password cannot exceed 72 bytes"
)

// Session is the outcome of a successful register or login.
type Session struct {
	Token string
	User  *User
}

// Service orchestrates the credential store, the password hasher and the
// token issuer. Every error it returns is an *apperror.AppError.
type Service struct {
	store  CredentialStore
	hasher PasswordHasher
	tokens *TokenIssuer
}

// NewService wires a Service from its dependencies.
func NewService(store CredentialStore, hasher PasswordHasher, tokens *TokenIssuer) *Service {
	return &Service{
		store:  store,
		hasher: hasher,
		tokens: tokens,
	}
}

// Register creates a user and signs a session token for it.
// req is expected to be normalized and validated.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*Session, error) {
	email := normalizeEmail(req.Email)

	_, err := s.store.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, apperror.NewDuplicateEmailError(MsgEmailTaken, nil)
	case !errors.Is(err, ErrUserNotFound):
		return nil, apperror.NewDatabaseError(MsgRegisterFailed, err)
	}

	digest, err := s.hasher.Hash(req.Password)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, apperror.NewValidationError(MsgPasswordTooLong, map[string]string{"password": MsgPasswordTooLong})
	}
	if err != nil {
		return nil, apperror.NewInternalError(MsgRegisterFailed, err)
	}

	user := &User{
		Name:         req.Name,
		Email:        email,
		PasswordHash: digest,
		Bio:          req.Bio,
	}
	if err := s.store.Create(ctx, user); err != nil {
		// Lost a race with a concurrent registration for the same email.
		if errors.Is(err, ErrEmailTaken) {
			return nil, apperror.NewDuplicateEmailError(MsgEmailTaken, err)
		}
		return nil, apperror.NewDatabaseError(MsgRegisterFailed, err)
	}

	token, err := s.tokens.Issue(user.ID.String())
	if err != nil {
		return nil, apperror.NewInternalError(MsgRegisterFailed, err)
	}

	zerolog.Ctx(ctx).Info().Str("user_id", user.ID.String()).Msg("user registered")
	return &Session{Token: token, User: user}, nil
}

// Login checks the credentials and signs a session token.
// An unknown email and a wrong password produce the same error.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*Session, error) {
	user, err := s.store.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, apperror.NewInvalidCredentialsError(MsgInvalidCredentials, nil)
		}
		return nil, apperror.NewDatabaseError(MsgLoginFailed, err)
	}

	if !s.hasher.Verify(req.Password, user.PasswordHash) {
		return nil, apperror.NewInvalidCredentialsError(MsgInvalidCredentials, nil)
	}

	token, err := s.tokens.Issue(user.ID.String())
	if err != nil {
		return nil, apperror.NewInternalError(MsgLoginFailed, err)
	}
	return &Session{Token: token, User: user}, nil
}

// Me returns the user a verified token belongs to.
func (s *Service) Me(ctx context.Context, userID string) (*User, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, apperror.NewNotFoundError(MsgUserNotFound, err)
	}
	user, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, apperror.NewNotFoundError(MsgUserNotFound, err)
		}
		return nil, apperror.NewDatabaseError(MsgProfileFailed, err)
	}
	return user, nil
}
