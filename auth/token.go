package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token verification failures. Callers compare with errors.Is.
var (
	// ErrTokenMalformed covers absent, unparsable and wrongly-signed-scheme
	// tokens, and tokens whose signature verifies but carry no user id.
	ErrTokenMalformed = errors.New("token is malformed")
	// ErrTokenSignatureInvalid means the signature does not match the payload
	// under the server secret.
	ErrTokenSignatureInvalid = errors.New("token signature is invalid")
	// ErrTokenExpired means the signature is valid but the expiry has passed.
	ErrTokenExpired = errors.New("token has expired")
)

// Claims is the JWT payload issued by TokenIssuer.
type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// TokenVerifier is the part of TokenIssuer the middleware depends on.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// TokenIssuer signs and verifies HS256 session tokens.
// It holds no mutable state and is safe for concurrent use.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// TokenOption customises a TokenIssuer.
type TokenOption func(*TokenIssuer)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) TokenOption {
	return func(t *TokenIssuer) {
		t.now = now
	}
}

// NewTokenIssuer returns an issuer for tokens that live for ttl.
// An empty secret or a non-positive ttl is rejected.
func NewTokenIssuer(secret string, ttl time.Duration, opts ...TokenOption) (*TokenIssuer, error) {
	if secret == "" {
		return nil, errors.New("token secret must not be empty")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("token lifetime must be positive, got %s", ttl)
	}
	t := &TokenIssuer{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// Issue returns a signed token for userID.
func (t *TokenIssuer) Issue(userID string) (string, error) {
	if userID == "" {
		return "", errors.New("cannot issue a token without a user id")
	}
	now := t.now()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the token's signature, then its expiry, and returns the
// user id it carries. The returned error is one of ErrTokenMalformed,
// ErrTokenSignatureInvalid or ErrTokenExpired, wrapping the parser's cause.
func (t *TokenIssuer) Verify(token string) (string, error) {
	if token == "" {
		return "", ErrTokenMalformed
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, t.keyFunc,
		jwt.WithTimeFunc(t.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return "", fmt.Errorf("%w: %v", ErrTokenSignatureInvalid, err)
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", fmt.Errorf("%w: %v", ErrTokenExpired, err)
		default:
			return "", fmt.Errorf("%w: %v", ErrTokenMalformed, err)
		}
	}

	if claims.UserID == "" {
		return "", fmt.Errorf("%w: missing userId claim", ErrTokenMalformed)
	}
	return claims.UserID, nil
}

// keyFunc only hands out the secret for HS256; anything else (including
// "none") makes the token unverifiable.
func (t *TokenIssuer) keyFunc(token *jwt.Token) (any, error) {
	if token.Method != jwt.SigningMethodHS256 {
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}
	return t.secret, nil
}
