package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func newTestIssuer(t *testing.T, clock *fakeClock) *TokenIssuer {
	t.Helper()
	issuer, err := NewTokenIssuer(testSecret, 7*24*time.Hour, WithClock(clock.Now))
	require.NoError(t, err)
	return issuer
}

func signRaw(t *testing.T, method jwt.SigningMethod, claims jwt.Claims, key any) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func TestTokenIssueVerifyRoundTrip(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	issuer := newTestIssuer(t, clock)

	token, err := issuer.Issue("user-123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)
}

func TestTokenExpiresAfterSevenDays(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	issuer := newTestIssuer(t, clock)

	token, err := issuer.Issue("user-123")
	require.NoError(t, err)

	claims := &Claims{}
	_, _, err = jwt.NewParser().ParseUnverified(token, claims)
	require.NoError(t, err)
	assert.Equal(t, 7*24*time.Hour, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
	assert.Equal(t, "user-123", claims.Subject)

	clock.now = clock.now.Add(7*24*time.Hour - time.Minute)
	_, err = issuer.Verify(token)
	assert.NoError(t, err)

	clock.now = clock.now.Add(2 * time.Minute)
	_, err = issuer.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenWrongSecret(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	issuer := newTestIssuer(t, clock)

	other, err := NewTokenIssuer("another-secret", time.Hour, WithClock(clock.Now))
	require.NoError(t, err)
	token, err := other.Issue("user-123")
	require.NoError(t, err)

	_, err = issuer.Verify(token)
	assert.ErrorIs(t, err, ErrTokenSignatureInvalid)
}

func TestTokenSignatureCheckedBeforeExpiry(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	other, err := NewTokenIssuer("another-secret", time.Hour, WithClock(clock.Now))
	require.NoError(t, err)
	token, err := other.Issue("user-123")
	require.NoError(t, err)

	clock.now = clock.now.Add(2 * time.Hour)
	_, err = newTestIssuer(t, clock).Verify(token)
	assert.ErrorIs(t, err, ErrTokenSignatureInvalid)
	assert.NotErrorIs(t, err, ErrTokenExpired)
}

func TestTokenTamperedPayload(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	issuer := newTestIssuer(t, clock)

	victim, err := issuer.Issue("victim")
	require.NoError(t, err)
	attacker, err := issuer.Issue("attacker")
	require.NoError(t, err)

	v := strings.Split(victim, ".")
	a := strings.Split(attacker, ".")
	forged := strings.Join([]string{v[0], a[1], v[2]}, ".")

	_, err = issuer.Verify(forged)
	assert.ErrorIs(t, err, ErrTokenSignatureInvalid)
}

func TestTokenMalformed(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	issuer := newTestIssuer(t, clock)
	valid := jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(clock.now.Add(time.Hour))}

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "garbage", token: "not-a-token"},
		{name: "two segments", token: "abc.def"},
		{
			name:  "alg none",
			token: signRaw(t, jwt.SigningMethodNone, &Claims{UserID: "user-123", RegisteredClaims: valid}, jwt.UnsafeAllowNoneSignatureType),
		},
		{
			name:  "other hmac alg",
			token: signRaw(t, jwt.SigningMethodHS512, &Claims{UserID: "user-123", RegisteredClaims: valid}, []byte(testSecret)),
		},
		{
			name:  "missing user id",
			token: signRaw(t, jwt.SigningMethodHS256, &Claims{RegisteredClaims: valid}, []byte(testSecret)),
		},
		{
			name:  "missing expiry",
			token: signRaw(t, jwt.SigningMethodHS256, &Claims{UserID: "user-123"}, []byte(testSecret)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userID, err := issuer.Verify(tt.token)
			assert.ErrorIs(t, err, ErrTokenMalformed)
			assert.Empty(t, userID)
		})
	}
}

func TestNewTokenIssuerRejectsBadConfig(t *testing.T) {
	_, err := NewTokenIssuer("", time.Hour)
	assert.Error(t, err)

	_, err = NewTokenIssuer(testSecret, 0)
	assert.Error(t, err)
}

func TestIssueRequiresUserID(t *testing.T) {
	_, err := newTestIssuer(t, &fakeClock{now: time.Now()}).Issue("")
	assert.Error(t, err)
}
