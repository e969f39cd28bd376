package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/minilinkedin-go/auth"
	"github.com/user/minilinkedin-go/posts"
	"github.com/user/minilinkedin-go/users"
	"github.com/user/minilinkedin-go/validation"
)

const frontend = "http://localhost:3000"

// The router tests never reach a store; every request here is answered
// by middleware or by the health handler.
func newTestRouter(t *testing.T, tokens *auth.TokenIssuer) http.Handler {
	t.Helper()
	v := validation.New()
	return NewRouter(Deps{
		Logger:      zerolog.Nop(),
		FrontendURL: frontend,
		Tokens:      tokens,
		Auth:        auth.NewHandlers(auth.NewService(nil, auth.NewBcryptHasher(0), tokens), v),
		Posts:       posts.NewPostHandler(posts.NewPostService(nil), v),
		Users:       users.NewUserHandlers(users.NewUserService(nil)),
		Now:         func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) },
	})
}

func newTokens(t *testing.T, opts ...auth.TokenOption) *auth.TokenIssuer {
	t.Helper()
	tokens, err := auth.NewTokenIssuer("server-secret", 7*24*time.Hour, opts...)
	require.NoError(t, err)
	return tokens
}

func TestHealth(t *testing.T) {
	h := newTestRouter(t, newTokens(t))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"OK","timestamp":"2024-03-01T12:00:00Z"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("Content-Type"))
}

func TestProtectedRouteWithExpiredToken(t *testing.T) {
	tokens := newTokens(t)
	stale := newTokens(t, auth.WithClock(func() time.Time { return time.Now().Add(-30 * 24 * time.Hour) }))
	token, err := stale.Issue(uuid.NewString())
	require.NoError(t, err)

	h := newTestRouter(t, tokens)

	for _, tc := range []struct{ method, path string }{
		{http.MethodPost, "/api/posts"},
		{http.MethodDelete, "/api/posts/" + uuid.NewString()},
		{http.MethodGet, "/api/auth/me"},
	} {
		req := httptest.NewRequest(tc.method, tc.path, bytes.NewBufferString(`{"content":"hi"}`))
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code, tc.path)
		assert.JSONEq(t, `{"error":true,"message":"Authentication token has expired"}`, rec.Body.String(), tc.path)
	}
}

func TestProtectedRouteWithForeignToken(t *testing.T) {
	foreign, err := auth.NewTokenIssuer("someone-elses-secret", time.Hour)
	require.NoError(t, err)
	token, err := foreign.Issue(uuid.NewString())
	require.NoError(t, err)

	h := newTestRouter(t, newTokens(t))
	req := httptest.NewRequest(http.MethodPost, "/api/posts", bytes.NewBufferString(`{"content":"hi"}`))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":true,"message":"Invalid authentication token"}`, rec.Body.String())
}

func TestCORS(t *testing.T) {
	h := newTestRouter(t, newTokens(t))

	req := httptest.NewRequest(http.MethodOptions, "/api/posts", nil)
	req.Header.Set("Origin", frontend)
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Authorization, Content-Type")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, frontend, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestUnknownRoute(t *testing.T) {
	h := newTestRouter(t, newTokens(t))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["error"])
}

func TestRequestIDHeaderIsLogged(t *testing.T) {
	var buf bytes.Buffer
	tokens := newTokens(t)
	v := validation.New()
	h := NewRouter(Deps{
		Logger:      zerolog.New(&buf),
		FrontendURL: frontend,
		Tokens:      tokens,
		Auth:        auth.NewHandlers(auth.NewService(nil, auth.NewBcryptHasher(0), tokens), v),
		Posts:       posts.NewPostHandler(posts.NewPostService(nil), v),
		Users:       users.NewUserHandlers(users.NewUserService(nil)),
	})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("X-Request-Id", "req-42")
	h.ServeHTTP(httptest.NewRecorder(), req)

	line, err := io.ReadAll(&buf)
	require.NoError(t, err)
	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(line), &entry))
	assert.Equal(t, "req-42", entry["request_id"])
	assert.Equal(t, "/api/health", entry["path"])
}
