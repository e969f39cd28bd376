package apperror

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want int
	}{
		{"validation", NewValidationError("bad", nil), http.StatusBadRequest},
		{"bad request", NewBadRequestError("bad", nil), http.StatusBadRequest},
		{"duplicate email", NewDuplicateEmailError("taken", nil), http.StatusBadRequest},
		{"invalid credentials", NewInvalidCredentialsError("nope", nil), http.StatusBadRequest},
		{"auth", NewAuthError("who", nil), http.StatusUnauthorized},
		{"forbidden", NewForbiddenError("no", nil), http.StatusForbidden},
		{"not found", NewNotFoundError("gone", nil), http.StatusNotFound},
		{"database", NewDatabaseError("db", nil), http.StatusInternalServerError},
		{"internal", NewInternalError("boom", nil), http.StatusInternalServerError},
		{"unknown", NewAppError(UnknownError, "?", nil), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.StatusCode())
		})
	}
}

func TestFromErrorFindsWrappedAppError(t *testing.T) {
	inner := NewNotFoundError("Post not found", nil)
	wrapped := fmt.Errorf("loading post: %w", inner)

	got, ok := FromError(wrapped)
	require.True(t, ok)
	assert.Same(t, inner, got)
	assert.True(t, IsNotFound(wrapped))

	_, ok = FromError(errors.New("plain"))
	assert.False(t, ok)

	_, ok = FromError(nil)
	assert.False(t, ok)
}

func TestErrorKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewDatabaseError("Failed to retrieve posts", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Failed to retrieve posts: connection refused", err.Error())
}

func TestWriteErrorHidesUnderlyingCause(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	WriteError(rec, req, NewDatabaseError("Failed to retrieve posts", errors.New("pq: password authentication failed")))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["error"])
	assert.Equal(t, "Failed to retrieve posts", body["message"])
	assert.NotContains(t, rec.Body.String(), "password authentication")
	assert.NotContains(t, body, "errors")
}

func TestWriteErrorPlainErrorBecomesInternal(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	WriteError(rec, req, errors.New("secret detail"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":true,"message":"An unexpected error occurred"}`, rec.Body.String())
}

func TestWriteErrorIncludesValidationFields(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", nil)

	WriteError(rec, req, NewValidationError("Please enter a valid email address", map[string]string{
		"email": "Please enter a valid email address",
	}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{
		"error": true,
		"message": "Please enter a valid email address",
		"errors": {"email": "Please enter a valid email address"}
	}`, rec.Body.String())
}
