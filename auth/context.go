package auth

import (
	"context"
)

// contextKey is unexported so no other package can collide with, or forge,
// the authenticated user id stored on a request context.
type contextKey string

const userIDContextKey contextKey = "auth_user_id"

// WithUserID returns a child context carrying the authenticated user's id.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDContextKey, userID)
}

// UserIDFromContext returns the id stored by WithUserID.
// The boolean is false when the request did not pass through JWTMiddleware.
func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDContextKey).(string)
	return userID, ok && userID != ""
}
