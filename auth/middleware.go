package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/user/minilinkedin-go/apperror"
)

// Messages sent with a 401.
const (
	MsgTokenRequired = "Authentication token required"
	MsgTokenExpired  = "Authentication token has expired"
	MsgTokenInvalid  = "Invalid authentication token"
)

// JWTMiddleware rejects requests without a valid `Authorization: Bearer`
// token and stores the token's user id on the context of those it lets
// through (read it back with UserIDFromContext).
//
// The verification cause is logged at debug level; clients only see one of
// the three fixed messages.
func JWTMiddleware(verifier TokenVerifier) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw == "" {
				apperror.WriteError(w, r, apperror.NewAuthError(MsgTokenRequired, nil))
				return
			}

			scheme, token, _ := strings.Cut(raw, " ")
			if !strings.EqualFold(scheme, "bearer") {
				zerolog.Ctx(r.Context()).Debug().Str("scheme", scheme).Msg("unsupported authorization scheme")
				apperror.WriteError(w, r, apperror.NewAuthError(MsgTokenInvalid, nil))
				return
			}
			token = strings.TrimSpace(token)
			if token == "" {
				apperror.WriteError(w, r, apperror.NewAuthError(MsgTokenRequired, nil))
				return
			}

			userID, err := verifier.Verify(token)
			if err != nil {
				msg := MsgTokenInvalid
				if errors.Is(err, ErrTokenExpired) {
					msg = MsgTokenExpired
				}
				apperror.WriteError(w, r, apperror.NewAuthError(msg, err))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}
