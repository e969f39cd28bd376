package apperror

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
)

// MsgInternal is the message sent for errors that are not AppErrors.
const MsgInternal = "An unexpected error occurred"

// WriteJSON serializes data to JSON and writes it with the given status.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Headers are already out; nothing left to tell the client.
		return
	}
}

// WriteError converts any error into the error envelope and writes it.
// Server-side failures are logged with their underlying cause through the
// request-scoped logger; clients only ever see the AppError message.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := FromError(err)
	if !ok {
		appErr = NewInternalError(MsgInternal, err)
	}

	status := appErr.StatusCode()
	logger := zerolog.Ctx(r.Context())
	if status >= http.StatusInternalServerError {
		logger.Error().Err(appErr.Err).Str("message", appErr.Message).Msg("request failed")
	} else {
		logger.Debug().Err(appErr).Int("status", status).Msg("request rejected")
	}

	WriteJSON(w, status, appErr.ToResponse())
}
