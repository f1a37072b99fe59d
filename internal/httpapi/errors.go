// internal/httpapi/errors.go
package httpapi

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"scholarship-workers/internal/common/errors"
	"scholarship-workers/internal/profile"
)

type APIError struct {
	Success bool `json:"success"`
	Error   struct {
		Code      string `json:"code"`
		Message   string `json:"message"`
		RequestID string `json:"request_id,omitempty"`
	} `json:"error"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	var e APIError
	e.Error.Code = code
	e.Error.Message = message
	e.Error.RequestID = RequestIDFrom(r.Context())
	WriteJSON(w, status, e)
}

// writeServiceError maps a service error to a status code.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if stderrors.Is(err, profile.ErrProfileNotFound) {
		WriteError(w, r, http.StatusNotFound, string(errors.ErrCodeProfileNotFound), "student profile not found")
		return
	}

	std := errors.Normalize(err)
	status := http.StatusInternalServerError
	switch std.Code {
	case errors.ErrCodeInvalidInput:
		status = http.StatusBadRequest
	case errors.ErrCodeProfileNotFound, errors.ErrCodeIndexNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeSearchTimeout:
		status = http.StatusGatewayTimeout
	case errors.ErrCodeNotificationSendFailed, errors.ErrCodeSearchQueryFailed:
		status = http.StatusBadGateway
	}

	message := std.Message
	if std.Details != "" && status == http.StatusBadRequest {
		message = std.Details
	}
	WriteError(w, r, status, string(std.Code), message)
}
