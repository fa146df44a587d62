package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"gitlab.com/llmeet.net/internal/static/errs"
)

type ErrorMessage struct {
	Message    string `json:"message"`
	StatusCode int    `json:"status_code"`
}

func WriteError(w http.ResponseWriter, err ErrorMessage) {
	WriteJSON(w, err.StatusCode, err)
}

func WriteSuccess(w http.ResponseWriter, data interface{}) {
	WriteJSON(w, http.StatusOK, data)
}

func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

const internalMessage = "internal server error"

// Fail writes err with the status StatusOf picks for it. Server-side failures
// get a generic message; callers log the detail.
func Fail(w http.ResponseWriter, err error) {
	status := StatusOf(err)
	msg := err.Error()
	if status >= http.StatusInternalServerError {
		msg = internalMessage
	}
	WriteError(w, ErrorMessage{Message: msg, StatusCode: status})
}

func StatusOf(err error) int {
	switch {
	case errors.Is(err, errs.NotAuthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, errs.CodespaceForbidden):
		return http.StatusForbidden
	case errors.Is(err, errs.ProblemNotFound), errors.Is(err, errs.CodespaceNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.EmptyMessage),
		errors.Is(err, errs.TokenExchange),
		errors.Is(err, errs.NoAccessToken),
		errors.Is(err, errs.FetchUserInfo):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
