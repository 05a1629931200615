// Package handler provides the HTTP handlers for the TaskVault API.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/taskvault/taskvault/internal/domain"
	"github.com/taskvault/taskvault/internal/service"
)

// ErrorBody is the JSON envelope for error responses.
type ErrorBody struct {
	Error ErrorDetail `json:"Error"`
}

// ErrorDetail carries a machine-readable code and a human-readable message.
type ErrorDetail struct {
	Code    string `json:"Code"`
	Message string `json:"Message"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// writeError writes a structured JSON error response.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorBody{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}

// writeServiceError maps a service or domain error to its HTTP response.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "user_not_found", "user does not exist")
	case errors.Is(err, domain.ErrUserAlreadyExists):
		writeError(w, http.StatusConflict, "username_taken", "username is already taken")
	case errors.Is(err, domain.ErrAPIKeyNotFound):
		writeError(w, http.StatusNotFound, "api_key_not_found", "API key does not exist")
	case errors.Is(err, domain.ErrTodoNotFound):
		writeError(w, http.StatusNotFound, "todo_not_found", "todo item does not exist")
	case errors.Is(err, domain.ErrInvalidDifficulty):
		writeError(w, http.StatusBadRequest, "invalid_difficulty", "difficulty is out of range")
	case errors.Is(err, service.ErrWrongPassword):
		writeError(w, http.StatusBadRequest, "wrong_password", "wrong password")
	case errors.Is(err, service.ErrKeyLimitReached):
		writeError(w, http.StatusBadRequest, "key_limit_reached", "maximum number of API keys reached")
	case errors.Is(err, service.ErrInvalidUsername):
		writeError(w, http.StatusBadRequest, "invalid_username", err.Error())
	case errors.Is(err, service.ErrInvalidPassword):
		writeError(w, http.StatusBadRequest, "invalid_password", err.Error())
	case errors.Is(err, service.ErrInvalidTitle):
		writeError(w, http.StatusBadRequest, "invalid_title", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

// decodeJSON decodes a JSON request body.
func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}
