package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/taskvault/taskvault/internal/domain"
	"github.com/taskvault/taskvault/internal/service"
)

// APIKeyHandler handles the API key lifecycle endpoints.
type APIKeyHandler struct {
	keyService *service.APIKeyService
	logger     zerolog.Logger
}

// NewAPIKeyHandler creates a new APIKeyHandler.
func NewAPIKeyHandler(keyService *service.APIKeyService, logger zerolog.Logger) *APIKeyHandler {
	return &APIKeyHandler{
		keyService: keyService,
		logger:     logger.With().Str("handler", "apikey").Logger(),
	}
}

// CreateAPIKeyRequest is the request body for key issuance.
type CreateAPIKeyRequest struct {
	Username string `json:"Username"`
	Password string `json:"Password"`
}

// SetActiveRequest is the request body for toggling a key's state.
type SetActiveRequest struct {
	IsActive bool `json:"IsActive"`
}

// APIKeyResponse is the wire shape of a key record.
type APIKeyResponse struct {
	Id             string    `json:"Id"`
	ApiKey         string    `json:"ApiKey"`
	UserId         string    `json:"UserId"`
	IsActive       bool      `json:"IsActive"`
	DateCreated    time.Time `json:"DateCreated"`
	ExpirationDate time.Time `json:"ExpirationDate"`
}

func toAPIKeyResponse(key *domain.APIKey) APIKeyResponse {
	return APIKeyResponse{
		Id:             key.ID.String(),
		ApiKey:         key.Key,
		UserId:         key.UserID.String(),
		IsActive:       key.IsActive,
		DateCreated:    key.CreatedAt,
		ExpirationDate: key.ExpiresAt,
	}
}

// RegisterRoutes registers API key routes.
func (h *APIKeyHandler) RegisterRoutes(r chi.Router) {
	r.Post("/apiKeys", h.handleCreate)
	r.Get("/apiKeys", h.handleList)
	r.Put("/apiKeys/{id}/isActive", h.handleSetActive)
}

// handleCreate issues a new API key for the credentials in the body.
func (h *APIKeyHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateAPIKeyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "request body must be valid JSON")
		return
	}

	key, err := h.keyService.Create(r.Context(), req.Username, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toAPIKeyResponse(key))
}

// handleList returns all key records for the credentials in the query.
func (h *APIKeyHandler) handleList(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	password := r.URL.Query().Get("password")

	keys, err := h.keyService.ListForUser(r.Context(), username, password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response := make([]APIKeyResponse, 0, len(keys))
	for _, key := range keys {
		response = append(response, toAPIKeyResponse(key))
	}

	writeJSON(w, http.StatusOK, response)
}

// handleSetActive updates a key record's active flag.
func (h *APIKeyHandler) handleSetActive(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_key_id", "key ID must be a valid UUID")
		return
	}

	var req SetActiveRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "request body must be valid JSON")
		return
	}

	key, err := h.keyService.SetActive(r.Context(), id, req.IsActive)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toAPIKeyResponse(key))
}
