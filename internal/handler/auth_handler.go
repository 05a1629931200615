package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/taskvault/taskvault/internal/service"
)

// AuthHandler handles user registration.
type AuthHandler struct {
	userService *service.UserService
	logger      zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(userService *service.UserService, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		logger:      logger.With().Str("handler", "auth").Logger(),
	}
}

// SignUpRequest is the request body for user registration.
type SignUpRequest struct {
	Username string `json:"Username"`
	Password string `json:"Password"`
}

// SignUpResponse is the response body for a registered user.
type SignUpResponse struct {
	Id       string `json:"Id"`
	Username string `json:"Username"`
}

// RegisterRoutes registers authentication routes.
func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/signUp", h.handleSignUp)
}

// handleSignUp registers a new user account.
func (h *AuthHandler) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var req SignUpRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "request body must be valid JSON")
		return
	}

	user, err := h.userService.SignUp(r.Context(), req.Username, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, SignUpResponse{
		Id:       user.ID.String(),
		Username: user.Username,
	})
}
