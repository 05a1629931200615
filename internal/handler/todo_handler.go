package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/taskvault/taskvault/internal/auth"
	"github.com/taskvault/taskvault/internal/domain"
	"github.com/taskvault/taskvault/internal/service"
)

// TodoHandler handles the identity-scoped to-do endpoints. All routes are
// registered behind the API key middleware, so the request context always
// carries the caller identity.
type TodoHandler struct {
	todoService *service.TodoService
	logger      zerolog.Logger
}

// NewTodoHandler creates a new TodoHandler.
func NewTodoHandler(todoService *service.TodoService, logger zerolog.Logger) *TodoHandler {
	return &TodoHandler{
		todoService: todoService,
		logger:      logger.With().Str("handler", "todo").Logger(),
	}
}

// TodoRequest is the request body for creating or updating an item.
type TodoRequest struct {
	Title       string `json:"Title"`
	Description string `json:"Description"`
	Difficulty  int    `json:"Difficulty"`
}

// TodoResponse is the wire shape of a to-do item.
type TodoResponse struct {
	Id          string    `json:"Id"`
	UserId      string    `json:"UserId"`
	Title       string    `json:"Title"`
	Description string    `json:"Description"`
	Difficulty  int       `json:"Difficulty"`
	IsDone      bool      `json:"IsDone"`
	DateCreated time.Time `json:"DateCreated"`
}

func toTodoResponse(todo *domain.Todo) TodoResponse {
	return TodoResponse{
		Id:          todo.ID.String(),
		UserId:      todo.UserID.String(),
		Title:       todo.Title,
		Description: todo.Description,
		Difficulty:  int(todo.Difficulty),
		IsDone:      todo.IsDone,
		DateCreated: todo.CreatedAt,
	}
}

// RegisterRoutes registers to-do routes.
func (h *TodoHandler) RegisterRoutes(r chi.Router) {
	r.Get("/todos", h.handleList)
	r.Post("/todos", h.handleCreate)
	r.Get("/todos/{id}", h.handleGet)
	r.Put("/todos/{id}", h.handleUpdate)
	r.Patch("/todos/{id}/toggleStatus", h.handleToggleStatus)
	r.Delete("/todos/{id}", h.handleDelete)
}

// handleList returns all items owned by the caller.
func (h *TodoHandler) handleList(w http.ResponseWriter, r *http.Request) {
	identity := auth.MustIdentityFromContext(r.Context())

	todos, err := h.todoService.List(r.Context(), identity.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response := make([]TodoResponse, 0, len(todos))
	for _, todo := range todos {
		response = append(response, toTodoResponse(todo))
	}

	writeJSON(w, http.StatusOK, response)
}

// handleGet returns a single item owned by the caller.
func (h *TodoHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	identity := auth.MustIdentityFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_todo_id", "todo ID must be a valid UUID")
		return
	}

	todo, err := h.todoService.Get(r.Context(), id, identity.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toTodoResponse(todo))
}

// handleCreate adds a new item for the caller.
func (h *TodoHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	identity := auth.MustIdentityFromContext(r.Context())

	var req TodoRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "request body must be valid JSON")
		return
	}

	todo, err := h.todoService.Create(r.Context(), identity.UserID, req.Title, req.Description, domain.Difficulty(req.Difficulty))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toTodoResponse(todo))
}

// handleUpdate replaces the mutable fields of an item owned by the caller.
func (h *TodoHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	identity := auth.MustIdentityFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_todo_id", "todo ID must be a valid UUID")
		return
	}

	var req TodoRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "request body must be valid JSON")
		return
	}

	todo, err := h.todoService.Update(r.Context(), id, identity.UserID, req.Title, req.Description, domain.Difficulty(req.Difficulty))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toTodoResponse(todo))
}

// handleToggleStatus flips an item's done flag.
func (h *TodoHandler) handleToggleStatus(w http.ResponseWriter, r *http.Request) {
	identity := auth.MustIdentityFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_todo_id", "todo ID must be a valid UUID")
		return
	}

	todo, err := h.todoService.ToggleStatus(r.Context(), id, identity.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toTodoResponse(todo))
}

// handleDelete removes an item owned by the caller.
func (h *TodoHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	identity := auth.MustIdentityFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_todo_id", "todo ID must be a valid UUID")
		return
	}

	if err := h.todoService.Delete(r.Context(), id, identity.UserID); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
