package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/portfolio/backend/internal/model"
	"github.com/portfolio/backend/internal/repository"
	"github.com/portfolio/backend/internal/service"
)

// AdminHandler handles moderation of stored contact messages. Routes using it
// must be wrapped with RequireAdmin.
type AdminHandler struct {
	moderationService service.ModerationService
}

// NewAdminHandler creates an AdminHandler with the given service.
func NewAdminHandler(moderationService service.ModerationService) *AdminHandler {
	return &AdminHandler{moderationService: moderationService}
}

// listResponse is the JSON response for GET /admin/messages.
type listResponse struct {
	Success bool                    `json:"success"`
	Data    []*model.ContactMessage `json:"data"`
	Count   int                     `json:"count"`
}

// List handles GET /admin/messages. Returns all messages, newest first.
func (h *AdminHandler) List(w http.ResponseWriter, r *http.Request) {
	messages, err := h.moderationService.List(r.Context())
	if err != nil {
		slog.Error("list messages failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch messages")
		return
	}

	// Return [] not null for empty lists
	if messages == nil {
		messages = []*model.ContactMessage{}
	}

	writeJSON(w, http.StatusOK, listResponse{
		Success: true,
		Data:    messages,
		Count:   len(messages),
	})
}

// updateResponse is the JSON response for PATCH /admin/messages/{id}.
type updateResponse struct {
	Success bool                  `json:"success"`
	Data    *model.ContactMessage `json:"data"`
}

// Update handles PATCH /admin/messages/{id}. Only the read and replied flags
// are applied; any other field in the body is ignored.
func (h *AdminHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var upd model.MessageUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	msg, err := h.moderationService.Update(r.Context(), id, upd)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Message not found")
			return
		}
		slog.Error("update message failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to update message")
		return
	}

	writeJSON(w, http.StatusOK, updateResponse{Success: true, Data: msg})
}
