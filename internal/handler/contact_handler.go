package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/portfolio/backend/internal/service"
)

// ContactHandler handles public contact form submission.
type ContactHandler struct {
	contactService service.ContactService
}

// NewContactHandler creates a ContactHandler with the given service.
func NewContactHandler(contactService service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// submitRequest is the expected JSON body for POST /contact.
type submitRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// submitResponse is the JSON response for POST /contact.
type submitResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Submit handles POST /contact. Validation failures return the first violation;
// storage failures return a generic message and are logged server-side only.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	in := service.SubmitInput{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	}

	if err := h.contactService.Submit(r.Context(), in); err != nil {
		var ve *service.ValidationError
		if errors.As(err, &ve) {
			writeError(w, http.StatusBadRequest, ve.Message)
			return
		}
		slog.Error("contact submission failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Something went wrong. Please try again later.")
		return
	}

	writeJSON(w, http.StatusCreated, submitResponse{
		Success: true,
		Message: "Thank you! Your message has been sent successfully.",
	})
}
