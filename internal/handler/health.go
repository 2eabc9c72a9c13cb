package handler

import (
	"net/http"
	"time"
)

type healthResponse struct {
	OK        bool   `json:"ok"`
	Timestamp string `json:"timestamp"`
}

// Health handles GET /health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		OK:        true,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
