package handler

import (
	"encoding/json"
	"net/http"
)

// Handler holds dependencies shared by the plain endpoints.
type Handler struct {
	frontendURL string
}

// New creates the base Handler.
func New(frontendURL string) *Handler {
	return &Handler{frontendURL: frontendURL}
}

// CORS allows the configured frontend origin and answers preflight requests.
func (h *Handler) CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", h.frontendURL)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Allow-Credentials", "true")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// apiError is the uniform failure body: {"success":false,"message":...}.
type apiError struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// writeError writes a JSON failure response with the given status.
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(apiError{Success: false, Message: message})
}

// writeJSON writes a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
