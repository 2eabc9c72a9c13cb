package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func adminGateRequest(authorization string) (*httptest.ResponseRecorder, bool) {
	reached := false
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/admin/messages", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	RequireAdmin("s3cret")(inner).ServeHTTP(rec, req)
	return rec, reached
}

func TestRequireAdmin_ValidToken(t *testing.T) {
	rec, reached := adminGateRequest("Bearer s3cret")
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if !reached {
		t.Error("expected the wrapped handler to run")
	}
}

func TestRequireAdmin_MissingHeader(t *testing.T) {
	rec, reached := adminGateRequest("")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
	if reached {
		t.Error("expected the wrapped handler not to run")
	}
}

func TestRequireAdmin_MalformedHeader(t *testing.T) {
	for _, header := range []string{"s3cret", "bearer s3cret", "Basic s3cret", "Bearer"} {
		rec, reached := adminGateRequest(header)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("header %q: expected 401, got %d", header, rec.Code)
		}
		if reached {
			t.Errorf("header %q: expected the wrapped handler not to run", header)
		}
	}
}

func TestRequireAdmin_WrongToken(t *testing.T) {
	rec, _ := adminGateRequest("Bearer wrong")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}

	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	_ = json.NewDecoder(rec.Body).Decode(&resp)
	if resp.Success {
		t.Error("expected success=false")
	}
}

// TestRequireAdmin_MissingSecret verifies a missing server-side secret is a
// server fault, even when the client supplies a token.
func TestRequireAdmin_MissingSecret(t *testing.T) {
	reached := false
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
	})

	req := httptest.NewRequest(http.MethodGet, "/admin/messages", nil)
	req.Header.Set("Authorization", "Bearer anything")
	rec := httptest.NewRecorder()
	RequireAdmin("")(inner).ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500 for missing secret, got %d", rec.Code)
	}
	if reached {
		t.Error("expected the wrapped handler not to run")
	}

	var resp struct {
		Message string `json:"message"`
	}
	_ = json.NewDecoder(rec.Body).Decode(&resp)
	if resp.Message != "Server misconfiguration: ADMIN_SECRET not set" {
		t.Errorf("expected misconfiguration message, got %q", resp.Message)
	}
}

// TestRequireAdmin_EmptyBearerToken verifies "Bearer " with an empty token is
// rejected even though the secret comparison is exact.
func TestRequireAdmin_EmptyBearerToken(t *testing.T) {
	rec, reached := adminGateRequest("Bearer ")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
	if reached {
		t.Error("expected the wrapped handler not to run")
	}
}
