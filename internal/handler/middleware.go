package handler

import (
	"net/http"
	"strings"
)

// RequireAdmin gates moderation endpoints behind a single shared static secret,
// compared exactly against the Bearer token of the Authorization header. An
// empty server-side secret is a deployment fault and is reported as such,
// distinct from an authorization failure.
func RequireAdmin(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secret == "" {
				writeError(w, http.StatusInternalServerError, "Server misconfiguration: ADMIN_SECRET not set")
				return
			}

			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || token != secret {
				writeError(w, http.StatusUnauthorized, "Unauthorized. Invalid or missing token.")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
