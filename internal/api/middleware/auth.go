package middleware

import (
	"net/http"

	"github.com/vexlane/rosterd/internal/api/response"
	"github.com/vexlane/rosterd/internal/auth"
)

// Auth is middleware that checks the X-API-Key header against the
// configured operator keys. Missing or unrecognized keys return 401;
// the restricted mutation routes sit behind this check.
func Auth(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := GetRequestID(r.Context())

			rawKey := r.Header.Get("X-API-Key")
			if rawKey == "" {
				response.Err(w, http.StatusUnauthorized, "UNAUTHORIZED", "API key is required", requestID)
				return
			}

			if err := authService.Authenticate(rawKey); err != nil {
				response.Err(w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid API key", requestID)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
