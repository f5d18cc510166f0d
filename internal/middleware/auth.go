// File: internal/middleware/auth.go
package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/iyunix/go-vendornexus/internal/auth"
)

// NewOwnerMiddleware resolves the vault owner from a bearer token. With an
// empty secret every request runs as the anonymous owner.
func NewOwnerMiddleware(secret []byte, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(secret) == 0 {
				next.ServeHTTP(w, r)
				return
			}

			header := r.Header.Get("Authorization")
			token, found := strings.CutPrefix(header, "Bearer ")
			if !found || strings.TrimSpace(token) == "" {
				logger.Warn("missing bearer token", "path", r.URL.Path)
				unauthorized(w)
				return
			}

			owner, err := auth.ValidateToken(strings.TrimSpace(token), secret)
			if err != nil {
				logger.Warn("invalid bearer token", "path", r.URL.Path, "error", err)
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), OwnerKey, owner)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", `Bearer realm="vault"`)
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "Unauthorized"})
}
