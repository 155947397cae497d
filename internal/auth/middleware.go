package auth

import (
	"encoding/json"
	"net/http"

	"github.com/seezee/launcherhub/internal/models"
)

const (
	apiKeyHeader     = "X-Api-Key"
	apiKeyQueryParam = "api-key"
)

// Middleware returns an http.Handler middleware that enforces authentication.
// In open mode (no keys configured), all requests pass through.
// Otherwise the X-Api-Key header or the api-key query param must match a key.
// CORS preflights always pass.
func (s *Service) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions || s.IsOpenMode() {
			next.ServeHTTP(w, r)
			return
		}

		if s.VerifyKey(r.Header.Get(apiKeyHeader)) || s.VerifyKey(r.URL.Query().Get(apiKeyQueryParam)) {
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(models.ErrUnauthorized)
	})
}
