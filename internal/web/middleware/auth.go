package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/JonMunkholm/leadlist/internal/config"
	"github.com/JonMunkholm/leadlist/internal/logging"
)

// APIKeyHeader carries the client's API key.
const APIKeyHeader = "X-API-Key"

// APIKeyAuth rejects requests whose X-API-Key is missing (401) or not one
// of cfg.APIKeys (403). When cfg.RequireAPIKey is false every request
// passes. With the gate on and no keys configured nothing passes; config
// validation refuses that combination at startup.
func APIKeyAuth(cfg *config.SecurityConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !cfg.RequireAPIKey {
				next.ServeHTTP(w, r)
				return
			}

			key := r.Header.Get(APIKeyHeader)
			status, code := 0, ""
			switch {
			case key == "":
				status, code = http.StatusUnauthorized, "AUTH_MISSING_KEY"
			case !isValidAPIKey(key, cfg.APIKeys):
				status, code = http.StatusForbidden, "AUTH_INVALID_KEY"
			default:
				next.ServeHTTP(w, r)
				return
			}

			logging.FromContext(r.Context()).Warn("auth rejected",
				"code", code,
				"path", r.URL.Path,
				"method", r.Method,
				"remote_addr", r.RemoteAddr,
			)
			writeJSONError(w, status, "API key required", code)
		})
	}
}

// isValidAPIKey compares key against every configured key in constant
// time, so timing does not reveal which key (if any) matched.
func isValidAPIKey(key string, validKeys []string) bool {
	valid := 0
	for _, validKey := range validKeys {
		valid |= subtle.ConstantTimeCompare([]byte(key), []byte(validKey))
	}
	return valid == 1
}
