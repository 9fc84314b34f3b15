package middleware

import (
	"crypto/subtle"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/JonMunkholm/prospect-explorer/internal/config"
)

// APIKeyAuth guards the JSON API with the configured keys. A key is read
// from X-API-Key or an "Authorization: Bearer" header. When RequireAPIKey
// is off every request passes; when it is on with no keys, none do.
func APIKeyAuth(cfg *config.SecurityConfig) func(http.Handler) http.Handler {
	if !cfg.RequireAPIKey {
		return func(next http.Handler) http.Handler { return next }
	}

	keys := make([][]byte, len(cfg.APIKeys))
	for i, k := range cfg.APIKeys {
		keys[i] = []byte(k)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := requestKey(r)
			switch {
			case key == "":
				rejectKey(w, r, http.StatusUnauthorized, "missing API key", "AUTH_MISSING_KEY")
			case !matchesAny([]byte(key), keys):
				rejectKey(w, r, http.StatusForbidden, "invalid API key", "AUTH_INVALID_KEY")
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}

func requestKey(r *http.Request) string {
	if key := strings.TrimSpace(r.Header.Get("X-API-Key")); key != "" {
		return key
	}
	if token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

// matchesAny compares against every key so timing does not reveal which
// one matched.
func matchesAny(key []byte, keys [][]byte) bool {
	match := 0
	for _, k := range keys {
		match |= subtle.ConstantTimeCompare(key, k)
	}
	return match == 1
}

func rejectKey(w http.ResponseWriter, r *http.Request, status int, message, code string) {
	slog.Warn("api key rejected",
		"code", code,
		"method", r.Method,
		"path", r.URL.Path,
		"ip", ClientIP(r),
	)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	fmt.Fprintf(w, `{"error":%q,"code":%q}`+"\n", message, code)
}
