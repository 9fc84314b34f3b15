package web

import (
	"net/http"

	"github.com/JonMunkholm/prospect-explorer/internal/logging"
)

// sessionHeader lets API clients without a cookie jar carry their session.
const sessionHeader = "X-Session-ID"

// sessionMiddleware resolves the caller's session from the header or cookie,
// starting a new one when it is missing or expired. The ID is stored in the
// request context for handlers and logging.
func (s *Server) sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id := r.Header.Get(sessionHeader)
		if id == "" {
			if c, err := r.Cookie(s.cfg.Session.CookieName); err == nil {
				id = c.Value
			}
		}

		if _, err := s.service.Session(id); id == "" || err != nil {
			state := s.service.NewSession(ctx)
			id = state.ID
			http.SetCookie(w, &http.Cookie{
				Name:     s.cfg.Session.CookieName,
				Value:    id,
				Path:     "/",
				MaxAge:   int(s.cfg.Session.TTL.Seconds()),
				HttpOnly: true,
				Secure:   s.cfg.Session.CookieSecure,
				SameSite: http.SameSiteLaxMode,
			})
			logging.WithFields(ctx, "session_id", id).Debug("session started")
		}

		w.Header().Set(sessionHeader, id)
		next.ServeHTTP(w, r.WithContext(logging.WithSessionID(ctx, id)))
	})
}

// sessionID returns the ID stored by sessionMiddleware.
func sessionID(r *http.Request) string {
	return logging.SessionIDFromContext(r.Context())
}
