package handler

import (
	"context"
	"net/http"

	"github.com/eventgate/server/internal/domain"
	"github.com/eventgate/server/internal/session"
)

type contextKey string

const identityContextKey contextKey = "identity"

// IdentityFromContext extracts the authenticated identity from the request
// context. The second return value is false when no session is present.
func IdentityFromContext(ctx context.Context) (domain.Identity, bool) {
	id, ok := ctx.Value(identityContextKey).(domain.Identity)
	return id, ok
}

// WithSession reads the session cookie and, when valid, injects the
// identity into the request context. Unauthenticated requests proceed
// without an identity; each handler decides how to react.
func WithSession(sessions *session.Manager, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id, ok := sessions.Read(r); ok {
			r = r.WithContext(context.WithValue(r.Context(), identityContextKey, id))
		}
		next.ServeHTTP(w, r)
	})
}

// SecurityHeaders sets baseline security headers on every response.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "same-origin")
		next.ServeHTTP(w, r)
	})
}
