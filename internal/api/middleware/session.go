package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// SessionHeader carries the session id on requests and responses.
const SessionHeader = "X-Session-ID"

type sessionContextKey struct{}

// SessionMiddleware resolves the caller's session id. A missing or blank
// header gets a fresh UUID, so first-time callers land on a default
// session without a separate create step. The resolved id is echoed back
// on the response so the client can persist it.
func SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := strings.TrimSpace(r.Header.Get(SessionHeader))
		if sessionID == "" {
			sessionID = uuid.New().String()
		}

		w.Header().Set(SessionHeader, sessionID)
		ctx := context.WithValue(r.Context(), sessionContextKey{}, sessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SessionIDFromContext returns the session id resolved by
// SessionMiddleware, or empty when the request did not pass through it.
func SessionIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(sessionContextKey{}).(string); ok {
		return id
	}
	return ""
}
