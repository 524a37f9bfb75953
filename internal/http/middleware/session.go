package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"mecaflow/internal/domain"
	"mecaflow/internal/security"
	"mecaflow/internal/service"
)

type contextKey string

const (
	callerKey    contextKey = "caller"
	sessionIDKey contextKey = "session_id"
)

func CallerFromContext(ctx context.Context) (domain.Caller, bool) {
	caller, ok := ctx.Value(callerKey).(domain.Caller)
	return caller, ok
}

func SessionIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(sessionIDKey).(string)
	return id
}

// WithCaller is used by handler tests to inject an authenticated identity.
func WithCaller(ctx context.Context, caller domain.Caller, sessionID string) context.Context {
	ctx = context.WithValue(ctx, callerKey, caller)
	return context.WithValue(ctx, sessionIDKey, sessionID)
}

// SessionLoader resolves the session cookie into a Caller on the request
// context. A missing or expired session is not an error here; the gate
// decides what anonymous requests may do.
type SessionLoader struct {
	sessions *service.SessionStore
	logger   *slog.Logger
}

func NewSessionLoader(sessions *service.SessionStore, logger *slog.Logger) *SessionLoader {
	return &SessionLoader{sessions: sessions, logger: logger}
}

func (l *SessionLoader) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := security.GetCookie(r, security.SessionCookieName)
		if id == "" {
			next.ServeHTTP(w, r)
			return
		}

		caller, err := l.sessions.Get(r.Context(), id)
		if err != nil {
			if !errors.Is(err, service.ErrSessionNotFound) {
				l.logger.WarnContext(r.Context(), "session lookup failed", slog.String("error", err.Error()))
			}
			next.ServeHTTP(w, r)
			return
		}

		// Sliding idle window: each authenticated request refreshes the TTL.
		if err := l.sessions.Touch(r.Context(), id); err != nil && !errors.Is(err, service.ErrSessionNotFound) {
			l.logger.WarnContext(r.Context(), "session touch failed", slog.String("error", err.Error()))
		}

		next.ServeHTTP(w, r.WithContext(WithCaller(r.Context(), caller, id)))
	})
}
