package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/eventtracker/server/internal/api/httpx"
	"github.com/eventtracker/server/internal/auth"
	"github.com/eventtracker/server/internal/metrics"
)

type ctxKey struct{}

var actorKey ctxKey

// ActorID returns the authenticated user's id. The actor always travels in
// the request context set here, never in package-level state.
func ActorID(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(actorKey).(string)
	return v, ok
}

func WithActor(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, actorKey, userID)
}

type AuthMiddleware struct {
	TM *auth.TokenManager
}

func NewAuthMiddleware(tm *auth.TokenManager) *AuthMiddleware {
	return &AuthMiddleware{TM: tm}
}

// Auth requires a Bearer access token and puts the actor in the context.
func (m *AuthMiddleware) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ah := r.Header.Get("Authorization")
		if ah == "" || !strings.HasPrefix(strings.ToLower(ah), "bearer ") {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token", nil)
			return
		}
		token := strings.TrimSpace(ah[len("Bearer "):])

		claims, err := m.TM.ParseAccess(token)
		if err != nil {
			metrics.AuthFailures.Inc()
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "invalid access token", nil)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), claims.UserID)))
	})
}
