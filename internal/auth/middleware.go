package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"food-delivery/internal/common/logger"
	"food-delivery/internal/domain"
)

type userKey struct{}

// UserSourceInterface loads the full user record for an authenticated id.
type UserSourceInterface interface {
	GetUser(ctx context.Context, id int64) (domain.User, bool, error)
}

// Middleware authenticates every request: Bearer token, session lookup, user
// load, then the user rides the request context. All failures collapse into
// one uniform 401 so callers cannot probe which part was wrong.
func Middleware(sessions SessionResolverInterface, users UserSourceInterface, lg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := r.Header.Get("X-Request-Id")
			if reqID == "" {
				reqID = uuid.NewString()
			}
			w.Header().Set("X-Request-Id", reqID)

			token := bearerToken(r)
			if token == "" {
				deny(w)
				return
			}
			userID, ok, err := sessions.Resolve(r.Context(), token)
			if err != nil {
				lg.Error("session_lookup_failed", err, map[string]any{"request_id": reqID})
				deny(w)
				return
			}
			if !ok {
				deny(w)
				return
			}
			user, ok, err := users.GetUser(r.Context(), userID)
			if err != nil {
				lg.Error("user_lookup_failed", err, map[string]any{"request_id": reqID})
				deny(w)
				return
			}
			if !ok {
				deny(w)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
}

func deny(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"type":   "unauthorized",
		"title":  http.StatusText(http.StatusUnauthorized),
		"status": http.StatusUnauthorized,
	})
}

func WithUser(ctx context.Context, u domain.User) context.Context {
	return context.WithValue(ctx, userKey{}, u)
}

func UserFrom(ctx context.Context) (domain.User, bool) {
	u, ok := ctx.Value(userKey{}).(domain.User)
	return u, ok
}
