package middleware

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/vkuzmenko/linkmark/internal/auth"
	"github.com/vkuzmenko/linkmark/pkg/ctxutil"
)

// Auth returns middleware that requires the request to authenticate
// against one of the given authenticators, tried in order. The first
// success wins and its principal is stored in the context. All
// failures reject with 401.
func Auth(logger *slog.Logger, authenticators ...auth.Authenticator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, a := range authenticators {
				principal, err := a.Authenticate(r)
				if err != nil {
					continue
				}
				ctx := ctxutil.WithChannel(r.Context(), string(principal.Channel))
				// Channel principals have no user ID; the owning user
				// is resolved from the payload downstream.
				if principal.UserID != uuid.Nil {
					ctx = ctxutil.WithUserID(ctx, principal.UserID)
				}
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			logger.DebugContext(r.Context(), "request rejected",
				slog.String("path", r.URL.Path))
			http.Error(w, "unauthorized", http.StatusUnauthorized)
		})
	}
}
