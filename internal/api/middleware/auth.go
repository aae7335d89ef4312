package middleware

import (
	"net/http"

	"github.com/futig/scopeguard/internal/session"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
)

// RequireIdentity lets the request through only when the session is signed
// in. Otherwise denied handles it and the wrapped handler never runs.
func RequireIdentity(denied http.Handler) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			state, ok := session.StateFromContext(r.Context())
			if !ok || !state.IsAuthenticated() {
				ctxzap.Info(r.Context(), "unauthenticated request to gated route")
				denied.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
