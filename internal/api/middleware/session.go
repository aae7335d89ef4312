package middleware

import (
	"net/http"

	"github.com/futig/scopeguard/internal/config"
	"github.com/futig/scopeguard/internal/pkg/logger"
	"github.com/futig/scopeguard/internal/session"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Sessions binds every request to a session found by cookie, creating one
// when the cookie is missing or stale. The session stays locked until the
// request is done, so actions of one session never interleave.
func Sessions(manager *session.Manager, cfg config.SessionConfig) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s := lockSession(manager, r, cfg.CookieName)
			if s == nil {
				s = manager.Create()
				s.Lock()
				setSessionCookie(w, cfg, s.ID)
				ctxzap.Debug(r.Context(), "session created")
			}
			defer s.Unlock()
			defer manager.Touch(s)

			ctx := session.ContextWithSession(r.Context(), s)
			ctx = session.ContextWithRotator(ctx, func() {
				manager.Rotate(s)
				setSessionCookie(w, cfg, s.ID)
				ctxzap.Debug(r.Context(), "session rotated", zap.String("new_session_id", s.ID))
			})
			ctx = logger.WithSession(ctx, s.ID)
			if s.State.Identity != nil {
				ctx = logger.WithUser(ctx, s.State.Identity.ID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// lockSession returns the cookie's session locked, or nil. A session rotated
// while this request waited for the lock no longer answers to the old id.
func lockSession(manager *session.Manager, r *http.Request, cookieName string) *session.Session {
	cookie, err := r.Cookie(cookieName)
	if err != nil {
		return nil
	}

	s, ok := manager.Get(cookie.Value)
	if !ok {
		return nil
	}

	s.Lock()
	if s.ID != cookie.Value {
		s.Unlock()
		return nil
	}
	return s
}

func setSessionCookie(w http.ResponseWriter, cfg config.SessionConfig, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     cfg.CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
