package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers authentication routes. gate guards routes that
// need a signed-in session.
func RegisterRoutes(r chi.Router, h *Handler, gate func(http.Handler) http.Handler) {
	r.Get("/", h.Index)
	r.Post("/login", h.Login)
	r.Post("/signup", h.Signup)
	r.With(gate).Post("/logout", h.Logout)
}
