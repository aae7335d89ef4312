package settings

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers account settings routes, all behind gate
func RegisterRoutes(r chi.Router, h *Handler, gate func(http.Handler) http.Handler) {
	r.Route("/settings", func(r chi.Router) {
		r.Use(gate)

		r.Post("/password", h.UpdatePassword)
		r.Post("/delete", h.DeleteAccount)
	})
}
