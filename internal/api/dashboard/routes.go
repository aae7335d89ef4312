package dashboard

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers dashboard routes, all behind gate
func RegisterRoutes(r chi.Router, h *Handler, gate func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(gate)

		r.Post("/chats/new", h.NewChat)
		r.Post("/chats/{id}/load", h.LoadChat)
		r.Post("/defense", h.SubmitDefense)
		r.Get("/draft/export", h.ExportDraft)
	})
}
