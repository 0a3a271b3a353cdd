package rule

import (
	"github.com/go-chi/chi/v5"
)

// Routes returns admin rule management routes
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	r.Get("/{id}/eligible", h.Eligible)

	return r
}
