package schedule

import (
	"github.com/go-chi/chi/v5"
)

// Routes returns admin schedule routes
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Post("/rules", h.ScheduleRules)
	r.Post("/individual", h.TopUpIndividual)
	r.Get("/{id}", h.Get)
	r.Delete("/{id}", h.Delete)

	return r
}
