package transaction

import (
	"github.com/go-chi/chi/v5"
)

// MemberRoutes returns self-service routes for the logged-in member
func (h *Handler) MemberRoutes() chi.Router {
	r := chi.NewRouter()

	r.Get("/balance", h.MyBalance)
	r.Get("/transactions", h.MyStatement)

	return r
}
