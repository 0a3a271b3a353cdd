package dashboard

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/edusave/edusave-api/internal/pkg/errorhandler"
	"github.com/edusave/edusave-api/internal/pkg/response"
)

// Handler serves admin dashboard stats
type Handler struct {
	repo *Repository
}

// NewHandler creates dashboard handler
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// Stats handles GET /dashboard
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.repo.GetStats(r.Context())
	if err != nil {
		errorhandler.Internal(r.Context(), w, "dashboard stats failed", err)
		return
	}

	response.OK(w, stats)
}

// Routes returns dashboard routes
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Stats)
	return r
}
