package layout

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/edusave/edusave-api/internal/middleware"
	"github.com/edusave/edusave-api/internal/pkg/errorhandler"
	"github.com/edusave/edusave-api/internal/pkg/response"
)

const maxLayoutSize = 256 << 10 // 256 KiB per document

// Handler handles page layout HTTP requests
type Handler struct {
	store *Store
}

// NewHandler creates layout handler
func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

// Get handles GET /layouts/{page}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	page := chi.URLParam(r, "page")

	doc, err := h.store.Get(r.Context(), userID, page)
	if err != nil {
		h.writeError(w, r, err, "get layout failed")
		return
	}

	response.OK(w, json.RawMessage(doc))
}

// Put handles PUT /layouts/{page}
func (h *Handler) Put(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	page := chi.URLParam(r, "page")

	doc, err := io.ReadAll(io.LimitReader(r.Body, maxLayoutSize))
	if err != nil {
		response.BadRequest(w, "Failed to read body")
		return
	}
	if !json.Valid(doc) {
		response.BadRequest(w, "Layout must be valid JSON")
		return
	}

	if err := h.store.Put(r.Context(), userID, page, doc); err != nil {
		h.writeError(w, r, err, "save layout failed")
		return
	}

	response.NoContent(w)
}

// Delete handles DELETE /layouts/{page}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	page := chi.URLParam(r, "page")

	if err := h.store.Delete(r.Context(), userID, page); err != nil {
		h.writeError(w, r, err, "delete layout failed")
		return
	}

	response.NoContent(w)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	switch {
	case errors.Is(err, ErrLayoutNotFound):
		response.NotFound(w, "Layout not found")
	case errors.Is(err, ErrStoreUnavailable):
		response.Error(w, http.StatusServiceUnavailable, "LAYOUT_STORE_UNAVAILABLE", "Layout persistence is not configured")
	default:
		errorhandler.Internal(r.Context(), w, msg, err)
	}
}

// Routes returns layout routes for any authenticated user
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/{page}", h.Get)
	r.Put("/{page}", h.Put)
	r.Delete("/{page}", h.Delete)

	return r
}
