package rule

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/edusave/edusave-api/internal/pkg/errorhandler"
	"github.com/edusave/edusave-api/internal/pkg/response"
	"github.com/edusave/edusave-api/internal/pkg/validator"
)

// Handler handles rule HTTP requests
type Handler struct {
	svc *Service
}

// NewHandler creates rule handler
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Create handles POST /rules
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}
	if req.MinAge != nil && req.MaxAge != nil && *req.MinAge > *req.MaxAge {
		response.BadRequest(w, "min_age cannot exceed max_age")
		return
	}
	if req.MinBalance != nil && req.MaxBalance != nil && *req.MinBalance > *req.MaxBalance {
		response.BadRequest(w, "min_balance cannot exceed max_balance")
		return
	}

	rule, err := h.svc.Create(r.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrRuleNameTaken) {
			response.Conflict(w, "A rule with this name already exists")
			return
		}
		errorhandler.Internal(r.Context(), w, "create rule failed", err)
		return
	}

	response.Created(w, ToResponse(rule))
}

// Get handles GET /rules/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid rule ID")
		return
	}

	rule, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrRuleNotFound) {
			response.NotFound(w, "Rule not found")
			return
		}
		errorhandler.Internal(r.Context(), w, "get rule failed", err)
		return
	}

	response.OK(w, ToResponse(rule))
}

// List handles GET /rules
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	rules, err := h.svc.List(r.Context())
	if err != nil {
		errorhandler.Internal(r.Context(), w, "list rules failed", err)
		return
	}

	resp := make([]*RuleResponse, len(rules))
	for i, rl := range rules {
		resp[i] = ToResponse(rl)
	}
	response.OK(w, resp)
}

// Update handles PUT /rules/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid rule ID")
		return
	}

	var req UpdateRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	rule, err := h.svc.Update(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrRuleNotFound):
			response.NotFound(w, "Rule not found")
		case errors.Is(err, ErrRuleNameTaken):
			response.Conflict(w, "A rule with this name already exists")
		default:
			errorhandler.Internal(r.Context(), w, "update rule failed", err)
		}
		return
	}

	response.OK(w, ToResponse(rule))
}

// Delete handles DELETE /rules/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid rule ID")
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, ErrRuleNotFound):
			response.NotFound(w, "Rule not found")
		case errors.Is(err, ErrRuleInUse):
			response.Conflict(w, "Rule is referenced by existing schedules")
		default:
			errorhandler.Internal(r.Context(), w, "delete rule failed", err)
		}
		return
	}

	response.NoContent(w)
}

// Eligible handles GET /rules/{id}/eligible
func (h *Handler) Eligible(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid rule ID")
		return
	}

	preview, err := h.svc.PreviewEligible(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrRuleNotFound) {
			response.NotFound(w, "Rule not found")
			return
		}
		errorhandler.Internal(r.Context(), w, "eligibility preview failed", err)
		return
	}

	response.OK(w, preview)
}
