package schedule

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/edusave/edusave-api/internal/domain/account"
	"github.com/edusave/edusave-api/internal/domain/rule"
	"github.com/edusave/edusave-api/internal/pkg/errorhandler"
	"github.com/edusave/edusave-api/internal/pkg/response"
	"github.com/edusave/edusave-api/internal/pkg/validator"
)

// Handler handles schedule HTTP requests
type Handler struct {
	svc *Service
}

// NewHandler creates schedule handler
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// ScheduleRules handles POST /schedules/rules
func (h *Handler) ScheduleRules(w http.ResponseWriter, r *http.Request) {
	var req ScheduleRulesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	resp, err := h.svc.ScheduleRules(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, rule.ErrRuleNotFound):
			response.NotFound(w, "One or more rules not found")
		case errors.Is(err, ErrNoRulesSelected):
			response.BadRequest(w, "At least one rule must be selected")
		case errors.Is(err, ErrPastScheduleTime):
			response.BadRequest(w, "Scheduled time must be in the future")
		default:
			errorhandler.Internal(r.Context(), w, "schedule rules failed", err)
		}
		return
	}

	response.Created(w, resp)
}

// TopUpIndividual handles POST /schedules/individual
func (h *Handler) TopUpIndividual(w http.ResponseWriter, r *http.Request) {
	var req IndividualTopUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	sched, err := h.svc.TopUpIndividual(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, account.ErrAccountNotFound):
			response.NotFound(w, "Account not found")
		case errors.Is(err, account.ErrAccountInactive):
			response.Error(w, http.StatusUnprocessableEntity, "ACCOUNT_INACTIVE", "Account is not active")
		case errors.Is(err, account.ErrNoBalanceFeature):
			response.Error(w, http.StatusUnprocessableEntity, "NO_BALANCE_FEATURE", "Account has no balance features")
		case errors.Is(err, ErrInvalidAmount):
			response.BadRequest(w, "Amount must be positive")
		case errors.Is(err, ErrPastScheduleTime):
			response.BadRequest(w, "Scheduled time must be in the future")
		default:
			errorhandler.Internal(r.Context(), w, "individual top-up failed", err)
		}
		return
	}

	response.Created(w, ToResponse(sched))
}

// List handles GET /schedules
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := ListFilter{
		Bucket: q.Get("bucket"),
		Type:   Type(q.Get("type")),
		Sort:   SortOrder(q.Get("sort")),
		Limit:  50,
	}

	if v := q.Get("min_amount"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			response.BadRequest(w, "min_amount must be an integer")
			return
		}
		filter.MinAmount = &n
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 200 {
			response.BadRequest(w, "limit must be between 1 and 200")
			return
		}
		filter.Limit = n
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			response.BadRequest(w, "offset must be a non-negative integer")
			return
		}
		filter.Offset = n
	}

	schedules, total, err := h.svc.List(r.Context(), filter)
	if err != nil {
		errorhandler.Internal(r.Context(), w, "list schedules failed", err)
		return
	}

	resp := make([]*ScheduleResponse, len(schedules))
	for i, s := range schedules {
		resp[i] = ToResponse(s)
	}

	response.WithMeta(w, resp, response.Meta{
		Total:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	})
}

// Get handles GET /schedules/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid schedule ID")
		return
	}

	sched, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrScheduleNotFound) {
			response.NotFound(w, "Schedule not found")
			return
		}
		errorhandler.Internal(r.Context(), w, "get schedule failed", err)
		return
	}

	response.OK(w, ToResponse(sched))
}

// Delete handles DELETE /schedules/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid schedule ID")
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, ErrScheduleNotFound):
			response.NotFound(w, "Schedule not found")
		case errors.Is(err, ErrScheduleNotPending):
			response.Conflict(w, "Only pending schedules can be cancelled")
		default:
			errorhandler.Internal(r.Context(), w, "delete schedule failed", err)
		}
		return
	}

	response.NoContent(w)
}
