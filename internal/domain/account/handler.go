package account

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/edusave/edusave-api/internal/pkg/errorhandler"
	"github.com/edusave/edusave-api/internal/pkg/response"
	"github.com/edusave/edusave-api/internal/pkg/validator"
)

// Handler handles account HTTP requests
type Handler struct {
	svc *Service
}

// NewHandler creates account handler
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Create handles POST /accounts
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	a, err := h.svc.Create(r.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrNRICExists) {
			response.Conflict(w, "An account with this NRIC already exists")
			return
		}
		errorhandler.Internal(r.Context(), w, "create account failed", err)
		return
	}

	response.Created(w, ToResponse(a, time.Now()))
}

// Get handles GET /accounts/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid account ID")
		return
	}

	a, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			response.NotFound(w, "Account not found")
			return
		}
		errorhandler.Internal(r.Context(), w, "get account failed", err)
		return
	}

	response.OK(w, ToResponse(a, time.Now()))
}

// List handles GET /accounts
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseListFilter(r)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	accounts, total, err := h.svc.List(r.Context(), filter)
	if err != nil {
		errorhandler.Internal(r.Context(), w, "list accounts failed", err)
		return
	}

	now := time.Now()
	resp := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		resp[i] = ToResponse(a, now)
	}

	response.WithMeta(w, resp, response.Meta{
		Total:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	})
}

// Update handles PUT /accounts/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid account ID")
		return
	}

	var req UpdateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	a, err := h.svc.Update(r.Context(), id, &req)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			response.NotFound(w, "Account not found")
			return
		}
		errorhandler.Internal(r.Context(), w, "update account failed", err)
		return
	}

	response.OK(w, ToResponse(a, time.Now()))
}

// Deactivate handles DELETE /accounts/{id}
func (h *Handler) Deactivate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid account ID")
		return
	}

	if err := h.svc.Deactivate(r.Context(), id); err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			response.NotFound(w, "Account not found")
			return
		}
		errorhandler.Internal(r.Context(), w, "deactivate account failed", err)
		return
	}

	response.NoContent(w)
}

func parseListFilter(r *http.Request) (ListFilter, error) {
	q := r.URL.Query()
	filter := ListFilter{
		Search: strings.TrimSpace(q.Get("search")),
		Limit:  50,
	}

	for _, v := range splitCSV(q.Get("status")) {
		filter.Statuses = append(filter.Statuses, Status(v))
	}
	for _, v := range splitCSV(q.Get("education_level")) {
		filter.EducationLevels = append(filter.EducationLevels, EducationLevel(v))
	}
	for _, v := range splitCSV(q.Get("in_school")) {
		filter.SchoolingStatuses = append(filter.SchoolingStatuses, SchoolingStatus(v))
	}
	for _, v := range splitCSV(q.Get("residential_status")) {
		filter.ResidentialStatuses = append(filter.ResidentialStatuses, ResidentialStatus(v))
	}

	var err error
	if filter.MinBalance, err = parseInt64Param(q.Get("min_balance")); err != nil {
		return filter, errors.New("min_balance must be an integer")
	}
	if filter.MaxBalance, err = parseInt64Param(q.Get("max_balance")); err != nil {
		return filter, errors.New("max_balance must be an integer")
	}
	if filter.MinAge, err = parseIntParam(q.Get("min_age")); err != nil {
		return filter, errors.New("min_age must be an integer")
	}
	if filter.MaxAge, err = parseIntParam(q.Get("max_age")); err != nil {
		return filter, errors.New("max_age must be an integer")
	}

	if v := q.Get("sort_by"); v != "" {
		filter.SortField = SortField(v)
	}
	filter.SortDesc = q.Get("sort_dir") == "desc"

	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 200 {
			return filter, errors.New("limit must be between 1 and 200")
		}
		filter.Limit = n
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return filter, errors.New("offset must be a non-negative integer")
		}
		filter.Offset = n
	}

	return filter, nil
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseInt64Param(s string) (*int64, error) {
	if s == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func parseIntParam(s string) (*int, error) {
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, err
	}
	return &n, nil
}
