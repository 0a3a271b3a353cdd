package transaction

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/edusave/edusave-api/internal/domain/account"
	"github.com/edusave/edusave-api/internal/middleware"
	"github.com/edusave/edusave-api/internal/pkg/errorhandler"
	"github.com/edusave/edusave-api/internal/pkg/response"
	"github.com/edusave/edusave-api/internal/pkg/validator"
)

// Handler handles transaction HTTP requests
type Handler struct {
	svc *Service
}

// NewHandler creates transaction handler
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// MyBalance handles GET /me/balance for the logged-in member
func (h *Handler) MyBalance(w http.ResponseWriter, r *http.Request) {
	accountID := middleware.GetAccountID(r.Context())
	if accountID == uuid.Nil {
		response.Forbidden(w, "No account linked to this user")
		return
	}

	balance, err := h.svc.Balance(r.Context(), accountID)
	if err != nil {
		h.writeError(w, r, err, "get balance failed")
		return
	}

	response.OK(w, BalanceResponse{Balance: balance})
}

// MyStatement handles GET /me/transactions for the logged-in member
func (h *Handler) MyStatement(w http.ResponseWriter, r *http.Request) {
	accountID := middleware.GetAccountID(r.Context())
	if accountID == uuid.Nil {
		response.Forbidden(w, "No account linked to this user")
		return
	}

	h.statement(w, r, accountID)
}

// Statement handles GET /accounts/{id}/transactions for admins
func (h *Handler) Statement(w http.ResponseWriter, r *http.Request) {
	accountID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid account ID")
		return
	}

	h.statement(w, r, accountID)
}

func (h *Handler) statement(w http.ResponseWriter, r *http.Request, accountID uuid.UUID) {
	filter := LedgerFilter{Search: r.URL.Query().Get("search")}
	if v := r.URL.Query().Get("type"); v != "" {
		filter.Types = append(filter.Types, Type(v))
	}

	stmt, err := h.svc.Statement(r.Context(), accountID, filter)
	if err != nil {
		h.writeError(w, r, err, "build statement failed")
		return
	}

	response.OK(w, stmt)
}

// Charge handles POST /accounts/{id}/charges for admins
func (h *Handler) Charge(w http.ResponseWriter, r *http.Request) {
	accountID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid account ID")
		return
	}

	var req ChargeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	if err := h.svc.ChargeFee(r.Context(), accountID, &req); err != nil {
		switch {
		case errors.Is(err, ErrInsufficientBalance):
			response.Error(w, http.StatusUnprocessableEntity, "INSUFFICIENT_BALANCE", "Account balance is insufficient")
		case errors.Is(err, ErrReferenceConflict):
			response.Conflict(w, "Reference already used with a different amount")
		default:
			h.writeError(w, r, err, "charge failed")
		}
		return
	}

	response.NoContent(w)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	switch {
	case errors.Is(err, account.ErrAccountNotFound), errors.Is(err, ErrAccountNotFound):
		response.NotFound(w, "Account not found")
	case errors.Is(err, account.ErrAccountInactive):
		response.Error(w, http.StatusUnprocessableEntity, "ACCOUNT_INACTIVE", "Account is not active")
	case errors.Is(err, ErrNoBalanceFeature):
		response.Error(w, http.StatusUnprocessableEntity, "NO_BALANCE_FEATURE", "Account has no balance features")
	default:
		errorhandler.Internal(r.Context(), w, msg, err)
	}
}
