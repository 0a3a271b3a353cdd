package rule

import (
	"time"

	"github.com/google/uuid"
)

// CreateRuleRequest for defining a top-up rule. Bound fields left out
// impose no constraint.
type CreateRuleRequest struct {
	Name           string  `json:"name" validate:"required,min=2,max=255"`
	Amount         int64   `json:"amount" validate:"required,gt=0"`
	MinAge         *int    `json:"min_age,omitempty" validate:"omitempty,gte=0,lte=150"`
	MaxAge         *int    `json:"max_age,omitempty" validate:"omitempty,gte=0,lte=150"`
	MinBalance     *int64  `json:"min_balance,omitempty" validate:"omitempty,gte=0"`
	MaxBalance     *int64  `json:"max_balance,omitempty" validate:"omitempty,gte=0"`
	InSchool       *string `json:"in_school,omitempty" validate:"omitempty,oneof=in_school not_in_school"`
	EducationLevel *string `json:"education_level,omitempty" validate:"omitempty,oneof=primary secondary post_secondary tertiary postgraduate"`
}

// UpdateRuleRequest edits a rule. Bound fields are replaced wholesale:
// the request carries the full criteria, not a delta.
type UpdateRuleRequest struct {
	Name           string  `json:"name" validate:"required,min=2,max=255"`
	Amount         int64   `json:"amount" validate:"required,gt=0"`
	Status         string  `json:"status,omitempty" validate:"omitempty,oneof=active inactive"`
	MinAge         *int    `json:"min_age,omitempty" validate:"omitempty,gte=0,lte=150"`
	MaxAge         *int    `json:"max_age,omitempty" validate:"omitempty,gte=0,lte=150"`
	MinBalance     *int64  `json:"min_balance,omitempty" validate:"omitempty,gte=0"`
	MaxBalance     *int64  `json:"max_balance,omitempty" validate:"omitempty,gte=0"`
	InSchool       *string `json:"in_school,omitempty" validate:"omitempty,oneof=in_school not_in_school"`
	EducationLevel *string `json:"education_level,omitempty" validate:"omitempty,oneof=primary secondary post_secondary tertiary postgraduate"`
}

// RuleResponse for API responses
type RuleResponse struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Amount         int64     `json:"amount"`
	Status         string    `json:"status"`
	MinAge         *int      `json:"min_age,omitempty"`
	MaxAge         *int      `json:"max_age,omitempty"`
	MinBalance     *int64    `json:"min_balance,omitempty"`
	MaxBalance     *int64    `json:"max_balance,omitempty"`
	InSchool       *string   `json:"in_school,omitempty"`
	EducationLevel *string   `json:"education_level,omitempty"`
	CreatedAt      string    `json:"created_at"`
}

// EligiblePreviewResponse reports the accounts a rule would credit if
// executed now.
type EligiblePreviewResponse struct {
	RuleID        uuid.UUID         `json:"rule_id"`
	RuleName      string            `json:"rule_name"`
	Amount        int64             `json:"amount"`
	EligibleCount int               `json:"eligible_count"`
	Accounts      []EligibleAccount `json:"accounts"`
}

// EligibleAccount is a compact account view in eligibility previews
type EligibleAccount struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	NRIC    string    `json:"nric"`
	Age     int       `json:"age"`
	Balance int64     `json:"balance"`
}

// ToResponse converts entity to response
func ToResponse(r *TopUpRule) *RuleResponse {
	return &RuleResponse{
		ID:             r.ID,
		Name:           r.Name,
		Amount:         r.Amount,
		Status:         string(r.Status),
		MinAge:         r.MinAge,
		MaxAge:         r.MaxAge,
		MinBalance:     r.MinBalance,
		MaxBalance:     r.MaxBalance,
		InSchool:       r.InSchool,
		EducationLevel: r.EducationLevel,
		CreatedAt:      r.CreatedAt.Format(time.RFC3339),
	}
}
