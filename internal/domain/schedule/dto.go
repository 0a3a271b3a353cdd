package schedule

import (
	"time"

	"github.com/google/uuid"
)

// ScheduleRulesRequest runs one or more rules, now or later
type ScheduleRulesRequest struct {
	RuleIDs       []uuid.UUID `json:"rule_ids" validate:"required,min=1,dive,required"`
	ExecuteNow    bool        `json:"execute_now"`
	ScheduledDate string      `json:"scheduled_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	ScheduledTime string      `json:"scheduled_time,omitempty" validate:"omitempty,datetime=15:04"`
}

// IndividualTopUpRequest credits a single account, now or later
type IndividualTopUpRequest struct {
	AccountID     uuid.UUID `json:"account_id" validate:"required"`
	Amount        int64     `json:"amount" validate:"required,gt=0"`
	ExecuteNow    bool      `json:"execute_now"`
	ScheduledDate string    `json:"scheduled_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	ScheduledTime string    `json:"scheduled_time,omitempty" validate:"omitempty,datetime=15:04"`
}

// ListFilter narrows the admin schedule list
type ListFilter struct {
	// Bucket groups statuses: "upcoming" covers scheduled and
	// processing, "completed" covers completed and failed.
	Bucket    string
	Type      Type
	MinAmount *int64
	Sort      SortOrder
	Limit     int
	Offset    int
}

// SortOrder enumerates schedule list orderings
type SortOrder string

const (
	SortCreatedDesc       SortOrder = "created_desc"
	SortScheduledEarliest SortOrder = "scheduled_earliest"
	SortScheduledLatest   SortOrder = "scheduled_latest"
)

// ScheduleResponse for API responses
type ScheduleResponse struct {
	ID             uuid.UUID  `json:"id"`
	Type           string     `json:"type"`
	Status         string     `json:"status"`
	Amount         int64      `json:"amount"`
	ScheduledDate  string     `json:"scheduled_date"`
	ScheduledTime  string     `json:"scheduled_time"`
	RuleID         *uuid.UUID `json:"rule_id,omitempty"`
	RuleName       string     `json:"rule_name,omitempty"`
	EligibleCount  *int64     `json:"eligible_count,omitempty"`
	AccountID      *uuid.UUID `json:"account_id,omitempty"`
	AccountName    string     `json:"account_name,omitempty"`
	ProcessedCount *int64     `json:"processed_count,omitempty"`
	ExecutedDate   string     `json:"executed_date,omitempty"`
	Remarks        string     `json:"remarks,omitempty"`
	CreatedAt      string     `json:"created_at"`
}

// ScheduleRulesResponse reports the created schedules plus a
// user-facing total of distinct accounts across all selected rules.
// The union count is informational only and never persisted.
type ScheduleRulesResponse struct {
	Schedules           []*ScheduleResponse `json:"schedules"`
	TotalUniqueAccounts int                 `json:"total_unique_accounts"`
}

// ToResponse converts entity to response
func ToResponse(s *TopUpSchedule) *ScheduleResponse {
	resp := &ScheduleResponse{
		ID:            s.ID,
		Type:          string(s.Type),
		Status:        string(s.Status),
		Amount:        s.Amount,
		ScheduledDate: s.ScheduledDate.Format("2006-01-02"),
		ScheduledTime: s.ScheduledTime,
		CreatedAt:     s.CreatedAt.Format(time.RFC3339),
	}

	if s.RuleID.Valid {
		id := s.RuleID.UUID
		resp.RuleID = &id
	}
	if s.RuleName.Valid {
		resp.RuleName = s.RuleName.String
	}
	if s.EligibleCount.Valid {
		n := s.EligibleCount.Int64
		resp.EligibleCount = &n
	}
	if s.AccountID.Valid {
		id := s.AccountID.UUID
		resp.AccountID = &id
	}
	if s.AccountName.Valid {
		resp.AccountName = s.AccountName.String
	}
	if s.ProcessedCount.Valid {
		n := s.ProcessedCount.Int64
		resp.ProcessedCount = &n
	}
	if s.ExecutedDate.Valid {
		resp.ExecutedDate = s.ExecutedDate.Time.Format(time.RFC3339)
	}
	if s.Remarks.Valid {
		resp.Remarks = s.Remarks.String
	}

	return resp
}
