package schedule

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Status represents schedule lifecycle state
type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Type distinguishes rule-driven batch schedules from single-account
// top-ups
type Type string

const (
	TypeBatch      Type = "batch"
	TypeIndividual Type = "individual"
)

// TopUpSchedule records a planned or executed top-up. Exactly one of
// the rule pair or the account pair is populated, matching Type.
type TopUpSchedule struct {
	ID            uuid.UUID `db:"id"`
	Type          Type      `db:"type"`
	Status        Status    `db:"status"`
	Amount        int64     `db:"amount"` // cents, per account
	ScheduledDate time.Time `db:"scheduled_date"`
	ScheduledTime string    `db:"scheduled_time"` // "HH:MM"

	RuleID        uuid.NullUUID  `db:"rule_id"`
	RuleName      sql.NullString `db:"rule_name"`
	EligibleCount sql.NullInt64  `db:"eligible_count"`

	AccountID   uuid.NullUUID  `db:"account_id"`
	AccountName sql.NullString `db:"account_name"`

	ProcessedCount sql.NullInt64  `db:"processed_count"`
	ExecutedDate   sql.NullTime   `db:"executed_date"`
	Remarks        sql.NullString `db:"remarks"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// ScheduledAt combines the date and "HH:MM" time into a single instant
func (s *TopUpSchedule) ScheduledAt() time.Time {
	t, err := time.Parse("15:04", s.ScheduledTime)
	if err != nil {
		return s.ScheduledDate
	}
	return time.Date(
		s.ScheduledDate.Year(), s.ScheduledDate.Month(), s.ScheduledDate.Day(),
		t.Hour(), t.Minute(), 0, 0, s.ScheduledDate.Location(),
	)
}

// IsUpcoming reports whether the schedule has not yet run
func (s *TopUpSchedule) IsUpcoming() bool {
	return s.Status == StatusScheduled || s.Status == StatusProcessing
}
