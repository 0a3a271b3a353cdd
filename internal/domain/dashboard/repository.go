package dashboard

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// Stats are the admin dashboard counters
type Stats struct {
	TotalAccounts      int   `db:"total_accounts" json:"total_accounts"`
	ActiveAccounts     int   `db:"active_accounts" json:"active_accounts"`
	UpcomingSchedules  int   `db:"upcoming_schedules" json:"upcoming_schedules"`
	CompletedSchedules int   `db:"completed_schedules" json:"completed_schedules"`
	TotalSchedules     int   `db:"total_schedules" json:"total_schedules"`
	TotalDisbursed     int64 `db:"total_disbursed" json:"total_disbursed"`
}

// Repository aggregates dashboard counters
type Repository struct {
	db *sqlx.DB
}

// NewRepository creates dashboard repository
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// GetStats runs the dashboard aggregate query
func (r *Repository) GetStats(ctx context.Context) (*Stats, error) {
	var s Stats
	err := r.db.GetContext(ctx, &s, `
		SELECT
			(SELECT COUNT(*) FROM account_holders) AS total_accounts,
			(SELECT COUNT(*) FROM account_holders WHERE status = 'active') AS active_accounts,
			(SELECT COUNT(*) FROM topup_schedules WHERE status IN ('scheduled', 'processing')) AS upcoming_schedules,
			(SELECT COUNT(*) FROM topup_schedules WHERE status = 'completed') AS completed_schedules,
			(SELECT COUNT(*) FROM topup_schedules) AS total_schedules,
			(SELECT COALESCE(SUM(amount), 0) FROM transactions WHERE type = 'top_up' AND status = 'completed') AS total_disbursed
	`)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
