package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines schedule data access
type Repository interface {
	Create(ctx context.Context, s *TopUpSchedule) error
	GetByID(ctx context.Context, id uuid.UUID) (*TopUpSchedule, error)
	List(ctx context.Context, filter ListFilter) ([]*TopUpSchedule, int, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListDue(ctx context.Context, now time.Time, limit int) ([]*TopUpSchedule, error)
	MarkProcessing(ctx context.Context, id uuid.UUID) error
	MarkCompleted(ctx context.Context, id uuid.UUID, processedCount int, executedAt time.Time, remarks string) error
	MarkFailed(ctx context.Context, id uuid.UUID, processedCount int, remarks string) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates schedule repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, s *TopUpSchedule) error {
	query := `
		INSERT INTO topup_schedules (
			id, type, status, amount, scheduled_date, scheduled_time,
			rule_id, rule_name, eligible_count,
			account_id, account_name,
			processed_count, executed_date, remarks,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9,
			$10, $11,
			$12, $13, $14,
			$15, $16
		)
	`
	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.Type, s.Status, s.Amount, s.ScheduledDate, s.ScheduledTime,
		s.RuleID, s.RuleName, s.EligibleCount,
		s.AccountID, s.AccountName,
		s.ProcessedCount, s.ExecutedDate, s.Remarks,
		s.CreatedAt, s.UpdatedAt,
	)
	return err
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*TopUpSchedule, error) {
	var s TopUpSchedule
	err := r.db.GetContext(ctx, &s, `SELECT * FROM topup_schedules WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrScheduleNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]*TopUpSchedule, int, error) {
	var (
		where []string
		args  []interface{}
	)

	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	switch filter.Bucket {
	case "upcoming":
		where = append(where, "status IN ('scheduled', 'processing')")
	case "completed":
		where = append(where, "status IN ('completed', 'failed')")
	}
	if filter.Type != "" {
		where = append(where, "type = "+arg(filter.Type))
	}
	if filter.MinAmount != nil {
		where = append(where, "amount >= "+arg(*filter.MinAmount))
	}

	whereClause := ""
	if len(where) > 0 {
		whereClause = "WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM topup_schedules "+whereClause, args...); err != nil {
		return nil, 0, err
	}

	var order string
	switch filter.Sort {
	case SortScheduledEarliest:
		order = "scheduled_date ASC, scheduled_time ASC"
	case SortScheduledLatest:
		order = "scheduled_date DESC, scheduled_time DESC"
	default:
		order = "created_at DESC"
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	query := fmt.Sprintf(
		"SELECT * FROM topup_schedules %s ORDER BY %s LIMIT %s OFFSET %s",
		whereClause, order, arg(limit), arg(filter.Offset),
	)

	var schedules []*TopUpSchedule
	if err := r.db.SelectContext(ctx, &schedules, query, args...); err != nil {
		return nil, 0, err
	}
	return schedules, total, nil
}

// Delete removes a schedule that has not started executing
func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM topup_schedules WHERE id = $1 AND status = 'scheduled'`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return getErr
		}
		return ErrScheduleNotPending
	}
	return nil
}

// ListDue returns deferred schedules whose scheduled instant has
// passed, oldest first.
func (r *repository) ListDue(ctx context.Context, now time.Time, limit int) ([]*TopUpSchedule, error) {
	var schedules []*TopUpSchedule
	err := r.db.SelectContext(ctx, &schedules, `
		SELECT * FROM topup_schedules
		WHERE status = 'scheduled'
		  AND scheduled_date + scheduled_time::time <= $1
		ORDER BY scheduled_date ASC, scheduled_time ASC
		LIMIT $2
	`, now, limit)
	return schedules, err
}

// MarkProcessing claims a pending schedule for execution. The status
// guard makes the claim safe against a concurrent executor.
func (r *repository) MarkProcessing(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE topup_schedules
		SET status = 'processing', updated_at = now()
		WHERE id = $1 AND status = 'scheduled'
	`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return getErr
		}
		return ErrScheduleNotPending
	}
	return nil
}

func (r *repository) MarkCompleted(ctx context.Context, id uuid.UUID, processedCount int, executedAt time.Time, remarks string) error {
	return r.finish(ctx, id, StatusCompleted, processedCount, executedAt, remarks)
}

func (r *repository) MarkFailed(ctx context.Context, id uuid.UUID, processedCount int, remarks string) error {
	return r.finish(ctx, id, StatusFailed, processedCount, time.Now(), remarks)
}

func (r *repository) finish(ctx context.Context, id uuid.UUID, status Status, processedCount int, executedAt time.Time, remarks string) error {
	var rem interface{}
	if remarks != "" {
		rem = remarks
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE topup_schedules
		SET status = $2, processed_count = $3, executed_date = $4,
		    remarks = COALESCE($5, remarks), updated_at = now()
		WHERE id = $1
	`, id, status, processedCount, executedAt, rem)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrScheduleNotFound
	}
	return nil
}
