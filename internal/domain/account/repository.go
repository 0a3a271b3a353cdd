package account

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Repository defines account holder data access
type Repository interface {
	Create(ctx context.Context, a *AccountHolder) error
	GetByID(ctx context.Context, id uuid.UUID) (*AccountHolder, error)
	GetByNRIC(ctx context.Context, nric string) (*AccountHolder, error)
	List(ctx context.Context, filter ListFilter) ([]*AccountHolder, int, error)
	ListActive(ctx context.Context) ([]*AccountHolder, error)
	Update(ctx context.Context, a *AccountHolder) error
	SetStatus(ctx context.Context, id uuid.UUID, status Status) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates account repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, a *AccountHolder) error {
	query := `
		INSERT INTO account_holders (
			id, nric, name, date_of_birth, email, phone,
			residential_address, mailing_address, balance, status,
			residential_status, in_school, education_level,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10,
			$11, $12, $13,
			$14, $15
		)
	`
	_, err := r.db.ExecContext(ctx, query,
		a.ID, a.NRIC, a.Name, a.DateOfBirth, a.Email, a.Phone,
		a.ResidentialAddress, a.MailingAddress, a.Balance, a.Status,
		a.ResidentialStatus, a.InSchool, a.EducationLevel,
		a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrNRICExists
		}
		return err
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*AccountHolder, error) {
	var a AccountHolder
	err := r.db.GetContext(ctx, &a, `SELECT * FROM account_holders WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *repository) GetByNRIC(ctx context.Context, nric string) (*AccountHolder, error) {
	var a AccountHolder
	err := r.db.GetContext(ctx, &a, `SELECT * FROM account_holders WHERE nric = $1`, nric)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &a, nil
}

// List applies admin filters and sorting in SQL. Age bounds are converted
// to date-of-birth bounds against the current date.
func (r *repository) List(ctx context.Context, filter ListFilter) ([]*AccountHolder, int, error) {
	var (
		where []string
		args  []interface{}
	)

	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Search != "" {
		p := arg("%" + strings.ToLower(filter.Search) + "%")
		where = append(where, fmt.Sprintf(
			"(LOWER(name) LIKE %s OR LOWER(nric) LIKE %s OR LOWER(email) LIKE %s)", p, p, p))
	}
	if len(filter.Statuses) > 0 {
		where = append(where, fmt.Sprintf("status = ANY(%s)", arg(pq.Array(statusStrings(filter.Statuses)))))
	}
	if len(filter.EducationLevels) > 0 {
		where = append(where, fmt.Sprintf("education_level = ANY(%s)", arg(pq.Array(levelStrings(filter.EducationLevels)))))
	}
	if len(filter.SchoolingStatuses) > 0 {
		where = append(where, fmt.Sprintf("in_school = ANY(%s)", arg(pq.Array(schoolingStrings(filter.SchoolingStatuses)))))
	}
	if len(filter.ResidentialStatuses) > 0 {
		where = append(where, fmt.Sprintf("residential_status = ANY(%s)", arg(pq.Array(residentialStrings(filter.ResidentialStatuses)))))
	}
	if filter.MinBalance != nil {
		where = append(where, fmt.Sprintf("balance >= %s", arg(*filter.MinBalance)))
	}
	if filter.MaxBalance != nil {
		where = append(where, fmt.Sprintf("balance <= %s", arg(*filter.MaxBalance)))
	}

	now := time.Now()
	if filter.MinAge != nil {
		// Anyone at least minAge years old was born on or before this date
		where = append(where, fmt.Sprintf("date_of_birth <= %s", arg(now.AddDate(-*filter.MinAge, 0, 0))))
	}
	if filter.MaxAge != nil {
		// Anyone over maxAge was born before this date
		where = append(where, fmt.Sprintf("date_of_birth > %s", arg(now.AddDate(-(*filter.MaxAge+1), 0, 0))))
	}

	whereClause := ""
	if len(where) > 0 {
		whereClause = "WHERE " + strings.Join(where, " AND ")
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM account_holders " + whereClause
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	query := fmt.Sprintf(
		"SELECT * FROM account_holders %s ORDER BY %s LIMIT %s OFFSET %s",
		whereClause, orderBy(filter), arg(limit), arg(filter.Offset),
	)

	var accounts []*AccountHolder
	if err := r.db.SelectContext(ctx, &accounts, query, args...); err != nil {
		return nil, 0, err
	}
	return accounts, total, nil
}

// ListActive returns all active account holders, the candidate set for
// rule eligibility evaluation.
func (r *repository) ListActive(ctx context.Context) ([]*AccountHolder, error) {
	var accounts []*AccountHolder
	err := r.db.SelectContext(ctx, &accounts,
		`SELECT * FROM account_holders WHERE status = 'active' ORDER BY created_at`)
	return accounts, err
}

func (r *repository) Update(ctx context.Context, a *AccountHolder) error {
	query := `
		UPDATE account_holders SET
			name = $2, email = $3, phone = $4,
			residential_address = $5, mailing_address = $6,
			status = $7, residential_status = $8, in_school = $9,
			education_level = $10, updated_at = NOW()
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query,
		a.ID, a.Name, a.Email, a.Phone,
		a.ResidentialAddress, a.MailingAddress,
		a.Status, a.ResidentialStatus, a.InSchool,
		a.EducationLevel,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrAccountNotFound
	}
	return nil
}

func (r *repository) SetStatus(ctx context.Context, id uuid.UUID, status Status) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE account_holders SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrAccountNotFound
	}
	return nil
}

func orderBy(filter ListFilter) string {
	dir := "ASC"
	if filter.SortDesc {
		dir = "DESC"
	}

	switch filter.SortField {
	case SortByName:
		return "name " + dir
	case SortByAge:
		// Older holders have earlier birth dates
		if filter.SortDesc {
			return "date_of_birth ASC"
		}
		return "date_of_birth DESC"
	case SortByBalance:
		return "balance " + dir
	case SortByEducationLevel:
		return `CASE education_level
			WHEN 'primary' THEN 1
			WHEN 'secondary' THEN 2
			WHEN 'post_secondary' THEN 3
			WHEN 'tertiary' THEN 4
			WHEN 'postgraduate' THEN 5
			ELSE 0 END ` + dir
	default:
		return "created_at " + dir
	}
}

func statusStrings(in []Status) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = string(v)
	}
	return out
}

func levelStrings(in []EducationLevel) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = string(v)
	}
	return out
}

func schoolingStrings(in []SchoolingStatus) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = string(v)
	}
	return out
}

func residentialStrings(in []ResidentialStatus) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = string(v)
	}
	return out
}
