package rule

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Repository defines top-up rule data access
type Repository interface {
	Create(ctx context.Context, r *TopUpRule) error
	GetByID(ctx context.Context, id uuid.UUID) (*TopUpRule, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*TopUpRule, error)
	List(ctx context.Context) ([]*TopUpRule, error)
	Update(ctx context.Context, r *TopUpRule) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates rule repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, rule *TopUpRule) error {
	query := `
		INSERT INTO topup_rules (
			id, name, amount, status,
			min_age, max_age, min_balance, max_balance,
			in_school, education_level,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4,
			$5, $6, $7, $8,
			$9, $10,
			$11, $12
		)
	`
	_, err := r.db.ExecContext(ctx, query,
		rule.ID, rule.Name, rule.Amount, rule.Status,
		rule.MinAge, rule.MaxAge, rule.MinBalance, rule.MaxBalance,
		rule.InSchool, rule.EducationLevel,
		rule.CreatedAt, rule.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrRuleNameTaken
		}
		return err
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*TopUpRule, error) {
	var rule TopUpRule
	err := r.db.GetContext(ctx, &rule, `SELECT * FROM topup_rules WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRuleNotFound
		}
		return nil, err
	}
	return &rule, nil
}

func (r *repository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*TopUpRule, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	strs := make([]string, len(ids))
	for i, id := range ids {
		strs[i] = id.String()
	}
	var rules []*TopUpRule
	err := r.db.SelectContext(ctx, &rules,
		`SELECT * FROM topup_rules WHERE id = ANY($1::uuid[]) ORDER BY name`, pq.Array(strs))
	if err != nil {
		return nil, err
	}
	if len(rules) != len(ids) {
		return nil, ErrRuleNotFound
	}
	return rules, nil
}

func (r *repository) List(ctx context.Context) ([]*TopUpRule, error) {
	var rules []*TopUpRule
	err := r.db.SelectContext(ctx, &rules, `SELECT * FROM topup_rules ORDER BY created_at DESC`)
	return rules, err
}

func (r *repository) Update(ctx context.Context, rule *TopUpRule) error {
	query := `
		UPDATE topup_rules SET
			name = $2, amount = $3, status = $4,
			min_age = $5, max_age = $6, min_balance = $7, max_balance = $8,
			in_school = $9, education_level = $10, updated_at = NOW()
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query,
		rule.ID, rule.Name, rule.Amount, rule.Status,
		rule.MinAge, rule.MaxAge, rule.MinBalance, rule.MaxBalance,
		rule.InSchool, rule.EducationLevel,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrRuleNameTaken
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrRuleNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM topup_rules WHERE id = $1`, id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return ErrRuleInUse
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrRuleNotFound
	}
	return nil
}
