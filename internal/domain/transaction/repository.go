package transaction

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Repository applies balance mutations and reads the ledger. Every
// mutation runs in a transaction that locks the account row, so
// concurrent credits and debits serialize on the balance.
type Repository struct {
	db *sqlx.DB
}

// NewRepository creates transaction repository
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// GetBalance reads the current stored balance
func (r *Repository) GetBalance(ctx context.Context, accountID uuid.UUID) (int64, error) {
	var balance int64
	err := r.db.GetContext(ctx, &balance,
		`SELECT balance FROM account_holders WHERE id = $1`, accountID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrAccountNotFound
	}
	return balance, err
}

// ListByAccount returns the full ledger for an account, oldest first
func (r *Repository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*Transaction, error) {
	var txs []*Transaction
	err := r.db.SelectContext(ctx, &txs, `
		SELECT * FROM transactions
		WHERE account_id = $1
		ORDER BY created_at ASC, id ASC
	`, accountID)
	return txs, err
}

func (r *Repository) beginTx(ctx context.Context) (*sqlx.Tx, error) {
	return r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
}

func (r *Repository) lockBalance(ctx context.Context, tx *sqlx.Tx, accountID uuid.UUID) (int64, error) {
	var balance int64
	err := tx.GetContext(ctx, &balance,
		`SELECT balance FROM account_holders WHERE id = $1 FOR UPDATE`, accountID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrAccountNotFound
	}
	return balance, err
}

func (r *Repository) getAmountByRef(ctx context.Context, tx *sqlx.Tx, accountID uuid.UUID, txType Type, reference string) (int64, bool, error) {
	if reference == "" {
		return 0, false, nil
	}

	var amount int64
	err := tx.GetContext(ctx, &amount, `
		SELECT amount
		FROM transactions
		WHERE account_id = $1 AND type = $2 AND reference = $3
		LIMIT 1
	`, accountID, string(txType), reference)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return amount, true, nil
}

func (r *Repository) updateBalance(ctx context.Context, tx *sqlx.Tx, accountID uuid.UUID, balance int64) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE account_holders SET balance = $1, updated_at = now() WHERE id = $2`,
		balance, accountID)
	return err
}

func (r *Repository) insertTransaction(ctx context.Context, tx *sqlx.Tx, accountID uuid.UUID, amount int64, txType Type, reference string) error {
	var ref interface{}
	if reference != "" {
		ref = reference
	}

	_, err := tx.ExecContext(ctx, `
		INSERT INTO transactions (id, account_id, type, amount, status, reference)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, uuid.New(), accountID, string(txType), amount, StatusCompleted, ref)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrDuplicateReference
		}
		return err
	}
	return nil
}

// apply credits or debits the account and appends the ledger entry in
// one database transaction. A reference makes the operation idempotent:
// replaying the same reference with the same amount is a no-op, a
// different amount is a conflict.
func (r *Repository) apply(ctx context.Context, accountID uuid.UUID, amount int64, txType Type, reference string) error {
	tx, err := r.beginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	balance, err := r.lockBalance(ctx, tx, accountID)
	if err != nil {
		return err
	}

	existingAmount, exists, err := r.getAmountByRef(ctx, tx, accountID, txType, reference)
	if err != nil {
		return err
	}
	if exists {
		if existingAmount != amount {
			return ErrReferenceConflict
		}
		return nil
	}

	nextBalance := balance + amount
	if nextBalance < 0 {
		return ErrInsufficientBalance
	}

	if err := r.updateBalance(ctx, tx, accountID, nextBalance); err != nil {
		return err
	}

	if err := r.insertTransaction(ctx, tx, accountID, amount, txType, reference); err != nil {
		if errors.Is(err, ErrDuplicateReference) {
			// Lost a race on the reference; accept if the winner
			// wrote the same amount.
			existingAmount, exists, checkErr := r.getAmountByRef(ctx, tx, accountID, txType, reference)
			if checkErr != nil {
				return checkErr
			}
			if !exists || existingAmount != amount {
				return ErrReferenceConflict
			}
			return nil
		}
		return err
	}

	return tx.Commit()
}

// Credit adds a top-up to the account
func (r *Repository) Credit(ctx context.Context, accountID uuid.UUID, amount int64, reference string) error {
	return r.apply(ctx, accountID, amount, TypeTopUp, reference)
}

// ChargeFee debits a course fee from the account
func (r *Repository) ChargeFee(ctx context.Context, accountID uuid.UUID, amount int64, reference string) error {
	return r.apply(ctx, accountID, -amount, TypeCourseFee, reference)
}

// Refund returns a previously debited amount
func (r *Repository) Refund(ctx context.Context, accountID uuid.UUID, amount int64, reference string) error {
	return r.apply(ctx, accountID, amount, TypeRefund, reference)
}
