package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/edusave/edusave-api/internal/domain/account"
)

// Service handles statement and charge logic
type Service struct {
	repo     *Repository
	accounts account.Repository
}

// NewService creates transaction service
func NewService(repo *Repository, accounts account.Repository) *Service {
	return &Service{repo: repo, accounts: accounts}
}

// Balance returns the stored balance for an account
func (s *Service) Balance(ctx context.Context, accountID uuid.UUID) (int64, error) {
	a, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return 0, err
	}
	if !a.CanReceiveTopUp() {
		return 0, ErrNoBalanceFeature
	}
	return a.Balance, nil
}

// Statement builds the ledger view for an account. Running balances are
// derived from the complete transaction history; the filter only
// narrows what is displayed.
func (s *Service) Statement(ctx context.Context, accountID uuid.UUID, filter LedgerFilter) (*StatementResponse, error) {
	a, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if !a.CanReceiveTopUp() {
		return nil, ErrNoBalanceFeature
	}

	all, err := s.repo.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	return &StatementResponse{
		CurrentBalance: a.Balance,
		Totals:         SummarizeTotals(all),
		Entries:        WithRunningBalance(a.Balance, all, filter),
	}, nil
}

// ChargeFee debits a course fee from an account. The reference defaults
// to a timestamped value when the caller supplies none.
func (s *Service) ChargeFee(ctx context.Context, accountID uuid.UUID, req *ChargeRequest) error {
	if req.Amount <= 0 {
		return ErrInvalidAmount
	}

	a, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return err
	}
	if !a.IsActive() {
		return account.ErrAccountInactive
	}
	if !a.CanReceiveTopUp() {
		return ErrNoBalanceFeature
	}

	reference := req.Reference
	if reference == "" {
		reference = fmt.Sprintf("FEE-%d", time.Now().UnixNano())
	}

	if err := s.repo.ChargeFee(ctx, accountID, req.Amount, reference); err != nil {
		return err
	}

	log.Info().
		Str("account_id", accountID.String()).
		Int64("amount", req.Amount).
		Str("reference", reference).
		Msg("course fee charged")

	return nil
}
