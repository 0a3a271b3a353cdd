package rule

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/edusave/edusave-api/internal/domain/account"
)

// Service handles top-up rule business logic
type Service struct {
	repo     Repository
	accounts account.Repository
}

// NewService creates rule service
func NewService(repo Repository, accounts account.Repository) *Service {
	return &Service{repo: repo, accounts: accounts}
}

// Create defines a new top-up rule
func (s *Service) Create(ctx context.Context, req *CreateRuleRequest) (*TopUpRule, error) {
	now := time.Now()
	r := &TopUpRule{
		ID:     uuid.New(),
		Name:   req.Name,
		Amount: req.Amount,
		Status: StatusActive,
		Criteria: Criteria{
			MinAge:         req.MinAge,
			MaxAge:         req.MaxAge,
			MinBalance:     req.MinBalance,
			MaxBalance:     req.MaxBalance,
			InSchool:       req.InSchool,
			EducationLevel: req.EducationLevel,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, r); err != nil {
		return nil, err
	}

	log.Info().
		Str("rule_id", r.ID.String()).
		Str("name", r.Name).
		Int64("amount", r.Amount).
		Msg("top-up rule created")

	return r, nil
}

// GetByID fetches a rule
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*TopUpRule, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns all rules, newest first
func (s *Service) List(ctx context.Context) ([]*TopUpRule, error) {
	return s.repo.List(ctx)
}

// Update replaces a rule's definition. Criteria are replaced wholesale.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req *UpdateRuleRequest) (*TopUpRule, error) {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	r.Name = req.Name
	r.Amount = req.Amount
	if req.Status != "" {
		r.Status = Status(req.Status)
	}
	r.Criteria = Criteria{
		MinAge:         req.MinAge,
		MaxAge:         req.MaxAge,
		MinBalance:     req.MinBalance,
		MaxBalance:     req.MaxBalance,
		InSchool:       req.InSchool,
		EducationLevel: req.EducationLevel,
	}

	if err := s.repo.Update(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// Delete removes a rule. Rules referenced by executed schedules are
// protected by a foreign key and cannot be removed.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// PreviewEligible evaluates a rule against all active accounts and
// returns the holders it would credit if executed now.
func (s *Service) PreviewEligible(ctx context.Context, id uuid.UUID) (*EligiblePreviewResponse, error) {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	candidates, err := s.accounts.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	eligible := r.EligibleAccounts(candidates, now)

	resp := &EligiblePreviewResponse{
		RuleID:        r.ID,
		RuleName:      r.Name,
		Amount:        r.Amount,
		EligibleCount: len(eligible),
		Accounts:      make([]EligibleAccount, len(eligible)),
	}
	for i, a := range eligible {
		resp.Accounts[i] = EligibleAccount{
			ID:      a.ID,
			Name:    a.Name,
			NRIC:    a.NRIC,
			Age:     a.AgeAt(now),
			Balance: a.Balance,
		}
	}
	return resp, nil
}
