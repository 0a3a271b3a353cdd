package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/edusave/edusave-api/internal/domain/account"
	"github.com/edusave/edusave-api/internal/domain/rule"
	"github.com/edusave/edusave-api/internal/domain/transaction"
)

// Service orchestrates batch and individual top-up execution
type Service struct {
	repo     Repository
	rules    rule.Repository
	accounts account.Repository
	ledger   *transaction.Repository
}

// NewService creates schedule service
func NewService(repo Repository, rules rule.Repository, accounts account.Repository, ledger *transaction.Repository) *Service {
	return &Service{repo: repo, rules: rules, accounts: accounts, ledger: ledger}
}

// GetByID fetches a schedule
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*TopUpSchedule, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns schedules matching the filter plus a total count
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*TopUpSchedule, int, error) {
	return s.repo.List(ctx, filter)
}

// Delete cancels a schedule that has not started executing
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// ScheduleRules evaluates the selected rules against all active
// accounts and creates one schedule per rule. Immediate execution
// credits every eligible account before returning; deferred schedules
// are left for the executor worker. The unique-account union across
// rules is reported to the caller but never persisted.
func (s *Service) ScheduleRules(ctx context.Context, req *ScheduleRulesRequest) (*ScheduleRulesResponse, error) {
	if len(req.RuleIDs) == 0 {
		return nil, ErrNoRulesSelected
	}

	rules, err := s.rules.GetByIDs(ctx, req.RuleIDs)
	if err != nil {
		return nil, err
	}

	candidates, err := s.accounts.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	date, hhmm, err := resolveWhen(req.ExecuteNow, req.ScheduledDate, req.ScheduledTime, now)
	if err != nil {
		return nil, err
	}

	remarks := ""
	if len(rules) > 1 {
		remarks = fmt.Sprintf("Part of batch with %d rules", len(rules))
	}

	status := StatusScheduled
	if req.ExecuteNow {
		status = StatusProcessing
	}

	resp := &ScheduleRulesResponse{}
	union := make(map[uuid.UUID]struct{})

	for _, r := range rules {
		eligible := r.EligibleAccounts(candidates, now)
		for _, a := range eligible {
			union[a.ID] = struct{}{}
		}

		sched := &TopUpSchedule{
			ID:            uuid.New(),
			Type:          TypeBatch,
			Status:        status,
			Amount:        r.Amount,
			ScheduledDate: date,
			ScheduledTime: hhmm,
			RuleID:        uuid.NullUUID{UUID: r.ID, Valid: true},
			RuleName:      sql.NullString{String: r.Name, Valid: true},
			EligibleCount: sql.NullInt64{Int64: int64(len(eligible)), Valid: true},
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if remarks != "" {
			sched.Remarks = sql.NullString{String: remarks, Valid: true}
		}

		// Each write is independent: a failure here leaves earlier
		// schedules in place and surfaces the error.
		if err := s.repo.Create(ctx, sched); err != nil {
			return nil, err
		}

		if req.ExecuteNow {
			s.executeBatch(ctx, sched, eligible)
			sched, err = s.repo.GetByID(ctx, sched.ID)
			if err != nil {
				return nil, err
			}
		}

		resp.Schedules = append(resp.Schedules, ToResponse(sched))
	}

	resp.TotalUniqueAccounts = len(union)
	return resp, nil
}

// TopUpIndividual credits a single account, either immediately or at a
// future instant. Immediate execution performs the credit, the ledger
// entry, and the schedule completion as sequential writes.
func (s *Service) TopUpIndividual(ctx context.Context, req *IndividualTopUpRequest) (*TopUpSchedule, error) {
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	a, err := s.accounts.GetByID(ctx, req.AccountID)
	if err != nil {
		return nil, err
	}
	if !a.IsActive() {
		return nil, account.ErrAccountInactive
	}
	if !a.CanReceiveTopUp() {
		return nil, account.ErrNoBalanceFeature
	}

	now := time.Now()
	date, hhmm, err := resolveWhen(req.ExecuteNow, req.ScheduledDate, req.ScheduledTime, now)
	if err != nil {
		return nil, err
	}

	status := StatusScheduled
	if req.ExecuteNow {
		status = StatusProcessing
	}

	sched := &TopUpSchedule{
		ID:            uuid.New(),
		Type:          TypeIndividual,
		Status:        status,
		Amount:        req.Amount,
		ScheduledDate: date,
		ScheduledTime: hhmm,
		AccountID:     uuid.NullUUID{UUID: a.ID, Valid: true},
		AccountName:   sql.NullString{String: a.Name, Valid: true},
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, sched); err != nil {
		return nil, err
	}

	if req.ExecuteNow {
		if err := s.executeIndividual(ctx, sched); err != nil {
			return nil, err
		}
	}

	return s.repo.GetByID(ctx, sched.ID)
}

// ExecuteDue claims and runs deferred schedules whose time has come.
// Called by the executor worker; returns the number executed.
func (s *Service) ExecuteDue(ctx context.Context, now time.Time, limit int) (int, error) {
	due, err := s.repo.ListDue(ctx, now, limit)
	if err != nil {
		return 0, err
	}

	executed := 0
	for _, sched := range due {
		if err := s.repo.MarkProcessing(ctx, sched.ID); err != nil {
			// Another executor claimed it first
			continue
		}
		sched.Status = StatusProcessing

		if err := s.execute(ctx, sched); err != nil {
			log.Error().Err(err).
				Str("schedule_id", sched.ID.String()).
				Msg("schedule execution failed")
			continue
		}
		executed++
	}
	return executed, nil
}

func (s *Service) execute(ctx context.Context, sched *TopUpSchedule) error {
	switch sched.Type {
	case TypeIndividual:
		return s.executeIndividual(ctx, sched)
	case TypeBatch:
		if !sched.RuleID.Valid {
			return s.repo.MarkFailed(ctx, sched.ID, 0, "schedule has no rule")
		}
		r, err := s.rules.GetByID(ctx, sched.RuleID.UUID)
		if err != nil {
			s.repo.MarkFailed(ctx, sched.ID, 0, "rule no longer exists")
			return err
		}
		candidates, err := s.accounts.ListActive(ctx)
		if err != nil {
			return err
		}
		s.executeBatch(ctx, sched, r.EligibleAccounts(candidates, time.Now()))
		return nil
	default:
		return fmt.Errorf("unknown schedule type %q", sched.Type)
	}
}

// executeBatch credits every eligible account. The reference ties each
// credit to the schedule and account, so re-running a schedule can
// never double-credit.
func (s *Service) executeBatch(ctx context.Context, sched *TopUpSchedule, eligible []*account.AccountHolder) {
	processed := 0
	failed := 0

	for _, a := range eligible {
		ref := fmt.Sprintf("TOPUP-%s-%s", sched.ID, a.ID)
		if err := s.ledger.Credit(ctx, a.ID, sched.Amount, ref); err != nil {
			failed++
			log.Error().Err(err).
				Str("schedule_id", sched.ID.String()).
				Str("account_id", a.ID.String()).
				Msg("batch credit failed")
			continue
		}
		processed++
	}

	if failed > 0 {
		remarks := fmt.Sprintf("%d of %d credits failed", failed, len(eligible))
		if err := s.repo.MarkFailed(ctx, sched.ID, processed, remarks); err != nil {
			log.Error().Err(err).Str("schedule_id", sched.ID.String()).Msg("mark failed errored")
		}
		return
	}

	if err := s.repo.MarkCompleted(ctx, sched.ID, processed, time.Now(), ""); err != nil {
		log.Error().Err(err).Str("schedule_id", sched.ID.String()).Msg("mark completed errored")
		return
	}

	log.Info().
		Str("schedule_id", sched.ID.String()).
		Int("credited", processed).
		Int64("amount", sched.Amount).
		Msg("batch schedule executed")
}

func (s *Service) executeIndividual(ctx context.Context, sched *TopUpSchedule) error {
	if !sched.AccountID.Valid {
		return s.repo.MarkFailed(ctx, sched.ID, 0, "schedule has no account")
	}

	ref := fmt.Sprintf("TOPUP-%s", sched.ID)
	if err := s.ledger.Credit(ctx, sched.AccountID.UUID, sched.Amount, ref); err != nil {
		s.repo.MarkFailed(ctx, sched.ID, 0, "credit failed")
		return err
	}

	if err := s.repo.MarkCompleted(ctx, sched.ID, 1, time.Now(), ""); err != nil {
		return err
	}

	log.Info().
		Str("schedule_id", sched.ID.String()).
		Str("account_id", sched.AccountID.UUID.String()).
		Int64("amount", sched.Amount).
		Msg("individual top-up executed")

	return nil
}

// resolveWhen picks the schedule instant: now for immediate execution,
// the caller-supplied future date and "HH:MM" time otherwise.
func resolveWhen(executeNow bool, dateStr, timeStr string, now time.Time) (time.Time, string, error) {
	if executeNow {
		return now, now.Format("15:04"), nil
	}

	if dateStr == "" {
		return time.Time{}, "", ErrPastScheduleTime
	}
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return time.Time{}, "", err
	}
	if timeStr == "" {
		timeStr = "00:00"
	}
	hhmm, err := time.Parse("15:04", timeStr)
	if err != nil {
		return time.Time{}, "", err
	}

	at := time.Date(date.Year(), date.Month(), date.Day(), hhmm.Hour(), hhmm.Minute(), 0, 0, now.Location())
	if at.Before(now) {
		return time.Time{}, "", ErrPastScheduleTime
	}
	return date, timeStr, nil
}
