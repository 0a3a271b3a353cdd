package account

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/edusave/edusave-api/internal/domain/user"
	"github.com/edusave/edusave-api/internal/pkg/password"
)

// Service handles account holder business logic
type Service struct {
	repo     Repository
	userRepo user.Repository
}

// NewService creates account service
func NewService(repo Repository, userRepo user.Repository) *Service {
	return &Service{repo: repo, userRepo: userRepo}
}

// Create registers a new account holder. Balance starts at zero and the
// account is active. When a login password is supplied, a member user
// bound to the account is created as well.
func (s *Service) Create(ctx context.Context, req *CreateAccountRequest) (*AccountHolder, error) {
	dob, err := time.Parse("2006-01-02", req.DateOfBirth)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	a := &AccountHolder{
		ID:                uuid.New(),
		NRIC:              req.NRIC,
		Name:              req.Name,
		DateOfBirth:       dob,
		Email:             req.Email,
		Phone:             nullString(req.Phone),
		Balance:           0,
		Status:            StatusActive,
		ResidentialStatus: ResidentialCitizen,
		InSchool:          NotInSchool,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	a.ResidentialAddress = nullString(req.ResidentialAddr)
	a.MailingAddress = nullString(req.MailingAddr)
	a.EducationLevel = nullString(req.EducationLevel)
	if req.ResidentialStatus != "" {
		a.ResidentialStatus = ResidentialStatus(req.ResidentialStatus)
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}

	if req.LoginPassword != "" {
		hash, err := password.Hash(req.LoginPassword)
		if err != nil {
			return nil, err
		}
		u := &user.User{
			ID:           uuid.New(),
			Email:        req.Email,
			PasswordHash: hash,
			Role:         user.RoleMember,
			AccountID:    uuid.NullUUID{UUID: a.ID, Valid: true},
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := s.userRepo.Create(ctx, u); err != nil {
			// Account exists without a login; the member can be
			// provisioned later.
			log.Warn().Err(err).
				Str("account_id", a.ID.String()).
				Msg("account created but member login failed")
		}
	}

	log.Info().
		Str("account_id", a.ID.String()).
		Str("nric", a.NRIC).
		Msg("account holder created")

	return a, nil
}

// GetByID fetches a single account holder
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*AccountHolder, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns account holders matching the filter plus a total count
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*AccountHolder, int, error) {
	return s.repo.List(ctx, filter)
}

// Update edits mutable account holder fields
func (s *Service) Update(ctx context.Context, id uuid.UUID, req *UpdateAccountRequest) (*AccountHolder, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		a.Name = req.Name
	}
	if req.Email != "" {
		a.Email = req.Email
	}
	if req.Phone != nil {
		a.Phone = nullString(*req.Phone)
	}
	if req.ResidentialAddr != nil {
		a.ResidentialAddress = nullString(*req.ResidentialAddr)
	}
	if req.MailingAddr != nil {
		a.MailingAddress = nullString(*req.MailingAddr)
	}
	if req.Status != "" {
		a.Status = Status(req.Status)
	}
	if req.InSchool != "" {
		a.InSchool = SchoolingStatus(req.InSchool)
	}
	if req.EducationLevel != nil {
		a.EducationLevel = nullString(*req.EducationLevel)
	}
	if req.ResidentialStatus != "" {
		a.ResidentialStatus = ResidentialStatus(req.ResidentialStatus)
	}

	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Deactivate marks an account inactive. Inactive accounts are excluded
// from eligibility evaluation and cannot receive top-ups.
func (s *Service) Deactivate(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.SetStatus(ctx, id, StatusInactive); err != nil {
		return err
	}
	log.Info().Str("account_id", id.String()).Msg("account deactivated")
	return nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
