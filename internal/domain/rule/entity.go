package rule

import (
	"time"

	"github.com/google/uuid"

	"github.com/edusave/edusave-api/internal/domain/account"
)

// Status represents rule status
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Criteria holds the optional eligibility bounds of a rule. A nil field
// imposes no constraint on that dimension; all bounds are inclusive.
type Criteria struct {
	MinAge         *int    `db:"min_age"`
	MaxAge         *int    `db:"max_age"`
	MinBalance     *int64  `db:"min_balance"`
	MaxBalance     *int64  `db:"max_balance"`
	InSchool       *string `db:"in_school"`
	EducationLevel *string `db:"education_level"`
}

// TopUpRule is a reusable eligibility specification used to select
// accounts for batch top-ups. Amount is in cents.
type TopUpRule struct {
	ID     uuid.UUID `db:"id"`
	Name   string    `db:"name"`
	Amount int64     `db:"amount"`
	Status Status    `db:"status"`
	Criteria

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Matches decides whether an account holder qualifies under the
// criteria at the given time. Inactive accounts never qualify, nor do
// accounts without balance features. Deterministic for a fixed now.
func (c Criteria) Matches(a *account.AccountHolder, now time.Time) bool {
	if !a.IsActive() {
		return false
	}
	if !a.CanReceiveTopUp() {
		return false
	}

	age := a.AgeAt(now)
	if c.MinAge != nil && age < *c.MinAge {
		return false
	}
	if c.MaxAge != nil && age > *c.MaxAge {
		return false
	}

	if c.MinBalance != nil && a.Balance < *c.MinBalance {
		return false
	}
	if c.MaxBalance != nil && a.Balance > *c.MaxBalance {
		return false
	}

	if c.InSchool != nil && *c.InSchool != string(a.InSchool) {
		return false
	}

	if c.EducationLevel != nil {
		if !a.EducationLevel.Valid || a.EducationLevel.String != *c.EducationLevel {
			return false
		}
	}

	return true
}

// EligibleAccounts filters the candidate set down to holders matching
// the criteria at the given time.
func (c Criteria) EligibleAccounts(accounts []*account.AccountHolder, now time.Time) []*account.AccountHolder {
	var out []*account.AccountHolder
	for _, a := range accounts {
		if c.Matches(a, now) {
			out = append(out, a)
		}
	}
	return out
}
