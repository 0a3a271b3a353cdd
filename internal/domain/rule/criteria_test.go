package rule

import (
	"database/sql"
	"testing"
	"time"

	"github.com/edusave/edusave-api/internal/domain/account"
)

var evalNow = time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)

func intPtr(v int) *int       { return &v }
func int64Ptr(v int64) *int64 { return &v }
func strPtr(v string) *string { return &v }

func holder(age int, level string, status account.Status) *account.AccountHolder {
	a := &account.AccountHolder{
		DateOfBirth:       evalNow.AddDate(-age, 0, -1),
		Status:            status,
		ResidentialStatus: account.ResidentialCitizen,
		InSchool:          account.InSchool,
	}
	if level != "" {
		a.EducationLevel = sql.NullString{String: level, Valid: true}
	}
	return a
}

func TestMatchesInactiveNeverEligible(t *testing.T) {
	a := holder(17, "secondary", account.StatusInactive)
	if (Criteria{}).Matches(a, evalNow) {
		t.Error("inactive account must never be eligible")
	}
}

func TestMatchesUnconstrainedCriteria(t *testing.T) {
	for _, age := range []int{0, 5, 17, 99} {
		a := holder(age, "", account.StatusActive)
		if !(Criteria{}).Matches(a, evalNow) {
			t.Errorf("active account age %d should match empty criteria", age)
		}
	}
}

func TestMatchesBoundaryAgeInclusive(t *testing.T) {
	c := Criteria{MinAge: intPtr(16), MaxAge: intPtr(21)}

	turns16Today := &account.AccountHolder{
		DateOfBirth:       time.Date(2008, time.June, 1, 0, 0, 0, 0, time.UTC),
		Status:            account.StatusActive,
		ResidentialStatus: account.ResidentialCitizen,
	}
	if !c.Matches(turns16Today, evalNow) {
		t.Error("account turning min_age today should be eligible")
	}

	if !c.Matches(holder(21, "", account.StatusActive), evalNow) {
		t.Error("account at max_age should be eligible")
	}
	if c.Matches(holder(15, "", account.StatusActive), evalNow) {
		t.Error("account below min_age should not be eligible")
	}
	if c.Matches(holder(22, "", account.StatusActive), evalNow) {
		t.Error("account above max_age should not be eligible")
	}
}

func TestMatchesBalanceBounds(t *testing.T) {
	c := Criteria{MinBalance: int64Ptr(10000), MaxBalance: int64Ptr(50000)}

	tests := []struct {
		balance int64
		want    bool
	}{
		{9999, false},
		{10000, true},
		{30000, true},
		{50000, true},
		{50001, false},
	}
	for _, tt := range tests {
		a := holder(17, "", account.StatusActive)
		a.Balance = tt.balance
		if got := c.Matches(a, evalNow); got != tt.want {
			t.Errorf("balance %d: matches = %v, want %v", tt.balance, got, tt.want)
		}
	}
}

func TestMatchesEducationLevelExact(t *testing.T) {
	c := Criteria{MinAge: intPtr(16), MaxAge: intPtr(21), EducationLevel: strPtr("secondary")}

	candidates := []*account.AccountHolder{
		holder(17, "secondary", account.StatusActive),
		holder(22, "secondary", account.StatusActive),
		holder(18, "tertiary", account.StatusActive),
	}

	eligible := c.EligibleAccounts(candidates, evalNow)
	if len(eligible) != 1 || eligible[0] != candidates[0] {
		t.Fatalf("eligible = %d accounts, want exactly the 17-year-old secondary holder", len(eligible))
	}
}

func TestMatchesEducationLevelRequiresSetValue(t *testing.T) {
	c := Criteria{EducationLevel: strPtr("primary")}
	a := holder(10, "", account.StatusActive)
	if c.Matches(a, evalNow) {
		t.Error("account without an education level must not match a level criterion")
	}
}

func TestMatchesSchoolingStatus(t *testing.T) {
	c := Criteria{InSchool: strPtr("in_school")}

	a := holder(12, "", account.StatusActive)
	if !c.Matches(a, evalNow) {
		t.Error("in-school account should match")
	}
	a.InSchool = account.NotInSchool
	if c.Matches(a, evalNow) {
		t.Error("not-in-school account should not match")
	}
}

func TestMatchesExcludesStudentAccounts(t *testing.T) {
	a := holder(17, "secondary", account.StatusActive)
	a.ResidentialStatus = account.ResidentialPR
	if (Criteria{}).Matches(a, evalNow) {
		t.Error("student accounts have no balance and must not be credited")
	}
}
