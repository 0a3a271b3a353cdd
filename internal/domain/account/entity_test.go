package account

import (
	"database/sql"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAge(t *testing.T) {
	tests := []struct {
		name string
		dob  time.Time
		now  time.Time
		want int
	}{
		{"birthday already passed", date(2000, time.March, 10), date(2024, time.June, 1), 24},
		{"birthday today", date(2000, time.June, 1), date(2024, time.June, 1), 24},
		{"birthday tomorrow", date(2000, time.June, 2), date(2024, time.June, 1), 23},
		{"birthday later this year", date(2000, time.December, 25), date(2024, time.June, 1), 23},
		{"same month earlier day", date(2000, time.June, 15), date(2024, time.June, 20), 24},
		{"same month later day", date(2000, time.June, 25), date(2024, time.June, 20), 23},
		{"newborn", date(2024, time.January, 1), date(2024, time.June, 1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Age(tt.dob, tt.now); got != tt.want {
				t.Errorf("Age() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCompareEducationLevels(t *testing.T) {
	tests := []struct {
		a, b EducationLevel
		want int
	}{
		{LevelPrimary, LevelSecondary, -1},
		{LevelSecondary, LevelPrimary, 1},
		{LevelTertiary, LevelTertiary, 0},
		{LevelPostgraduate, LevelPrimary, 1},
		{LevelPostSecondary, LevelTertiary, -1},
		{"", LevelPrimary, -1},
		{"", "", 0},
	}

	for _, tt := range tests {
		if got := CompareEducationLevels(tt.a, tt.b); got != tt.want {
			t.Errorf("CompareEducationLevels(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestAccountType(t *testing.T) {
	citizen := &AccountHolder{ResidentialStatus: ResidentialCitizen}
	if citizen.Type() != TypeEducation {
		t.Errorf("citizen type = %s, want education", citizen.Type())
	}
	if !citizen.CanReceiveTopUp() {
		t.Error("citizen should be able to receive top-ups")
	}

	for _, rs := range []ResidentialStatus{ResidentialPR, ResidentialNonResident} {
		a := &AccountHolder{ResidentialStatus: rs}
		if a.Type() != TypeStudent {
			t.Errorf("%s type = %s, want student", rs, a.Type())
		}
		if a.CanReceiveTopUp() {
			t.Errorf("%s should not be able to receive top-ups", rs)
		}
	}
}

func TestIsValidEducationLevel(t *testing.T) {
	for _, v := range []string{"primary", "secondary", "post_secondary", "tertiary", "postgraduate"} {
		if !IsValidEducationLevel(v) {
			t.Errorf("expected %q to be valid", v)
		}
	}
	for _, v := range []string{"", "kindergarten", "PRIMARY"} {
		if IsValidEducationLevel(v) {
			t.Errorf("expected %q to be invalid", v)
		}
	}
}

func TestToResponseOmitsEmptyOptionals(t *testing.T) {
	now := date(2024, time.June, 1)
	a := &AccountHolder{
		Name:              "Tan Mei Ling",
		NRIC:              "S1234567A",
		DateOfBirth:       date(2008, time.April, 2),
		Email:             "mei@example.com",
		Balance:           150000,
		Status:            StatusActive,
		ResidentialStatus: ResidentialCitizen,
		InSchool:          InSchool,
		CreatedAt:         now,
	}

	resp := ToResponse(a, now)
	if resp.Age != 16 {
		t.Errorf("age = %d, want 16", resp.Age)
	}
	if resp.AccountType != "education" {
		t.Errorf("account_type = %s, want education", resp.AccountType)
	}
	if resp.Phone != "" || resp.EducationLevel != "" {
		t.Error("unset optionals should be empty in response")
	}

	a.EducationLevel = sql.NullString{String: "secondary", Valid: true}
	if got := ToResponse(a, now).EducationLevel; got != "secondary" {
		t.Errorf("education_level = %s, want secondary", got)
	}
}
