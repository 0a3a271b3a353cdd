package account

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Status represents account holder status
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// ResidentialStatus determines the account type. The stored value for
// permanent residents is always "pr"; legacy display code that used "spr"
// is not carried over.
type ResidentialStatus string

const (
	ResidentialCitizen     ResidentialStatus = "sc"
	ResidentialPR          ResidentialStatus = "pr"
	ResidentialNonResident ResidentialStatus = "non_resident"
)

// SchoolingStatus represents whether the holder is enrolled in school
type SchoolingStatus string

const (
	InSchool    SchoolingStatus = "in_school"
	NotInSchool SchoolingStatus = "not_in_school"
)

// EducationLevel is an ordered enumeration, lowest to highest
type EducationLevel string

const (
	LevelPrimary       EducationLevel = "primary"
	LevelSecondary     EducationLevel = "secondary"
	LevelPostSecondary EducationLevel = "post_secondary"
	LevelTertiary      EducationLevel = "tertiary"
	LevelPostgraduate  EducationLevel = "postgraduate"
)

// levelPriority orders education levels for sorting and comparison.
// Unknown or unset levels rank below primary.
var levelPriority = map[EducationLevel]int{
	LevelPrimary:       1,
	LevelSecondary:     2,
	LevelPostSecondary: 3,
	LevelTertiary:      4,
	LevelPostgraduate:  5,
}

// IsValidEducationLevel reports whether s is a known education level
func IsValidEducationLevel(s string) bool {
	_, ok := levelPriority[EducationLevel(s)]
	return ok
}

// CompareEducationLevels returns 1 if a > b, -1 if a < b, 0 if equal.
// An unset level is lower than any set level.
func CompareEducationLevels(a, b EducationLevel) int {
	pa := levelPriority[a]
	pb := levelPriority[b]
	if pa > pb {
		return 1
	}
	if pa < pb {
		return -1
	}
	return 0
}

// AccountType distinguishes balance-bearing education accounts from
// student accounts, which have no balance features.
type AccountType string

const (
	TypeEducation AccountType = "education"
	TypeStudent   AccountType = "student"
)

// AccountHolder represents a person with an education savings account
type AccountHolder struct {
	ID                 uuid.UUID         `db:"id"`
	NRIC               string            `db:"nric"`
	Name               string            `db:"name"`
	DateOfBirth        time.Time         `db:"date_of_birth"`
	Email              string            `db:"email"`
	Phone              sql.NullString    `db:"phone"`
	ResidentialAddress sql.NullString    `db:"residential_address"`
	MailingAddress     sql.NullString    `db:"mailing_address"`
	Balance            int64             `db:"balance"` // cents
	Status             Status            `db:"status"`
	ResidentialStatus  ResidentialStatus `db:"residential_status"`
	InSchool           SchoolingStatus   `db:"in_school"`
	EducationLevel     sql.NullString    `db:"education_level"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Type derives the account type from residential status: citizens hold
// education accounts, everyone else a student account.
func (a *AccountHolder) Type() AccountType {
	if a.ResidentialStatus == ResidentialCitizen {
		return TypeEducation
	}
	return TypeStudent
}

// CanReceiveTopUp reports whether the account may be credited.
// Only education accounts carry a balance.
func (a *AccountHolder) CanReceiveTopUp() bool {
	return a.Type() == TypeEducation
}

// IsActive returns true if the account is in active status
func (a *AccountHolder) IsActive() bool {
	return a.Status == StatusActive
}

// Age computes full years between date of birth and now; partial years
// round down (the birthday must have occurred for the year to count).
func Age(dateOfBirth, now time.Time) int {
	age := now.Year() - dateOfBirth.Year()
	if now.Month() < dateOfBirth.Month() ||
		(now.Month() == dateOfBirth.Month() && now.Day() < dateOfBirth.Day()) {
		age--
	}
	return age
}

// AgeAt returns the holder's age at the given time
func (a *AccountHolder) AgeAt(now time.Time) int {
	return Age(a.DateOfBirth, now)
}
