package account

import (
	"time"

	"github.com/google/uuid"
)

// CreateAccountRequest for manually creating an education account
type CreateAccountRequest struct {
	NRIC              string `json:"nric" validate:"required,min=5,max=20"`
	Name              string `json:"name" validate:"required,min=2,max=255"`
	DateOfBirth       string `json:"date_of_birth" validate:"required,datetime=2006-01-02"`
	Email             string `json:"email" validate:"required,email"`
	Phone             string `json:"phone,omitempty" validate:"omitempty,min=8,max=20"`
	ResidentialAddr   string `json:"residential_address,omitempty"`
	MailingAddr       string `json:"mailing_address,omitempty"`
	EducationLevel    string `json:"education_level,omitempty" validate:"education_level"`
	ResidentialStatus string `json:"residential_status,omitempty" validate:"residential_status"`

	// Optional member login created alongside the account
	LoginPassword string `json:"login_password,omitempty" validate:"omitempty,min=8"`
}

// UpdateAccountRequest for editing an account holder
type UpdateAccountRequest struct {
	Name              string  `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
	Email             string  `json:"email,omitempty" validate:"omitempty,email"`
	Phone             *string `json:"phone,omitempty"`
	ResidentialAddr   *string `json:"residential_address,omitempty"`
	MailingAddr       *string `json:"mailing_address,omitempty"`
	Status            string  `json:"status,omitempty" validate:"omitempty,oneof=active inactive"`
	InSchool          string  `json:"in_school,omitempty" validate:"in_school"`
	EducationLevel    *string `json:"education_level,omitempty" validate:"omitempty,education_level"`
	ResidentialStatus string  `json:"residential_status,omitempty" validate:"residential_status"`
}

// ListFilter holds admin list filters; zero values mean unconstrained
type ListFilter struct {
	Search              string
	Statuses            []Status
	EducationLevels     []EducationLevel
	SchoolingStatuses   []SchoolingStatus
	ResidentialStatuses []ResidentialStatus
	MinBalance          *int64
	MaxBalance          *int64
	MinAge              *int
	MaxAge              *int
	SortField           SortField
	SortDesc            bool
	Limit               int
	Offset              int
}

// SortField enumerates admin list sort columns
type SortField string

const (
	SortByName           SortField = "name"
	SortByAge            SortField = "age"
	SortByBalance        SortField = "balance"
	SortByCreatedAt      SortField = "created_at"
	SortByEducationLevel SortField = "education_level"
)

// AccountResponse for API responses
type AccountResponse struct {
	ID                uuid.UUID `json:"id"`
	NRIC              string    `json:"nric"`
	Name              string    `json:"name"`
	DateOfBirth       string    `json:"date_of_birth"`
	Age               int       `json:"age"`
	Email             string    `json:"email"`
	Phone             string    `json:"phone,omitempty"`
	ResidentialAddr   string    `json:"residential_address,omitempty"`
	MailingAddr       string    `json:"mailing_address,omitempty"`
	Balance           int64     `json:"balance"`
	Status            string    `json:"status"`
	ResidentialStatus string    `json:"residential_status"`
	AccountType       string    `json:"account_type"`
	InSchool          string    `json:"in_school"`
	EducationLevel    string    `json:"education_level,omitempty"`
	CreatedAt         string    `json:"created_at"`
}

// ToResponse converts entity to response
func ToResponse(a *AccountHolder, now time.Time) *AccountResponse {
	resp := &AccountResponse{
		ID:                a.ID,
		NRIC:              a.NRIC,
		Name:              a.Name,
		DateOfBirth:       a.DateOfBirth.Format("2006-01-02"),
		Age:               a.AgeAt(now),
		Email:             a.Email,
		Balance:           a.Balance,
		Status:            string(a.Status),
		ResidentialStatus: string(a.ResidentialStatus),
		AccountType:       string(a.Type()),
		InSchool:          string(a.InSchool),
		CreatedAt:         a.CreatedAt.Format(time.RFC3339),
	}

	if a.Phone.Valid {
		resp.Phone = a.Phone.String
	}
	if a.ResidentialAddress.Valid {
		resp.ResidentialAddr = a.ResidentialAddress.String
	}
	if a.MailingAddress.Valid {
		resp.MailingAddr = a.MailingAddress.String
	}
	if a.EducationLevel.Valid {
		resp.EducationLevel = a.EducationLevel.String
	}

	return resp
}
