package user

import (
	"time"

	"github.com/google/uuid"
)

// Role represents a portal login role (matches user_role enum)
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// User represents a portal login. Members are bound to an account holder
// through AccountID; admins have no account binding.
type User struct {
	ID           uuid.UUID     `db:"id"`
	Email        string        `db:"email"`
	PasswordHash string        `db:"password_hash"`
	Role         Role          `db:"role"`
	AccountID    uuid.NullUUID `db:"account_id"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// IsAdmin returns true if user is an administrator
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsMember returns true if user is an account-holder login
func (u *User) IsMember() bool {
	return u.Role == RoleMember
}

// IsValidRole checks if role is a known login role
func IsValidRole(role string) bool {
	return role == string(RoleAdmin) || role == string(RoleMember)
}
