package account

import "errors"

var (
	ErrAccountNotFound  = errors.New("account not found")
	ErrNRICExists       = errors.New("account with this NRIC already exists")
	ErrAccountInactive  = errors.New("account is not active")
	ErrNoBalanceFeature = errors.New("student accounts do not carry a balance")
)
