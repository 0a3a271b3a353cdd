package transaction

import "errors"

var (
	ErrAccountNotFound     = errors.New("account not found")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrDuplicateReference  = errors.New("duplicate transaction reference")
	ErrReferenceConflict   = errors.New("transaction reference conflicts with a different amount")
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrNoBalanceFeature    = errors.New("account has no balance features")
)
