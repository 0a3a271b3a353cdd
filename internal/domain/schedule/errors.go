package schedule

import "errors"

var (
	ErrScheduleNotFound   = errors.New("schedule not found")
	ErrScheduleNotPending = errors.New("schedule is not pending")
	ErrNoRulesSelected    = errors.New("no rules selected")
	ErrPastScheduleTime   = errors.New("scheduled time is in the past")
	ErrInvalidAmount      = errors.New("amount must be positive")
)
