package rule

import "errors"

var (
	ErrRuleNotFound  = errors.New("rule not found")
	ErrRuleNameTaken = errors.New("rule name already exists")
	ErrRuleInUse     = errors.New("rule is referenced by executed schedules")
)
