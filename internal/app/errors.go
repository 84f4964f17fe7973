package app

import "errors"

var (
	ErrUnknownItem          = errors.New("unknown specialty or college")
	ErrNotInPlan            = errors.New("item is not in the plan")
	ErrComparisonFull       = errors.New("two items are already selected for comparison")
	ErrComparisonMixed      = errors.New("only items of the same type can be compared")
	ErrComparisonIncomplete = errors.New("select two items to compare")
	ErrInvalidTheme         = errors.New("theme must be light, dark or system")
	ErrUnknownSetting       = errors.New("unknown setting")
)
