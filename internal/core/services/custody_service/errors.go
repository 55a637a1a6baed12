package custody_service

import "errors"

var (
	// ErrRuleNotFound возвращается при reorder несуществующего правила,
	// операция прерывается целиком без частичной перестановки
	ErrRuleNotFound = errors.New("rule not found")

	ErrInvalidDateRange = errors.New("pattern config requires a valid date range")
	ErrInvalidParent    = errors.New("pattern config requires a valid starting parent")
	ErrMissingChild     = errors.New("pattern config requires a child id")
)
