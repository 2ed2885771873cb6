package service

import (
	"errors"

	"github.com/carson-networks/budget-tracker/internal/operator/actions"
)

var (
	ErrInvalidPeriod   = errors.New("month must be between 0 and 11 and year between 1970 and 9999")
	ErrInvalidAmount   = errors.New("amount must be positive")
	ErrInvalidType     = errors.New("type must be income or expense")
	ErrInvalidCategory = errors.New("category is required")

	ErrNotFound             = actions.ErrNotFound
	ErrNegativeAmount       = actions.ErrNegativeAmount
	ErrDuplicateCategory    = actions.ErrDuplicateCategory
	ErrOverallBudgetDerived = actions.ErrOverallBudgetDerived
	ErrBudgetExists         = actions.ErrBudgetExists
	ErrCategoryExists       = actions.ErrCategoryExists
)
