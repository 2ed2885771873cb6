package actions

import (
	"context"
	"errors"

	"github.com/carson-networks/budget-tracker/internal/storage"
)

var (
	ErrNotFound             = errors.New("not found")
	ErrNegativeAmount       = errors.New("amount must not be negative")
	ErrDuplicateCategory    = errors.New("category budget listed more than once")
	ErrOverallBudgetDerived = errors.New("overall budget is the sum of the category budgets and cannot be set while category budgets exist")
	ErrBudgetExists         = errors.New("target month already has a budget")
	ErrCategoryExists       = errors.New("category with this name already exists")
)

// IAction is a unit of work run inside a single storage transaction.
type IAction interface {
	Perform(ctx context.Context, writer *storage.Writer) error
}
