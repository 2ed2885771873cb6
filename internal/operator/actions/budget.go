package actions

import (
	"context"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-tracker/internal/storage"
	"github.com/carson-networks/budget-tracker/internal/storage/budget"
)

// UpsertCategoryBudget sets one category limit, creating the month's budget
// when needed, and recomputes the overall budget as the sum of the limits.
type UpsertCategoryBudget struct {
	UserID   uuid.UUID
	Month    int
	Year     int
	Category string
	Amount   decimal.Decimal

	Result *budget.Budget
}

func (a *UpsertCategoryBudget) Perform(ctx context.Context, writer *storage.Writer) error {
	b, err := writer.Budget.FindOrCreateForUpdate(ctx, a.UserID, a.Month, a.Year)
	if err != nil {
		return err
	}

	limits, err := upsertLimit(ctx, writer.Category, a.UserID, b.CategoryBudgets, a.Category, a.Amount)
	if err != nil {
		return err
	}
	b.CategoryBudgets = limits
	b.OverallBudget = limits.Sum()

	a.Result, err = writer.Budget.Save(ctx, b)
	return err
}

// RemoveCategoryBudget drops one category limit and recomputes the overall budget.
type RemoveCategoryBudget struct {
	UserID   uuid.UUID
	Month    int
	Year     int
	Category string

	Result *budget.Budget
}

func (a *RemoveCategoryBudget) Perform(ctx context.Context, writer *storage.Writer) error {
	b, err := writer.Budget.FindOneForUpdate(ctx, a.UserID, a.Month, a.Year)
	if err != nil {
		return err
	}
	if b == nil {
		return ErrNotFound
	}

	limits, removed, err := removeLimit(ctx, writer.Category, a.UserID, b.CategoryBudgets, a.Category)
	if err != nil {
		return err
	}
	if !removed {
		return ErrNotFound
	}
	b.CategoryBudgets = limits
	b.OverallBudget = limits.Sum()

	a.Result, err = writer.Budget.Save(ctx, b)
	return err
}

// BudgetUpdate carries the fields of a full budget update. Unset fields keep
// their stored value.
type BudgetUpdate struct {
	OverallBudget   omit.Val[decimal.Decimal]
	CategoryBudgets omit.Val[budget.CategoryLimits]
}

// UpdateBudget applies a full update. The overall budget can only be set on
// its own while the budget has no category limits; otherwise it is always
// the sum of the limits.
type UpdateBudget struct {
	UserID uuid.UUID
	Month  int
	Year   int
	Update BudgetUpdate

	Result *budget.Budget
}

func (a *UpdateBudget) Perform(ctx context.Context, writer *storage.Writer) error {
	b, err := writer.Budget.FindOrCreateForUpdate(ctx, a.UserID, a.Month, a.Year)
	if err != nil {
		return err
	}

	limits := b.CategoryBudgets
	if newLimits, ok := a.Update.CategoryBudgets.Get(); ok {
		if err := checkLimits(ctx, writer.Category, a.UserID, newLimits); err != nil {
			return err
		}
		limits = normalizeLimits(newLimits)
	}

	overall, err := resolveOverall(b.OverallBudget, limits, a.Update.OverallBudget)
	if err != nil {
		return err
	}
	b.CategoryBudgets = limits
	b.OverallBudget = overall

	a.Result, err = writer.Budget.Save(ctx, b)
	return err
}

func resolveOverall(current decimal.Decimal, limits budget.CategoryLimits, requested omit.Val[decimal.Decimal]) (decimal.Decimal, error) {
	value, set := requested.Get()
	if set && value.IsNegative() {
		return decimal.Zero, ErrNegativeAmount
	}
	if len(limits) > 0 {
		derived := limits.Sum()
		if set && !value.Equal(derived) {
			return decimal.Zero, ErrOverallBudgetDerived
		}
		return derived, nil
	}
	if set {
		return value, nil
	}
	return current, nil
}

// CopyBudget copies the limits of one month onto another.
type CopyBudget struct {
	UserID    uuid.UUID
	FromMonth int
	FromYear  int
	ToMonth   int
	ToYear    int
	Overwrite bool

	Result *budget.Budget
}

func (a *CopyBudget) Perform(ctx context.Context, writer *storage.Writer) error {
	source, err := writer.Budget.FindOne(ctx, a.UserID, a.FromMonth, a.FromYear)
	if err != nil {
		return err
	}
	if source == nil {
		return ErrNotFound
	}

	target, err := writer.Budget.FindOrCreateForUpdate(ctx, a.UserID, a.ToMonth, a.ToYear)
	if err != nil {
		return err
	}
	if !a.Overwrite && (len(target.CategoryBudgets) > 0 || target.OverallBudget.IsPositive()) {
		return ErrBudgetExists
	}

	target.CategoryBudgets = append(budget.CategoryLimits{}, source.CategoryBudgets...)
	target.OverallBudget = source.OverallBudget

	a.Result, err = writer.Budget.Save(ctx, target)
	return err
}
