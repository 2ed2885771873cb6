package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-tracker/internal/storage/budget"
	"github.com/carson-networks/budget-tracker/internal/storage/category"
)

// upsertLimit replaces the amount of the entry naming the same category as
// raw, or appends a new entry. The stored category value of an existing
// entry is kept as is.
func upsertLimit(
	ctx context.Context,
	finder category.Finder,
	userID uuid.UUID,
	limits budget.CategoryLimits,
	raw string,
	amount decimal.Decimal,
) (budget.CategoryLimits, error) {
	if amount.IsNegative() {
		return nil, ErrNegativeAmount
	}

	index, err := findLimit(ctx, finder, userID, limits, raw)
	if err != nil {
		return nil, err
	}

	result := make(budget.CategoryLimits, len(limits), len(limits)+1)
	copy(result, limits)
	if index >= 0 {
		result[index].Amount = amount
		return result, nil
	}
	return append(result, budget.CategoryLimit{
		Category: category.ParseRef(raw).String(),
		Amount:   amount,
	}), nil
}

// removeLimit drops the entry naming the same category as raw.
func removeLimit(
	ctx context.Context,
	finder category.Finder,
	userID uuid.UUID,
	limits budget.CategoryLimits,
	raw string,
) (budget.CategoryLimits, bool, error) {
	index, err := findLimit(ctx, finder, userID, limits, raw)
	if err != nil {
		return nil, false, err
	}
	if index < 0 {
		return limits, false, nil
	}

	result := make(budget.CategoryLimits, 0, len(limits)-1)
	result = append(result, limits[:index]...)
	result = append(result, limits[index+1:]...)
	return result, true, nil
}

// checkLimits rejects negative amounts and entries that resolve to the same category.
func checkLimits(ctx context.Context, finder category.Finder, userID uuid.UUID, limits budget.CategoryLimits) error {
	seen := make(map[string]struct{}, len(limits))
	for _, limit := range limits {
		if limit.Amount.IsNegative() {
			return ErrNegativeAmount
		}
		key, err := category.Identity(ctx, finder, userID, category.ParseRef(limit.Category))
		if err != nil {
			return err
		}
		if _, ok := seen[key]; ok {
			return ErrDuplicateCategory
		}
		seen[key] = struct{}{}
	}
	return nil
}

// normalizeLimits stores every category the way upsertLimit does: trimmed
// names and canonical lower case IDs.
func normalizeLimits(limits budget.CategoryLimits) budget.CategoryLimits {
	result := make(budget.CategoryLimits, len(limits))
	for i, limit := range limits {
		result[i] = budget.CategoryLimit{
			Category: category.ParseRef(limit.Category).String(),
			Amount:   limit.Amount,
		}
	}
	return result
}

func findLimit(
	ctx context.Context,
	finder category.Finder,
	userID uuid.UUID,
	limits budget.CategoryLimits,
	raw string,
) (int, error) {
	target, err := category.Identity(ctx, finder, userID, category.ParseRef(raw))
	if err != nil {
		return -1, err
	}
	for i, limit := range limits {
		key, err := category.Identity(ctx, finder, userID, category.ParseRef(limit.Category))
		if err != nil {
			return -1, err
		}
		if key == target {
			return i, nil
		}
	}
	return -1, nil
}
