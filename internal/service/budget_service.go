package service

import (
	"context"
	"strings"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-tracker/internal/operator/actions"
	"github.com/carson-networks/budget-tracker/internal/storage/budget"
)

// BudgetUpdate is a full budget update, see actions.UpdateBudget for the rules.
type BudgetUpdate = actions.BudgetUpdate

// BudgetService handles budget reads and writes.
type BudgetService struct {
	budgets    BudgetStore
	aggregator *BudgetAggregator
	processor  actionProcessor
}

func NewBudgetService(budgets BudgetStore, aggregator *BudgetAggregator, processor actionProcessor) *BudgetService {
	return &BudgetService{
		budgets:    budgets,
		aggregator: aggregator,
		processor:  processor,
	}
}

// GetBudget returns ErrNotFound when no budget exists for the month.
func (s *BudgetService) GetBudget(ctx context.Context, userID uuid.UUID, month, year int) (*budget.Budget, error) {
	if err := validatePeriod(month, year); err != nil {
		return nil, err
	}
	b, err := s.budgets.FindOne(ctx, userID, month, year)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrNotFound
	}
	return b, nil
}

// GetBudgetStats returns nil stats when no budget is configured.
func (s *BudgetService) GetBudgetStats(ctx context.Context, userID uuid.UUID, month, year int) (*BudgetStats, error) {
	if err := validatePeriod(month, year); err != nil {
		return nil, err
	}
	return s.aggregator.ComputeBudgetStats(ctx, userID, month, year)
}

func (s *BudgetService) GetBudgetsWithSpent(ctx context.Context, userID uuid.UUID, month, year int) ([]CategoryBudgetWithSpent, error) {
	if err := validatePeriod(month, year); err != nil {
		return nil, err
	}
	return s.aggregator.GetBudgetsWithSpent(ctx, userID, month, year)
}

func (s *BudgetService) UpsertCategoryBudget(ctx context.Context, userID uuid.UUID, month, year int, categoryValue string, amount decimal.Decimal) (*budget.Budget, error) {
	if err := validatePeriod(month, year); err != nil {
		return nil, err
	}
	categoryValue = strings.TrimSpace(categoryValue)
	if categoryValue == "" {
		return nil, ErrInvalidCategory
	}
	if amount.IsNegative() {
		return nil, ErrNegativeAmount
	}

	action := &actions.UpsertCategoryBudget{
		UserID:   userID,
		Month:    month,
		Year:     year,
		Category: categoryValue,
		Amount:   amount,
	}
	if err := s.processor.Process(ctx, action); err != nil {
		return nil, err
	}
	return action.Result, nil
}

func (s *BudgetService) RemoveCategoryBudget(ctx context.Context, userID uuid.UUID, month, year int, categoryValue string) (*budget.Budget, error) {
	if err := validatePeriod(month, year); err != nil {
		return nil, err
	}

	action := &actions.RemoveCategoryBudget{
		UserID:   userID,
		Month:    month,
		Year:     year,
		Category: strings.TrimSpace(categoryValue),
	}
	if err := s.processor.Process(ctx, action); err != nil {
		return nil, err
	}
	return action.Result, nil
}

func (s *BudgetService) UpdateBudget(ctx context.Context, userID uuid.UUID, month, year int, update BudgetUpdate) (*budget.Budget, error) {
	if err := validatePeriod(month, year); err != nil {
		return nil, err
	}

	action := &actions.UpdateBudget{
		UserID: userID,
		Month:  month,
		Year:   year,
		Update: update,
	}
	if err := s.processor.Process(ctx, action); err != nil {
		return nil, err
	}
	return action.Result, nil
}

// CopyBudget copies the limits of one month onto another.
func (s *BudgetService) CopyBudget(ctx context.Context, userID uuid.UUID, fromMonth, fromYear, toMonth, toYear int, overwrite bool) (*budget.Budget, error) {
	if err := validatePeriod(fromMonth, fromYear); err != nil {
		return nil, err
	}
	if err := validatePeriod(toMonth, toYear); err != nil {
		return nil, err
	}

	action := &actions.CopyBudget{
		UserID:    userID,
		FromMonth: fromMonth,
		FromYear:  fromYear,
		ToMonth:   toMonth,
		ToYear:    toYear,
		Overwrite: overwrite,
	}
	if err := s.processor.Process(ctx, action); err != nil {
		return nil, err
	}
	return action.Result, nil
}
