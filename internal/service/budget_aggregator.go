package service

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/carson-networks/budget-tracker/internal/storage/budget"
	"github.com/carson-networks/budget-tracker/internal/storage/category"
	"github.com/carson-networks/budget-tracker/internal/storage/transaction"
)

var hundred = decimal.NewFromInt(100)

// BudgetStats is the spending picture of one budget month.
// CategorySpent is keyed by the category text stored on each transaction.
type BudgetStats struct {
	OverallBudget   decimal.Decimal
	CategoryBudgets budget.CategoryLimits
	TotalSpent      decimal.Decimal
	RemainingBudget decimal.Decimal
	PercentageUsed  float64
	Exceeded        bool
	CategorySpent   map[string]decimal.Decimal
}

// CategoryBudgetWithSpent joins one category limit with the month's spend.
type CategoryBudgetWithSpent struct {
	Category       string
	Name           string
	Resolved       bool
	Limit          decimal.Decimal
	Spent          decimal.Decimal
	Remaining      decimal.Decimal
	PercentageUsed float64
	Exceeded       bool
}

// BudgetAggregator computes spend totals for a budget month.
type BudgetAggregator struct {
	budgets      BudgetStore
	transactions TransactionStore
	categories   CategoryStore
}

func NewBudgetAggregator(budgets BudgetStore, transactions TransactionStore, categories CategoryStore) *BudgetAggregator {
	return &BudgetAggregator{
		budgets:      budgets,
		transactions: transactions,
		categories:   categories,
	}
}

// ComputeBudgetStats returns nil without error when the user has no budget
// for the month. Month and year are not range checked here; a value with no
// stored budget simply yields nil.
func (a *BudgetAggregator) ComputeBudgetStats(ctx context.Context, userID uuid.UUID, month, year int) (*BudgetStats, error) {
	b, err := a.budgets.FindOne(ctx, userID, month, year)
	if err != nil {
		return nil, fmt.Errorf("find budget: %w", err)
	}
	if b == nil {
		return nil, nil
	}

	start, end := MonthWindow(month, year)
	expense := transaction.TypeExpense
	expenses, err := a.transactions.Find(ctx, &transaction.TransactionFilter{
		UserID:   userID,
		Type:     &expense,
		DateFrom: &start,
		DateTo:   &end,
	})
	if err != nil {
		return nil, fmt.Errorf("find expenses: %w", err)
	}

	totalSpent := decimal.Zero
	categorySpent := make(map[string]decimal.Decimal)
	for _, tx := range expenses {
		totalSpent = totalSpent.Add(tx.Amount)
		categorySpent[tx.Category] = categorySpent[tx.Category].Add(tx.Amount)
	}

	limits := b.CategoryBudgets
	if limits == nil {
		limits = budget.CategoryLimits{}
	}

	return &BudgetStats{
		OverallBudget:   b.OverallBudget,
		CategoryBudgets: limits,
		TotalSpent:      totalSpent,
		RemainingBudget: b.OverallBudget.Sub(totalSpent),
		PercentageUsed:  percentage(totalSpent, b.OverallBudget),
		Exceeded:        totalSpent.GreaterThan(b.OverallBudget),
		CategorySpent:   categorySpent,
	}, nil
}

// GetBudgetsWithSpent resolves every category limit to a display name and
// joins it with the spend recorded under that name or the category ID.
// Limits stored by ID whose category no longer exists fall back to the
// stored value.
func (a *BudgetAggregator) GetBudgetsWithSpent(ctx context.Context, userID uuid.UUID, month, year int) ([]CategoryBudgetWithSpent, error) {
	var (
		stats      *BudgetStats
		categories []*category.Category
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stats, err = a.ComputeBudgetStats(gctx, userID, month, year)
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = a.categories.List(gctx, userID)
		if err != nil {
			return fmt.Errorf("list categories: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if stats == nil {
		return nil, nil
	}

	index := category.NewIndex(categories)
	result := make([]CategoryBudgetWithSpent, 0, len(stats.CategoryBudgets))
	for _, limit := range stats.CategoryBudgets {
		ref := category.ParseRef(limit.Category)
		name, resolved := index.Name(ref)
		if !resolved {
			name = limit.Category
		}

		id, _ := index.ID(ref)
		spent := categorySpent(stats.CategorySpent, name, id)

		result = append(result, CategoryBudgetWithSpent{
			Category:       limit.Category,
			Name:           name,
			Resolved:       resolved,
			Limit:          limit.Amount,
			Spent:          spent,
			Remaining:      limit.Amount.Sub(spent),
			PercentageUsed: percentage(spent, limit.Amount),
			Exceeded:       spent.GreaterThan(limit.Amount),
		})
	}
	return result, nil
}

// categorySpent sums the spend recorded under a category's name and under
// its ID, since transactions may carry either.
func categorySpent(spent map[string]decimal.Decimal, name string, id uuid.UUID) decimal.Decimal {
	total := spent[name]
	if id != uuid.Nil && id.String() != name {
		total = total.Add(spent[id.String()])
	}
	return total
}

func percentage(spent, limit decimal.Decimal) float64 {
	if !limit.IsPositive() {
		return 0
	}
	return spent.Div(limit).Mul(hundred).InexactFloat64()
}
