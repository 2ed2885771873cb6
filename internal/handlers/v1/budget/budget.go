package budget

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-tracker/internal/handlers/v1/request"
	"github.com/carson-networks/budget-tracker/internal/service"
	storagebudget "github.com/carson-networks/budget-tracker/internal/storage/budget"
)

// PeriodInput addresses one budget month. Month is zero based.
type PeriodInput struct {
	request.UserHeader
	Year  int `path:"year" minimum:"1970" maximum:"9999" doc:"Budget year"`
	Month int `path:"month" minimum:"0" maximum:"11" doc:"Zero based budget month"`
}

// CategoryBudget is a single category limit.
type CategoryBudget struct {
	Category string `json:"category" minLength:"1" doc:"Category name or category UUID"`
	Amount   string `json:"amount" doc:"Non-negative decimal limit"`
}

// Budget is the API response model for a budget month.
type Budget struct {
	ID              string           `json:"id" doc:"Budget UUID"`
	Month           int              `json:"month" doc:"Zero based month"`
	Year            int              `json:"year" doc:"Year"`
	OverallBudget   string           `json:"overallBudget" doc:"Overall monthly limit"`
	CategoryBudgets []CategoryBudget `json:"categoryBudgets" doc:"Per category limits"`
	UpdatedAt       string           `json:"updatedAt,omitempty" doc:"RFC3339 time of the last change"`
}

// BudgetStats is the API response model for a month's spending totals.
type BudgetStats struct {
	OverallBudget   string            `json:"overallBudget"`
	TotalSpent      string            `json:"totalSpent"`
	RemainingBudget string            `json:"remainingBudget"`
	PercentageUsed  float64           `json:"percentageUsed"`
	Exceeded        bool              `json:"exceeded"`
	CategorySpent   map[string]string `json:"categorySpent" doc:"Spend keyed by the category recorded on each transaction"`
}

// CategoryBudgetWithSpent is one category limit joined with its spend.
type CategoryBudgetWithSpent struct {
	Category       string  `json:"category" doc:"Stored category value"`
	Name           string  `json:"name" doc:"Resolved display name"`
	Resolved       bool    `json:"resolved" doc:"False when a stored category UUID no longer exists"`
	Limit          string  `json:"limit"`
	Spent          string  `json:"spent"`
	Remaining      string  `json:"remaining"`
	PercentageUsed float64 `json:"percentageUsed"`
	Exceeded       bool    `json:"exceeded"`
}

type budgetService interface {
	GetBudget(ctx context.Context, userID uuid.UUID, month, year int) (*storagebudget.Budget, error)
	GetBudgetStats(ctx context.Context, userID uuid.UUID, month, year int) (*service.BudgetStats, error)
	GetBudgetsWithSpent(ctx context.Context, userID uuid.UUID, month, year int) ([]service.CategoryBudgetWithSpent, error)
	UpsertCategoryBudget(ctx context.Context, userID uuid.UUID, month, year int, categoryValue string, amount decimal.Decimal) (*storagebudget.Budget, error)
	RemoveCategoryBudget(ctx context.Context, userID uuid.UUID, month, year int, categoryValue string) (*storagebudget.Budget, error)
	UpdateBudget(ctx context.Context, userID uuid.UUID, month, year int, update service.BudgetUpdate) (*storagebudget.Budget, error)
	CopyBudget(ctx context.Context, userID uuid.UUID, fromMonth, fromYear, toMonth, toYear int, overwrite bool) (*storagebudget.Budget, error)
}

func fromStorage(b *storagebudget.Budget) Budget {
	limits := make([]CategoryBudget, len(b.CategoryBudgets))
	for i, l := range b.CategoryBudgets {
		limits[i] = CategoryBudget{Category: l.Category, Amount: l.Amount.String()}
	}
	resp := Budget{
		ID:              b.ID.String(),
		Month:           b.Month,
		Year:            b.Year,
		OverallBudget:   b.OverallBudget.String(),
		CategoryBudgets: limits,
	}
	if !b.UpdatedAt.IsZero() {
		resp.UpdatedAt = b.UpdatedAt.Format(time.RFC3339)
	}
	return resp
}

func statsFromService(s *service.BudgetStats) BudgetStats {
	categorySpent := make(map[string]string, len(s.CategorySpent))
	for k, v := range s.CategorySpent {
		categorySpent[k] = v.String()
	}
	return BudgetStats{
		OverallBudget:   s.OverallBudget.String(),
		TotalSpent:      s.TotalSpent.String(),
		RemainingBudget: s.RemainingBudget.String(),
		PercentageUsed:  s.PercentageUsed,
		Exceeded:        s.Exceeded,
		CategorySpent:   categorySpent,
	}
}
