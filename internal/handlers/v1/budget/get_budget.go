package budget

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budget-tracker/internal/handlers/v1/request"
)

type GetBudgetOutput struct {
	Body Budget
}

type GetBudgetStatsOutput struct {
	Body struct {
		Stats *BudgetStats `json:"stats" doc:"Null when no budget is configured for the month"`
	}
}

type GetBudgetsWithSpentOutput struct {
	Body struct {
		Categories []CategoryBudgetWithSpent `json:"categories"`
	}
}

// GetBudgetHandler serves the read side of budgets.
type GetBudgetHandler struct {
	BudgetService budgetService
}

func NewGetBudgetHandler(svc budgetService) *GetBudgetHandler {
	return &GetBudgetHandler{BudgetService: svc}
}

func (h *GetBudgetHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-budget",
		Method:      http.MethodGet,
		Path:        "/v1/budget/{year}/{month}",
		Summary:     "Get budget",
		Tags:        []string{"Budgets"},
	}, h.getBudget)

	huma.Register(api, huma.Operation{
		OperationID: "get-budget-stats",
		Method:      http.MethodGet,
		Path:        "/v1/budget/{year}/{month}/stats",
		Summary:     "Get budget stats",
		Description: "Returns total spend, remaining budget and spend per category for the month.",
		Tags:        []string{"Budgets"},
	}, h.getStats)

	huma.Register(api, huma.Operation{
		OperationID: "get-budget-categories",
		Method:      http.MethodGet,
		Path:        "/v1/budget/{year}/{month}/categories",
		Summary:     "Get category budgets with spend",
		Tags:        []string{"Budgets"},
	}, h.getCategories)
}

func (h *GetBudgetHandler) getBudget(ctx context.Context, input *PeriodInput) (*GetBudgetOutput, error) {
	userID, err := input.User()
	if err != nil {
		return nil, err
	}

	b, err := h.BudgetService.GetBudget(ctx, userID, input.Month, input.Year)
	if err != nil {
		return nil, request.ServiceError(err, "failed to get budget")
	}
	return &GetBudgetOutput{Body: fromStorage(b)}, nil
}

func (h *GetBudgetHandler) getStats(ctx context.Context, input *PeriodInput) (*GetBudgetStatsOutput, error) {
	userID, err := input.User()
	if err != nil {
		return nil, err
	}

	stats, err := h.BudgetService.GetBudgetStats(ctx, userID, input.Month, input.Year)
	if err != nil {
		return nil, request.ServiceError(err, "failed to compute budget stats")
	}

	out := &GetBudgetStatsOutput{}
	if stats != nil {
		converted := statsFromService(stats)
		out.Body.Stats = &converted
	}
	return out, nil
}

func (h *GetBudgetHandler) getCategories(ctx context.Context, input *PeriodInput) (*GetBudgetsWithSpentOutput, error) {
	userID, err := input.User()
	if err != nil {
		return nil, err
	}

	rows, err := h.BudgetService.GetBudgetsWithSpent(ctx, userID, input.Month, input.Year)
	if err != nil {
		return nil, request.ServiceError(err, "failed to compute category budgets")
	}

	out := &GetBudgetsWithSpentOutput{}
	out.Body.Categories = make([]CategoryBudgetWithSpent, len(rows))
	for i, row := range rows {
		out.Body.Categories[i] = CategoryBudgetWithSpent{
			Category:       row.Category,
			Name:           row.Name,
			Resolved:       row.Resolved,
			Limit:          row.Limit.String(),
			Spent:          row.Spent.String(),
			Remaining:      row.Remaining.String(),
			PercentageUsed: row.PercentageUsed,
			Exceeded:       row.Exceeded,
		}
	}
	return out, nil
}
