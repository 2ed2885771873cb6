package budget

import (
	"context"
	"net/http"

	"github.com/aarondl/opt/omit"
	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-tracker/internal/handlers/v1/request"
	"github.com/carson-networks/budget-tracker/internal/service"
	storagebudget "github.com/carson-networks/budget-tracker/internal/storage/budget"
)

type UpdateBudgetInput struct {
	PeriodInput
	Body struct {
		OverallBudget   *string          `json:"overallBudget,omitempty" doc:"Only settable while no category limits exist"`
		CategoryBudgets []CategoryBudget `json:"categoryBudgets,omitempty" doc:"Replaces every category limit when present"`
	}
}

type UpsertCategoryBudgetInput struct {
	PeriodInput
	Body CategoryBudget
}

type RemoveCategoryBudgetInput struct {
	PeriodInput
	Category string `path:"category" doc:"Category name or category UUID"`
}

type CopyBudgetInput struct {
	PeriodInput
	Body struct {
		FromYear  int  `json:"fromYear" minimum:"1970" maximum:"9999"`
		FromMonth int  `json:"fromMonth" minimum:"0" maximum:"11"`
		Overwrite bool `json:"overwrite,omitempty" doc:"Replace limits already set on the target month"`
	}
}

type BudgetOutput struct {
	Body Budget
}

// UpdateBudgetHandler serves every budget write.
type UpdateBudgetHandler struct {
	BudgetService budgetService
}

func NewUpdateBudgetHandler(svc budgetService) *UpdateBudgetHandler {
	return &UpdateBudgetHandler{BudgetService: svc}
}

func (h *UpdateBudgetHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-budget",
		Method:      http.MethodPut,
		Path:        "/v1/budget/{year}/{month}",
		Summary:     "Update budget",
		Description: "Sets the overall budget or replaces all category limits. The overall budget is the sum of the category limits whenever any exist.",
		Tags:        []string{"Budgets"},
	}, h.update)

	huma.Register(api, huma.Operation{
		OperationID: "upsert-category-budget",
		Method:      http.MethodPut,
		Path:        "/v1/budget/{year}/{month}/category",
		Summary:     "Set category limit",
		Tags:        []string{"Budgets"},
	}, h.upsertCategory)

	huma.Register(api, huma.Operation{
		OperationID: "remove-category-budget",
		Method:      http.MethodDelete,
		Path:        "/v1/budget/{year}/{month}/category/{category}",
		Summary:     "Remove category limit",
		Tags:        []string{"Budgets"},
	}, h.removeCategory)

	huma.Register(api, huma.Operation{
		OperationID: "copy-budget",
		Method:      http.MethodPost,
		Path:        "/v1/budget/{year}/{month}/copy",
		Summary:     "Copy budget",
		Description: "Copies the limits of another month onto this month.",
		Tags:        []string{"Budgets"},
	}, h.copy)
}

func parseLimits(in []CategoryBudget) (storagebudget.CategoryLimits, error) {
	limits := make(storagebudget.CategoryLimits, len(in))
	for i, l := range in {
		amount, err := decimal.NewFromString(l.Amount)
		if err != nil {
			return nil, huma.NewError(http.StatusBadRequest, "invalid amount for "+l.Category, err)
		}
		limits[i] = storagebudget.CategoryLimit{Category: l.Category, Amount: amount}
	}
	return limits, nil
}

func parseUpdateBudgetInput(input *UpdateBudgetInput) (service.BudgetUpdate, error) {
	var update service.BudgetUpdate
	if input.Body.OverallBudget != nil {
		overall, err := decimal.NewFromString(*input.Body.OverallBudget)
		if err != nil {
			return update, huma.NewError(http.StatusBadRequest, "invalid overallBudget", err)
		}
		update.OverallBudget = omit.From(overall)
	}
	if input.Body.CategoryBudgets != nil {
		limits, err := parseLimits(input.Body.CategoryBudgets)
		if err != nil {
			return update, err
		}
		update.CategoryBudgets = omit.From(limits)
	}
	return update, nil
}

func (h *UpdateBudgetHandler) update(ctx context.Context, input *UpdateBudgetInput) (*BudgetOutput, error) {
	userID, err := input.User()
	if err != nil {
		return nil, err
	}
	update, err := parseUpdateBudgetInput(input)
	if err != nil {
		return nil, err
	}

	b, err := h.BudgetService.UpdateBudget(ctx, userID, input.Month, input.Year, update)
	if err != nil {
		return nil, request.ServiceError(err, "failed to update budget")
	}
	return &BudgetOutput{Body: fromStorage(b)}, nil
}

func (h *UpdateBudgetHandler) upsertCategory(ctx context.Context, input *UpsertCategoryBudgetInput) (*BudgetOutput, error) {
	userID, err := input.User()
	if err != nil {
		return nil, err
	}
	amount, err := decimal.NewFromString(input.Body.Amount)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid amount", err)
	}

	b, err := h.BudgetService.UpsertCategoryBudget(ctx, userID, input.Month, input.Year, input.Body.Category, amount)
	if err != nil {
		return nil, request.ServiceError(err, "failed to set category budget")
	}
	return &BudgetOutput{Body: fromStorage(b)}, nil
}

func (h *UpdateBudgetHandler) removeCategory(ctx context.Context, input *RemoveCategoryBudgetInput) (*BudgetOutput, error) {
	userID, err := input.User()
	if err != nil {
		return nil, err
	}

	b, err := h.BudgetService.RemoveCategoryBudget(ctx, userID, input.Month, input.Year, input.Category)
	if err != nil {
		return nil, request.ServiceError(err, "failed to remove category budget")
	}
	return &BudgetOutput{Body: fromStorage(b)}, nil
}

func (h *UpdateBudgetHandler) copy(ctx context.Context, input *CopyBudgetInput) (*BudgetOutput, error) {
	userID, err := input.User()
	if err != nil {
		return nil, err
	}

	b, err := h.BudgetService.CopyBudget(ctx, userID, input.Body.FromMonth, input.Body.FromYear, input.Month, input.Year, input.Body.Overwrite)
	if err != nil {
		return nil, request.ServiceError(err, "failed to copy budget")
	}
	return &BudgetOutput{Body: fromStorage(b)}, nil
}
