package budget

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/budget-tracker/internal/service"
	storagebudget "github.com/carson-networks/budget-tracker/internal/storage/budget"
)

type mockBudgetService struct {
	mock.Mock
}

func (m *mockBudgetService) GetBudget(ctx context.Context, userID uuid.UUID, month, year int) (*storagebudget.Budget, error) {
	args := m.Called(ctx, userID, month, year)
	b, _ := args.Get(0).(*storagebudget.Budget)
	return b, args.Error(1)
}

func (m *mockBudgetService) GetBudgetStats(ctx context.Context, userID uuid.UUID, month, year int) (*service.BudgetStats, error) {
	args := m.Called(ctx, userID, month, year)
	s, _ := args.Get(0).(*service.BudgetStats)
	return s, args.Error(1)
}

func (m *mockBudgetService) GetBudgetsWithSpent(ctx context.Context, userID uuid.UUID, month, year int) ([]service.CategoryBudgetWithSpent, error) {
	args := m.Called(ctx, userID, month, year)
	rows, _ := args.Get(0).([]service.CategoryBudgetWithSpent)
	return rows, args.Error(1)
}

func (m *mockBudgetService) UpsertCategoryBudget(ctx context.Context, userID uuid.UUID, month, year int, categoryValue string, amount decimal.Decimal) (*storagebudget.Budget, error) {
	args := m.Called(ctx, userID, month, year, categoryValue, amount)
	b, _ := args.Get(0).(*storagebudget.Budget)
	return b, args.Error(1)
}

func (m *mockBudgetService) RemoveCategoryBudget(ctx context.Context, userID uuid.UUID, month, year int, categoryValue string) (*storagebudget.Budget, error) {
	args := m.Called(ctx, userID, month, year, categoryValue)
	b, _ := args.Get(0).(*storagebudget.Budget)
	return b, args.Error(1)
}

func (m *mockBudgetService) UpdateBudget(ctx context.Context, userID uuid.UUID, month, year int, update service.BudgetUpdate) (*storagebudget.Budget, error) {
	args := m.Called(ctx, userID, month, year, update)
	b, _ := args.Get(0).(*storagebudget.Budget)
	return b, args.Error(1)
}

func (m *mockBudgetService) CopyBudget(ctx context.Context, userID uuid.UUID, fromMonth, fromYear, toMonth, toYear int, overwrite bool) (*storagebudget.Budget, error) {
	args := m.Called(ctx, userID, fromMonth, fromYear, toMonth, toYear, overwrite)
	b, _ := args.Get(0).(*storagebudget.Budget)
	return b, args.Error(1)
}

func newTestAPI(t *testing.T, svc budgetService) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewGetBudgetHandler(svc).Register(api)
	NewUpdateBudgetHandler(svc).Register(api)
	return api
}

func userHeader(id uuid.UUID) string {
	return "X-User-ID: " + id.String()
}

func testBudget(userID uuid.UUID) *storagebudget.Budget {
	return &storagebudget.Budget{
		ID:            uuid.Must(uuid.NewV4()),
		UserID:        userID,
		Month:         2,
		Year:          2024,
		OverallBudget: decimal.NewFromInt(50),
		CategoryBudgets: storagebudget.CategoryLimits{
			{Category: "Food", Amount: decimal.NewFromInt(50)},
		},
	}
}

func TestHTTP_GetBudget(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())
	mockSvc := new(mockBudgetService)
	mockSvc.On("GetBudget", mock.Anything, userID, 2, 2024).Return(testBudget(userID), nil)

	resp := newTestAPI(t, mockSvc).Get("/v1/budget/2024/2", userHeader(userID))

	assert.Equal(t, http.StatusOK, resp.Code)
	var body Budget
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "50", body.OverallBudget)
	require.Len(t, body.CategoryBudgets, 1)
	assert.Equal(t, "Food", body.CategoryBudgets[0].Category)
}

func TestHTTP_GetBudget_NotFound(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())
	mockSvc := new(mockBudgetService)
	mockSvc.On("GetBudget", mock.Anything, userID, 2, 2024).Return(nil, service.ErrNotFound)

	resp := newTestAPI(t, mockSvc).Get("/v1/budget/2024/2", userHeader(userID))

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestHTTP_GetBudget_MonthOutOfRange(t *testing.T) {
	mockSvc := new(mockBudgetService)

	resp := newTestAPI(t, mockSvc).Get("/v1/budget/2024/12", userHeader(uuid.Must(uuid.NewV4())))

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	mockSvc.AssertNotCalled(t, "GetBudget")
}

func TestHTTP_GetBudgetStats(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())
	mockSvc := new(mockBudgetService)
	mockSvc.On("GetBudgetStats", mock.Anything, userID, 2, 2024).Return(&service.BudgetStats{
		OverallBudget:   decimal.NewFromInt(100),
		TotalSpent:      decimal.NewFromInt(55),
		RemainingBudget: decimal.NewFromInt(45),
		PercentageUsed:  55,
		CategorySpent:   map[string]decimal.Decimal{"Food": decimal.NewFromInt(55)},
	}, nil)

	resp := newTestAPI(t, mockSvc).Get("/v1/budget/2024/2/stats", userHeader(userID))

	assert.Equal(t, http.StatusOK, resp.Code)
	var body struct {
		Stats *BudgetStats `json:"stats"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.NotNil(t, body.Stats)
	assert.Equal(t, "55", body.Stats.TotalSpent)
	assert.Equal(t, "55", body.Stats.CategorySpent["Food"])
	assert.False(t, body.Stats.Exceeded)
}

func TestHTTP_GetBudgetStats_NoBudget(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())
	mockSvc := new(mockBudgetService)
	mockSvc.On("GetBudgetStats", mock.Anything, userID, 2, 2024).Return(nil, nil)

	resp := newTestAPI(t, mockSvc).Get("/v1/budget/2024/2/stats", userHeader(userID))

	assert.Equal(t, http.StatusOK, resp.Code)
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body, "stats")
	assert.Nil(t, body["stats"])
}

func TestHTTP_GetBudgetCategories(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())
	mockSvc := new(mockBudgetService)
	mockSvc.On("GetBudgetsWithSpent", mock.Anything, userID, 2, 2024).Return([]service.CategoryBudgetWithSpent{{
		Category:       "Food",
		Name:           "Food",
		Resolved:       true,
		Limit:          decimal.NewFromInt(50),
		Spent:          decimal.NewFromInt(55),
		Remaining:      decimal.NewFromInt(-5),
		PercentageUsed: 110,
		Exceeded:       true,
	}}, nil)

	resp := newTestAPI(t, mockSvc).Get("/v1/budget/2024/2/categories", userHeader(userID))

	assert.Equal(t, http.StatusOK, resp.Code)
	var body struct {
		Categories []CategoryBudgetWithSpent `json:"categories"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Categories, 1)
	assert.Equal(t, "-5", body.Categories[0].Remaining)
	assert.True(t, body.Categories[0].Exceeded)
}

func TestHTTP_UpsertCategoryBudget(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())
	mockSvc := new(mockBudgetService)
	mockSvc.On("UpsertCategoryBudget", mock.Anything, userID, 2, 2024, "Food",
		mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(decimal.NewFromInt(50)) })).
		Return(testBudget(userID), nil)

	resp := newTestAPI(t, mockSvc).Put("/v1/budget/2024/2/category", userHeader(userID),
		CategoryBudget{Category: "Food", Amount: "50"})

	assert.Equal(t, http.StatusOK, resp.Code)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_UpsertCategoryBudget_Negative(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())
	mockSvc := new(mockBudgetService)
	mockSvc.On("UpsertCategoryBudget", mock.Anything, userID, 2, 2024, "Food", mock.Anything).
		Return(nil, service.ErrNegativeAmount)

	resp := newTestAPI(t, mockSvc).Put("/v1/budget/2024/2/category", userHeader(userID),
		CategoryBudget{Category: "Food", Amount: "-1"})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestHTTP_RemoveCategoryBudget(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())
	mockSvc := new(mockBudgetService)
	mockSvc.On("RemoveCategoryBudget", mock.Anything, userID, 2, 2024, "Food").Return(nil, service.ErrNotFound)

	resp := newTestAPI(t, mockSvc).Delete("/v1/budget/2024/2/category/Food", userHeader(userID))

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestHTTP_UpdateBudget_OverallConflict(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())
	mockSvc := new(mockBudgetService)
	mockSvc.On("UpdateBudget", mock.Anything, userID, 2, 2024, mock.MatchedBy(func(u service.BudgetUpdate) bool {
		overall, ok := u.OverallBudget.Get()
		return ok && overall.Equal(decimal.NewFromInt(300)) && u.CategoryBudgets.IsUnset()
	})).Return(nil, service.ErrOverallBudgetDerived)

	resp := newTestAPI(t, mockSvc).Put("/v1/budget/2024/2", userHeader(userID),
		map[string]any{"overallBudget": "300"})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_CopyBudget_Exists(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())
	mockSvc := new(mockBudgetService)
	mockSvc.On("CopyBudget", mock.Anything, userID, 1, 2024, 2, 2024, false).Return(nil, service.ErrBudgetExists)

	resp := newTestAPI(t, mockSvc).Post("/v1/budget/2024/2/copy", userHeader(userID),
		map[string]any{"fromYear": 2024, "fromMonth": 1})

	assert.Equal(t, http.StatusConflict, resp.Code)
}

func TestHTTP_Budget_ServiceError(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())
	mockSvc := new(mockBudgetService)
	mockSvc.On("GetBudgetsWithSpent", mock.Anything, userID, 2, 2024).Return(nil, errors.New("database unavailable"))

	resp := newTestAPI(t, mockSvc).Get("/v1/budget/2024/2/categories", userHeader(userID))

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
}

func TestParseUpdateBudgetInput(t *testing.T) {
	input := &UpdateBudgetInput{}
	input.Body.CategoryBudgets = []CategoryBudget{{Category: "Food", Amount: "50"}, {Category: "Rent", Amount: "900"}}

	update, err := parseUpdateBudgetInput(input)
	require.NoError(t, err)

	limits, ok := update.CategoryBudgets.Get()
	require.True(t, ok)
	assert.True(t, limits.Sum().Equal(decimal.NewFromInt(950)))
	assert.True(t, update.OverallBudget.IsUnset())

	input.Body.CategoryBudgets[0].Amount = "fifty"
	_, err = parseUpdateBudgetInput(input)
	assert.Error(t, err)
}
