package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/budget-tracker/internal/logging"
	"github.com/carson-networks/budget-tracker/internal/operator/actions"
	"github.com/carson-networks/budget-tracker/internal/storage/transaction"
)

type mockBudgetChecker struct {
	mock.Mock
}

func (m *mockBudgetChecker) CheckBudgetExceeded(ctx context.Context, userID uuid.UUID, amount decimal.Decimal, categoryName string, transactionDate time.Time) CheckResult {
	args := m.Called(ctx, userID, amount, categoryName, transactionDate)
	return args.Get(0).(CheckResult)
}

// expectCreate makes the processor echo the create as a stored row.
func expectCreate(processor *mockProcessor, createdAt time.Time) {
	processor.On("Process", mock.Anything, mock.AnythingOfType("*actions.CreateTransaction")).
		Run(func(args mock.Arguments) {
			action := args.Get(1).(*actions.CreateTransaction)
			action.Result = &transaction.Transaction{
				ID:              uuid.Must(uuid.NewV4()),
				UserID:          action.Create.UserID,
				Type:            action.Create.Type,
				Amount:          action.Create.Amount,
				Category:        action.Create.Category,
				Description:     action.Create.Description,
				TransactionDate: action.Create.TransactionDate,
				CreatedAt:       createdAt,
			}
		}).Return(nil)
}

// -- CreateTransaction tests --

func TestCreateTransaction_ExpenseRunsBudgetCheck(t *testing.T) {
	processor := new(mockProcessor)
	checker := new(mockBudgetChecker)
	svc := NewTransactionService(newMemStore().transactionStore(), processor, checker)

	userID := uuid.Must(uuid.NewV4())
	txDate := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	expectCreate(processor, txDate)
	checker.On("CheckBudgetExceeded", mock.Anything, userID,
		mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(decimal.NewFromInt(25)) }),
		"Food", txDate).Return(CheckResult{Status: CheckNotified})

	logData := logging.NewLogData(logrus.New())
	ctx := logging.WithLogData(context.Background(), logData)

	created, err := svc.CreateTransaction(ctx, Transaction{
		UserID:          userID,
		Type:            transaction.TypeExpense,
		Amount:          decimal.NewFromInt(25),
		Category:        "  Food ",
		TransactionDate: txDate,
	})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, "Food", created.Category)
	processor.AssertExpectations(t)
	checker.AssertExpectations(t)
}

func TestCreateTransaction_IncomeSkipsBudgetCheck(t *testing.T) {
	processor := new(mockProcessor)
	checker := new(mockBudgetChecker)
	svc := NewTransactionService(newMemStore().transactionStore(), processor, checker)
	expectCreate(processor, time.Now())

	_, err := svc.CreateTransaction(context.Background(), Transaction{
		UserID:   uuid.Must(uuid.NewV4()),
		Type:     transaction.TypeIncome,
		Amount:   decimal.NewFromInt(1000),
		Category: "Salary",
	})

	assert.NoError(t, err)
	checker.AssertNotCalled(t, "CheckBudgetExceeded")
}

func TestCreateTransaction_CheckFailureDoesNotFail(t *testing.T) {
	processor := new(mockProcessor)
	checker := new(mockBudgetChecker)
	svc := NewTransactionService(newMemStore().transactionStore(), processor, checker)
	expectCreate(processor, time.Now())
	checker.On("CheckBudgetExceeded", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(CheckResult{Status: CheckFailed, Err: errStoreDown})

	created, err := svc.CreateTransaction(context.Background(), Transaction{
		UserID:   uuid.Must(uuid.NewV4()),
		Type:     transaction.TypeExpense,
		Amount:   decimal.NewFromInt(5),
		Category: "Food",
	})

	assert.NoError(t, err)
	assert.NotNil(t, created)
}

func TestCreateTransaction_Validation(t *testing.T) {
	tests := []struct {
		name    string
		tx      Transaction
		wantErr error
	}{
		{"zero amount", Transaction{Type: transaction.TypeExpense, Amount: decimal.Zero, Category: "Food"}, ErrInvalidAmount},
		{"negative amount", Transaction{Type: transaction.TypeExpense, Amount: decimal.NewFromInt(-1), Category: "Food"}, ErrInvalidAmount},
		{"bad type", Transaction{Type: "transfer", Amount: decimal.NewFromInt(1), Category: "Food"}, ErrInvalidType},
		{"blank category", Transaction{Type: transaction.TypeExpense, Amount: decimal.NewFromInt(1), Category: "  "}, ErrInvalidCategory},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			processor := new(mockProcessor)
			svc := NewTransactionService(newMemStore().transactionStore(), processor, nil)

			created, err := svc.CreateTransaction(context.Background(), tt.tx)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, created)
			processor.AssertNotCalled(t, "Process")
		})
	}
}

func TestCreateTransaction_OperatorError(t *testing.T) {
	processor := new(mockProcessor)
	checker := new(mockBudgetChecker)
	svc := NewTransactionService(newMemStore().transactionStore(), processor, checker)
	processor.On("Process", mock.Anything, mock.Anything).Return(errors.New("connection refused"))

	created, err := svc.CreateTransaction(context.Background(), Transaction{
		UserID:   uuid.Must(uuid.NewV4()),
		Type:     transaction.TypeExpense,
		Amount:   decimal.NewFromInt(5),
		Category: "Food",
	})

	assert.EqualError(t, err, "connection refused")
	assert.Nil(t, created)
	checker.AssertNotCalled(t, "CheckBudgetExceeded")
}

// -- ListTransactions tests --

func seedTransactions(store *memStore, userID uuid.UUID, n int, createdAt time.Time) {
	for i := 0; i < n; i++ {
		tx := store.addTransaction(userID, transaction.TypeExpense, "Item", "5.00", createdAt)
		tx.CreatedAt = createdAt.Add(-time.Duration(i) * time.Second)
	}
}

func TestListTransactions_NoResults(t *testing.T) {
	svc := NewTransactionService(newMemStore().transactionStore(), new(mockProcessor), nil)

	txs, nextCursor, err := svc.ListTransactions(context.Background(), uuid.Must(uuid.NewV4()), TransactionQuery{}, nil)

	assert.NoError(t, err)
	assert.Nil(t, txs)
	assert.Nil(t, nextCursor)
}

func TestListTransactions_SinglePage(t *testing.T) {
	store := newMemStore()
	userID := uuid.Must(uuid.NewV4())
	now := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	seedTransactions(store, userID, 2, now)
	svc := NewTransactionService(store.transactionStore(), new(mockProcessor), nil)

	txs, nextCursor, err := svc.ListTransactions(context.Background(), userID, TransactionQuery{}, nil)

	assert.NoError(t, err)
	assert.Len(t, txs, 2)
	assert.Nil(t, nextCursor)
	assert.Equal(t, now, txs[0].CreatedAt)
	assert.Equal(t, userID, txs[0].UserID)
}

func TestListTransactions_HasNextPage(t *testing.T) {
	store := newMemStore()
	userID := uuid.Must(uuid.NewV4())
	now := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	seedTransactions(store, userID, defaultLimit+1, now)
	svc := NewTransactionService(store.transactionStore(), new(mockProcessor), nil)

	txs, nextCursor, err := svc.ListTransactions(context.Background(), userID, TransactionQuery{}, nil)

	assert.NoError(t, err)
	assert.Len(t, txs, defaultLimit, "truncated to default limit")

	require.NotNil(t, nextCursor)
	assert.Equal(t, defaultLimit, nextCursor.Position)
	assert.Equal(t, defaultLimit, nextCursor.Limit)
	assert.Equal(t, now, nextCursor.MaxCreationTime, "derived from first row")
}

func TestListTransactions_MonthFilter(t *testing.T) {
	store := newMemStore()
	userID := uuid.Must(uuid.NewV4())
	store.addTransaction(userID, transaction.TypeExpense, "Food", "5", march(1))
	store.addTransaction(userID, transaction.TypeIncome, "Salary", "5", march(2))
	store.addTransaction(userID, transaction.TypeExpense, "Food", "5", time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC))
	svc := NewTransactionService(store.transactionStore(), new(mockProcessor), nil)

	month, year := 2, 2024
	expense := transaction.TypeExpense
	txs, _, err := svc.ListTransactions(context.Background(), userID, TransactionQuery{Type: &expense, Month: &month, Year: &year}, nil)

	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, march(1), txs[0].TransactionDate)
}

func TestListTransactions_InvalidMonth(t *testing.T) {
	svc := NewTransactionService(newMemStore().transactionStore(), new(mockProcessor), nil)

	month, year := 12, 2024
	_, _, err := svc.ListTransactions(context.Background(), uuid.Must(uuid.NewV4()), TransactionQuery{Month: &month, Year: &year}, nil)

	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestListTransactions_StorageError(t *testing.T) {
	store := newMemStore()
	store.transactionErr = errStoreDown
	svc := NewTransactionService(store.transactionStore(), new(mockProcessor), nil)

	txs, nextCursor, err := svc.ListTransactions(context.Background(), uuid.Must(uuid.NewV4()), TransactionQuery{}, nil)

	assert.ErrorIs(t, err, errStoreDown)
	assert.Nil(t, txs)
	assert.Nil(t, nextCursor)
}

// -- Receipt and delete --

func TestUpdateReceipt(t *testing.T) {
	processor := new(mockProcessor)
	svc := NewTransactionService(newMemStore().transactionStore(), processor, nil)
	userID, id := uuid.Must(uuid.NewV4()), uuid.Must(uuid.NewV4())

	processor.On("Process", mock.Anything, &actions.UpdateReceipt{UserID: userID, ID: id, ReceiptURL: "https://r/1.png"}).
		Return(nil)

	assert.NoError(t, svc.UpdateReceipt(context.Background(), userID, id, "https://r/1.png"))
	processor.AssertExpectations(t)
}

func TestDeleteTransaction_NotFound(t *testing.T) {
	processor := new(mockProcessor)
	svc := NewTransactionService(newMemStore().transactionStore(), processor, nil)
	processor.On("Process", mock.Anything, mock.AnythingOfType("*actions.DeleteTransaction")).Return(actions.ErrNotFound)

	err := svc.DeleteTransaction(context.Background(), uuid.Must(uuid.NewV4()), uuid.Must(uuid.NewV4()))

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetTransaction(t *testing.T) {
	store := newMemStore()
	userID := uuid.Must(uuid.NewV4())
	tx := store.addTransaction(userID, transaction.TypeExpense, "Food", "5", march(1))
	svc := NewTransactionService(store.transactionStore(), new(mockProcessor), nil)

	found, err := svc.GetTransaction(context.Background(), userID, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, tx.ID, found.ID)

	_, err = svc.GetTransaction(context.Background(), uuid.Must(uuid.NewV4()), tx.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
