package service

import (
	"context"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-tracker/internal/logging"
	"github.com/carson-networks/budget-tracker/internal/operator/actions"
	"github.com/carson-networks/budget-tracker/internal/storage/transaction"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

type budgetChecker interface {
	CheckBudgetExceeded(ctx context.Context, userID uuid.UUID, amount decimal.Decimal, categoryName string, transactionDate time.Time) CheckResult
}

// TransactionService handles transaction business logic.
type TransactionService struct {
	transactions TransactionStore
	processor    actionProcessor
	checker      budgetChecker
}

// NewTransactionService creates a new TransactionService. checker may be nil.
func NewTransactionService(transactions TransactionStore, processor actionProcessor, checker budgetChecker) *TransactionService {
	return &TransactionService{
		transactions: transactions,
		processor:    processor,
		checker:      checker,
	}
}

// CreateTransaction stores the transaction and then runs the budget check for
// expenses. The check never fails the request.
func (s *TransactionService) CreateTransaction(ctx context.Context, tx Transaction) (*Transaction, error) {
	tx.Category = strings.TrimSpace(tx.Category)
	if !tx.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if !tx.Type.Valid() {
		return nil, ErrInvalidType
	}
	if tx.Category == "" {
		return nil, ErrInvalidCategory
	}

	action := &actions.CreateTransaction{
		Create: &transaction.TransactionCreate{
			UserID:          tx.UserID,
			Type:            tx.Type,
			Amount:          tx.Amount,
			Category:        tx.Category,
			Description:     tx.Description,
			TransactionDate: tx.TransactionDate,
		},
	}
	if err := s.processor.Process(ctx, action); err != nil {
		return nil, err
	}
	created := transactionFromStorage(action.Result)

	if created.Type == transaction.TypeExpense && s.checker != nil {
		result := s.checker.CheckBudgetExceeded(ctx, created.UserID, created.Amount, created.Category, created.TransactionDate)
		if logData := logging.GetLogData(ctx); logData != nil {
			logData.AddData("budgetCheck", result.Status.String())
			logData.AddData("budgetNotifications", len(result.Notifications))
		}
	}

	return &created, nil
}

// ListTransactions returns a page of transactions using cursor-based pagination.
func (s *TransactionService) ListTransactions(ctx context.Context, userID uuid.UUID, query TransactionQuery, cursor *TransactionCursor) ([]Transaction, *TransactionCursor, error) {
	limit := defaultLimit
	offset := 0
	var maxCreationTime *time.Time
	if cursor != nil {
		if cursor.Limit > 0 {
			limit = min(cursor.Limit, maxLimit)
		}
		offset = cursor.Position
		maxCreationTime = &cursor.MaxCreationTime
	}

	filter := &transaction.TransactionFilter{
		UserID:          userID,
		Type:            query.Type,
		Limit:           limit + 1,
		Offset:          offset,
		MaxCreationTime: maxCreationTime,
	}
	if query.Month != nil && query.Year != nil {
		if err := validatePeriod(*query.Month, *query.Year); err != nil {
			return nil, nil, err
		}
		start, end := MonthWindow(*query.Month, *query.Year)
		filter.DateFrom = &start
		filter.DateTo = &end
	}

	rows, err := s.transactions.Find(ctx, filter)
	if err != nil {
		return nil, nil, err
	}

	if len(rows) == 0 {
		return nil, nil, nil
	}

	var nextCursor *TransactionCursor
	if len(rows) > limit {
		rows = rows[:limit]

		cursorMaxCreationTime := rows[0].CreatedAt
		if maxCreationTime != nil {
			cursorMaxCreationTime = *maxCreationTime
		}

		nextCursor = &TransactionCursor{
			Position:        offset + limit,
			Limit:           limit,
			MaxCreationTime: cursorMaxCreationTime,
		}
	}

	convertedTransactions := make([]Transaction, len(rows))
	for i, row := range rows {
		convertedTransactions[i] = transactionFromStorage(row)
	}

	return convertedTransactions, nextCursor, nil
}

// GetTransaction returns ErrNotFound when the user has no such transaction.
func (s *TransactionService) GetTransaction(ctx context.Context, userID, id uuid.UUID) (*Transaction, error) {
	row, err := s.transactions.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ErrNotFound
	}
	tx := transactionFromStorage(row)
	return &tx, nil
}

// UpdateReceipt sets the receipt URL, the only mutable field of a transaction.
func (s *TransactionService) UpdateReceipt(ctx context.Context, userID, id uuid.UUID, receiptURL string) error {
	return s.processor.Process(ctx, &actions.UpdateReceipt{UserID: userID, ID: id, ReceiptURL: receiptURL})
}

func (s *TransactionService) DeleteTransaction(ctx context.Context, userID, id uuid.UUID) error {
	return s.processor.Process(ctx, &actions.DeleteTransaction{UserID: userID, ID: id})
}
