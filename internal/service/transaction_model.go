package service

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-tracker/internal/storage/transaction"
)

// Transaction represents a transaction in the service layer.
type Transaction struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	Type            transaction.Type
	Amount          decimal.Decimal
	Category        string
	Description     string
	TransactionDate time.Time
	ReceiptURL      string
	CreatedAt       time.Time
}

// TransactionCursor identifies a position in a paginated result set
// and carries the limit and maxCreationTime so subsequent pages are consistent.
type TransactionCursor struct {
	Position        int
	Limit           int
	MaxCreationTime time.Time
}

// TransactionQuery narrows a transaction listing. Month and Year apply together.
type TransactionQuery struct {
	Type  *transaction.Type
	Month *int
	Year  *int
}

func transactionFromStorage(row *transaction.Transaction) Transaction {
	return Transaction{
		ID:              row.ID,
		UserID:          row.UserID,
		Type:            row.Type,
		Amount:          row.Amount,
		Category:        row.Category,
		Description:     row.Description,
		TransactionDate: row.TransactionDate,
		ReceiptURL:      row.ReceiptURL,
		CreatedAt:       row.CreatedAt,
	}
}
