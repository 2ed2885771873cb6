package transaction

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

const tableName = "transactions"

var columns = []any{
	"id", "user_id", "type", "amount", "category", "description", "transaction_date", "receipt_url", "created_at",
}

type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

func (t Type) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Transaction represents a transaction record.
type Transaction struct {
	ID              uuid.UUID       `db:"id"`
	UserID          uuid.UUID       `db:"user_id"`
	Type            Type            `db:"type"`
	Amount          decimal.Decimal `db:"amount"`
	Category        string          `db:"category"`
	Description     string          `db:"description"`
	TransactionDate time.Time       `db:"transaction_date"`
	ReceiptURL      string          `db:"receipt_url"`
	CreatedAt       time.Time       `db:"created_at"`
}

// TransactionCreate is the input for creating a new transaction.
type TransactionCreate struct {
	UserID          uuid.UUID
	Type            Type
	Amount          decimal.Decimal
	Category        string
	Description     string
	TransactionDate time.Time // defaults to now if zero
}

// TransactionFilter specifies filters for finding transactions.
// DateFrom is inclusive and DateTo is exclusive.
type TransactionFilter struct {
	UserID          uuid.UUID
	Type            *Type
	DateFrom        *time.Time
	DateTo          *time.Time
	MaxCreationTime *time.Time
	Limit           int
	Offset          int
}

// ITransactionTable defines the read operations on transactions.
type ITransactionTable interface {
	FindByID(ctx context.Context, userID, id uuid.UUID) (*Transaction, error)
	Find(ctx context.Context, filter *TransactionFilter) ([]*Transaction, error)
}
