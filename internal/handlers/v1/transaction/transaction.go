package transaction

import (
	"time"

	"github.com/carson-networks/budget-tracker/internal/service"
)

// Transaction is the API response model for a transaction.
// It is used only for responses, not for request bodies.
type Transaction struct {
	ID              string `json:"id" doc:"Transaction UUID"`
	Type            string `json:"type" doc:"income or expense"`
	Amount          string `json:"amount" doc:"Decimal amount"`
	Category        string `json:"category" doc:"Category name or category UUID"`
	Description     string `json:"description,omitempty" doc:"Free text description"`
	TransactionDate string `json:"transactionDate" doc:"RFC3339 transaction date"`
	ReceiptURL      string `json:"receiptURL,omitempty" doc:"Receipt location"`
	CreatedAt       string `json:"createdAt" doc:"RFC3339 creation time"`
}

func fromService(tx service.Transaction) Transaction {
	return Transaction{
		ID:              tx.ID.String(),
		Type:            string(tx.Type),
		Amount:          tx.Amount.String(),
		Category:        tx.Category,
		Description:     tx.Description,
		TransactionDate: tx.TransactionDate.Format(time.RFC3339),
		ReceiptURL:      tx.ReceiptURL,
		CreatedAt:       tx.CreatedAt.Format(time.RFC3339),
	}
}
