package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-tracker/internal/storage"
	"github.com/carson-networks/budget-tracker/internal/storage/transaction"
)

type CreateTransaction struct {
	Create *transaction.TransactionCreate

	Result *transaction.Transaction
}

func (t *CreateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	created, err := writer.Transaction.Insert(ctx, t.Create)
	if err != nil {
		return err
	}
	t.Result = created
	return nil
}

// UpdateReceipt attaches a receipt URL to an existing transaction.
type UpdateReceipt struct {
	UserID     uuid.UUID
	ID         uuid.UUID
	ReceiptURL string
}

func (t *UpdateReceipt) Perform(ctx context.Context, writer *storage.Writer) error {
	found, err := writer.Transaction.UpdateReceipt(ctx, t.UserID, t.ID, t.ReceiptURL)
	if err != nil {
		return err
	}
	if !found {
		return ErrNotFound
	}
	return nil
}

type DeleteTransaction struct {
	UserID uuid.UUID
	ID     uuid.UUID
}

func (t *DeleteTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	found, err := writer.Transaction.Delete(ctx, t.UserID, t.ID)
	if err != nil {
		return err
	}
	if !found {
		return ErrNotFound
	}
	return nil
}
