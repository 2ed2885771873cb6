package storage

import (
	"context"

	"github.com/stephenafamo/bob"

	"github.com/carson-networks/budget-tracker/internal/storage/budget"
	"github.com/carson-networks/budget-tracker/internal/storage/category"
	"github.com/carson-networks/budget-tracker/internal/storage/notification"
	"github.com/carson-networks/budget-tracker/internal/storage/transaction"
)

type Writer struct {
	tx           bob.Tx
	Budget       *budget.Writer
	Category     *category.Writer
	Notification *notification.Writer
	Transaction  *transaction.Writer
}

func NewWriter(tx bob.Tx) Writer {
	return Writer{
		tx:           tx,
		Budget:       budget.NewWriter(tx),
		Category:     category.NewWriter(tx),
		Notification: notification.NewWriter(tx),
		Transaction:  transaction.NewWriter(tx),
	}
}

func (w *Writer) Commit() error {
	return w.tx.Commit(context.Background())
}

func (w *Writer) Rollback() error {
	return w.tx.Rollback(context.Background())
}
