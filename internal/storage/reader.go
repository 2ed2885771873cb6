package storage

import (
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/budget-tracker/internal/storage/budget"
	"github.com/carson-networks/budget-tracker/internal/storage/category"
	"github.com/carson-networks/budget-tracker/internal/storage/notification"
	"github.com/carson-networks/budget-tracker/internal/storage/transaction"
)

type Reader struct {
	Budgets       *budget.Reader
	Categories    *category.Reader
	Notifications *notification.Reader
	Transactions  *transaction.Reader
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{
		Budgets:       budget.NewReader(exec),
		Categories:    category.NewReader(exec),
		Notifications: notification.NewReader(exec),
		Transactions:  transaction.NewReader(exec),
	}
}
