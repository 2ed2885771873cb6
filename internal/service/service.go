package service

import (
	"github.com/carson-networks/budget-tracker/internal/storage"
)

// Service holds all business logic services.
type Service struct {
	Transaction  *TransactionService
	Budget       *BudgetService
	Category     *CategoryService
	Notification *NotificationService
	Aggregator   *BudgetAggregator
	Notifier     *BudgetNotifier
}

// NewService wires the services over storage reads and operator writes.
// publisher may be nil.
func NewService(store *storage.Storage, processor actionProcessor, publisher NotificationPublisher) *Service {
	reader := store.Reader
	aggregator := NewBudgetAggregator(reader.Budgets, reader.Transactions, reader.Categories)
	notifier := NewBudgetNotifier(aggregator, reader.Categories, operatorNotificationStore{processor: processor}, publisher)

	return &Service{
		Transaction:  NewTransactionService(reader.Transactions, processor, notifier),
		Budget:       NewBudgetService(reader.Budgets, aggregator, processor),
		Category:     NewCategoryService(reader.Categories, processor),
		Notification: NewNotificationService(reader.Notifications, processor),
		Aggregator:   aggregator,
		Notifier:     notifier,
	}
}
