package service

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-tracker/internal/operator/actions"
	"github.com/carson-networks/budget-tracker/internal/storage/budget"
	"github.com/carson-networks/budget-tracker/internal/storage/category"
	"github.com/carson-networks/budget-tracker/internal/storage/notification"
	"github.com/carson-networks/budget-tracker/internal/storage/transaction"
)

// TransactionStore finds transactions by user, type and date window.
type TransactionStore interface {
	FindByID(ctx context.Context, userID, id uuid.UUID) (*transaction.Transaction, error)
	Find(ctx context.Context, filter *transaction.TransactionFilter) ([]*transaction.Transaction, error)
}

// BudgetStore looks up the single budget of a user and month.
type BudgetStore interface {
	FindOne(ctx context.Context, userID uuid.UUID, month, year int) (*budget.Budget, error)
}

// CategoryStore resolves category IDs and names.
type CategoryStore interface {
	category.Finder
	List(ctx context.Context, userID uuid.UUID) ([]*category.Category, error)
}

// NotificationStore persists a batch of notifications.
type NotificationStore interface {
	InsertMany(ctx context.Context, creates []*notification.NotificationCreate) ([]*notification.Notification, error)
}

// NotificationReader reads a user's notifications.
type NotificationReader interface {
	List(ctx context.Context, filter *notification.NotificationFilter) ([]*notification.Notification, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)
}

// NotificationPublisher fans created notifications out to other systems.
type NotificationPublisher interface {
	PublishNotifications(ctx context.Context, notifications []*notification.Notification) error
}

// actionProcessor runs write actions, implemented by operator.OperatorDelegator.
type actionProcessor interface {
	Process(ctx context.Context, action actions.IAction) error
}

// operatorNotificationStore writes notifications through the operator queue.
type operatorNotificationStore struct {
	processor actionProcessor
}

func (s operatorNotificationStore) InsertMany(ctx context.Context, creates []*notification.NotificationCreate) ([]*notification.Notification, error) {
	action := &actions.InsertNotifications{Creates: creates}
	if err := s.processor.Process(ctx, action); err != nil {
		return nil, err
	}
	return action.Result, nil
}
