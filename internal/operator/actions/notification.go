package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-tracker/internal/storage"
	"github.com/carson-networks/budget-tracker/internal/storage/notification"
)

// InsertNotifications stores a batch of notifications in one statement.
type InsertNotifications struct {
	Creates []*notification.NotificationCreate

	Result []*notification.Notification
}

func (n *InsertNotifications) Perform(ctx context.Context, writer *storage.Writer) error {
	created, err := writer.Notification.InsertMany(ctx, n.Creates)
	if err != nil {
		return err
	}
	n.Result = created
	return nil
}

type MarkNotificationRead struct {
	UserID uuid.UUID
	ID     uuid.UUID
}

func (n *MarkNotificationRead) Perform(ctx context.Context, writer *storage.Writer) error {
	found, err := writer.Notification.MarkRead(ctx, n.UserID, n.ID)
	if err != nil {
		return err
	}
	if !found {
		return ErrNotFound
	}
	return nil
}

type MarkAllNotificationsRead struct {
	UserID uuid.UUID

	Updated int64
}

func (n *MarkAllNotificationsRead) Perform(ctx context.Context, writer *storage.Writer) error {
	updated, err := writer.Notification.MarkAllRead(ctx, n.UserID)
	if err != nil {
		return err
	}
	n.Updated = updated
	return nil
}

type DeleteNotification struct {
	UserID uuid.UUID
	ID     uuid.UUID
}

func (n *DeleteNotification) Perform(ctx context.Context, writer *storage.Writer) error {
	found, err := writer.Notification.Delete(ctx, n.UserID, n.ID)
	if err != nil {
		return err
	}
	if !found {
		return ErrNotFound
	}
	return nil
}
