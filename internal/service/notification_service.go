package service

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-tracker/internal/operator/actions"
	"github.com/carson-networks/budget-tracker/internal/storage/notification"
)

type NotificationService struct {
	notifications NotificationReader
	processor     actionProcessor
}

func NewNotificationService(notifications NotificationReader, processor actionProcessor) *NotificationService {
	return &NotificationService{notifications: notifications, processor: processor}
}

func (s *NotificationService) ListNotifications(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit, offset int) ([]*notification.Notification, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	return s.notifications.List(ctx, &notification.NotificationFilter{
		UserID:     userID,
		UnreadOnly: unreadOnly,
		Limit:      min(limit, maxLimit),
		Offset:     max(offset, 0),
	})
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.notifications.CountUnread(ctx, userID)
}

func (s *NotificationService) MarkRead(ctx context.Context, userID, id uuid.UUID) error {
	return s.processor.Process(ctx, &actions.MarkNotificationRead{UserID: userID, ID: id})
}

// MarkAllRead returns how many notifications changed.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	action := &actions.MarkAllNotificationsRead{UserID: userID}
	if err := s.processor.Process(ctx, action); err != nil {
		return 0, err
	}
	return action.Updated, nil
}

func (s *NotificationService) DeleteNotification(ctx context.Context, userID, id uuid.UUID) error {
	return s.processor.Process(ctx, &actions.DeleteNotification{UserID: userID, ID: id})
}
