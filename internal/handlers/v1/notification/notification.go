package notification

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-tracker/internal/handlers/v1/request"
	storagenotification "github.com/carson-networks/budget-tracker/internal/storage/notification"
)

// Notification is the API response model for a notification.
type Notification struct {
	ID        string `json:"id" doc:"Notification UUID"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Type      string `json:"type" doc:"info, warning or budget"`
	IsRead    bool   `json:"isRead"`
	CreatedAt string `json:"createdAt"`
}

type ListNotificationsInput struct {
	request.UserHeader
	UnreadOnly bool `query:"unreadOnly" doc:"Only unread notifications"`
	Limit      int  `query:"limit" minimum:"0" maximum:"100" doc:"Page size, defaults to 20"`
	Offset     int  `query:"offset" minimum:"0"`
}

type ListNotificationsOutput struct {
	Body struct {
		Notifications []Notification `json:"notifications"`
	}
}

type UnreadCountInput struct {
	request.UserHeader
}

type UnreadCountOutput struct {
	Body struct {
		Count int64 `json:"count"`
	}
}

type NotificationIDInput struct {
	request.UserHeader
	ID string `path:"id" format:"uuid" doc:"Notification UUID"`
}

type MarkAllReadOutput struct {
	Body struct {
		Updated int64 `json:"updated"`
	}
}

type notificationService interface {
	ListNotifications(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit, offset int) ([]*storagenotification.Notification, error)
	UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
	MarkRead(ctx context.Context, userID, id uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error)
	DeleteNotification(ctx context.Context, userID, id uuid.UUID) error
}

type Handler struct {
	NotificationService notificationService
}

func NewHandler(svc notificationService) *Handler {
	return &Handler{NotificationService: svc}
}

func (h *Handler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-notifications",
		Method:      http.MethodGet,
		Path:        "/v1/notifications",
		Summary:     "List notifications",
		Description: "Returns notifications newest first.",
		Tags:        []string{"Notifications"},
	}, h.list)

	huma.Register(api, huma.Operation{
		OperationID: "unread-notification-count",
		Method:      http.MethodGet,
		Path:        "/v1/notifications/unread-count",
		Summary:     "Count unread notifications",
		Tags:        []string{"Notifications"},
	}, h.unreadCount)

	huma.Register(api, huma.Operation{
		OperationID:   "mark-notification-read",
		Method:        http.MethodPost,
		Path:          "/v1/notification/{id}/read",
		Summary:       "Mark notification read",
		Tags:          []string{"Notifications"},
		DefaultStatus: http.StatusNoContent,
	}, h.markRead)

	huma.Register(api, huma.Operation{
		OperationID: "mark-all-notifications-read",
		Method:      http.MethodPost,
		Path:        "/v1/notifications/read",
		Summary:     "Mark all notifications read",
		Tags:        []string{"Notifications"},
	}, h.markAllRead)

	huma.Register(api, huma.Operation{
		OperationID:   "delete-notification",
		Method:        http.MethodDelete,
		Path:          "/v1/notification/{id}",
		Summary:       "Delete notification",
		Tags:          []string{"Notifications"},
		DefaultStatus: http.StatusNoContent,
	}, h.delete)
}

func (h *Handler) list(ctx context.Context, input *ListNotificationsInput) (*ListNotificationsOutput, error) {
	userID, err := input.User()
	if err != nil {
		return nil, err
	}

	notifications, err := h.NotificationService.ListNotifications(ctx, userID, input.UnreadOnly, input.Limit, input.Offset)
	if err != nil {
		return nil, request.ServiceError(err, "failed to list notifications")
	}

	out := &ListNotificationsOutput{}
	out.Body.Notifications = make([]Notification, len(notifications))
	for i, n := range notifications {
		out.Body.Notifications[i] = Notification{
			ID:        n.ID.String(),
			Title:     n.Title,
			Message:   n.Message,
			Type:      string(n.Type),
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt.Format(time.RFC3339),
		}
	}
	return out, nil
}

func (h *Handler) unreadCount(ctx context.Context, input *UnreadCountInput) (*UnreadCountOutput, error) {
	userID, err := input.User()
	if err != nil {
		return nil, err
	}

	count, err := h.NotificationService.UnreadCount(ctx, userID)
	if err != nil {
		return nil, request.ServiceError(err, "failed to count notifications")
	}

	out := &UnreadCountOutput{}
	out.Body.Count = count
	return out, nil
}

func (h *Handler) markRead(ctx context.Context, input *NotificationIDInput) (*struct{}, error) {
	userID, err := input.User()
	if err != nil {
		return nil, err
	}
	id, err := request.ParseID("id", input.ID)
	if err != nil {
		return nil, err
	}

	if err := h.NotificationService.MarkRead(ctx, userID, id); err != nil {
		return nil, request.ServiceError(err, "failed to mark notification read")
	}
	return nil, nil
}

func (h *Handler) markAllRead(ctx context.Context, input *UnreadCountInput) (*MarkAllReadOutput, error) {
	userID, err := input.User()
	if err != nil {
		return nil, err
	}

	updated, err := h.NotificationService.MarkAllRead(ctx, userID)
	if err != nil {
		return nil, request.ServiceError(err, "failed to mark notifications read")
	}

	out := &MarkAllReadOutput{}
	out.Body.Updated = updated
	return out, nil
}

func (h *Handler) delete(ctx context.Context, input *NotificationIDInput) (*struct{}, error) {
	userID, err := input.User()
	if err != nil {
		return nil, err
	}
	id, err := request.ParseID("id", input.ID)
	if err != nil {
		return nil, err
	}

	if err := h.NotificationService.DeleteNotification(ctx, userID, id); err != nil {
		return nil, request.ServiceError(err, "failed to delete notification")
	}
	return nil, nil
}
