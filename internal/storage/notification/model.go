package notification

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
)

const tableName = "notifications"

var columns = []any{"id", "user_id", "title", "message", "type", "is_read", "created_at"}

type Type string

const (
	TypeInfo    Type = "info"
	TypeWarning Type = "warning"
	TypeBudget  Type = "budget"
)

// Notification is an append-only message shown to a user.
type Notification struct {
	ID        uuid.UUID `db:"id"`
	UserID    uuid.UUID `db:"user_id"`
	Title     string    `db:"title"`
	Message   string    `db:"message"`
	Type      Type      `db:"type"`
	IsRead    bool      `db:"is_read"`
	CreatedAt time.Time `db:"created_at"`
}

// NotificationCreate is the input for creating a notification.
type NotificationCreate struct {
	UserID  uuid.UUID
	Title   string
	Message string
	Type    Type
}

// NotificationFilter specifies filters for listing notifications.
type NotificationFilter struct {
	UserID     uuid.UUID
	UnreadOnly bool
	Limit      int
	Offset     int
}

// INotificationTable defines the read operations on notifications.
type INotificationTable interface {
	List(ctx context.Context, filter *NotificationFilter) ([]*Notification, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)
}
