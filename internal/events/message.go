package events

import (
	"encoding/json"
	"time"

	"github.com/carson-networks/budget-tracker/internal/storage/notification"
)

// NotificationMessage is the payload published for every stored notification.
type NotificationMessage struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userID"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewNotificationMessage(n *notification.Notification) *NotificationMessage {
	return &NotificationMessage{
		ID:        n.ID.String(),
		UserID:    n.UserID.String(),
		Title:     n.Title,
		Message:   n.Message,
		Type:      string(n.Type),
		CreatedAt: n.CreatedAt,
	}
}

func (m *NotificationMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// RoutingKey is "notification.<type>" so consumers can bind per type.
func (m *NotificationMessage) RoutingKey() string {
	return "notification." + m.Type
}
