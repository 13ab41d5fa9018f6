package dto

import (
	"time"

	"gigboard/internal/repository"
	"gigboard/internal/usecase"

	"github.com/google/uuid"
)

type NotificationResponse struct {
	ID        uuid.UUID `json:"id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Link      string    `json:"link"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

func FromNotification(n repository.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		Type:      n.Type,
		Message:   n.Message,
		Link:      n.Link,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}

type NotificationFeedResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	UnreadCount   int                    `json:"unread_count"`
}

func FromNotificationFeed(f usecase.NotificationFeed) NotificationFeedResponse {
	out := NotificationFeedResponse{
		Notifications: make([]NotificationResponse, 0, len(f.Notifications)),
		UnreadCount:   f.UnreadCount,
	}
	for _, n := range f.Notifications {
		out.Notifications = append(out.Notifications, FromNotification(n))
	}
	return out
}
