package usecase

import (
	"context"
	"errors"

	"gigboard/internal/repository"

	"github.com/google/uuid"
)

const notificationPageSize = 20

type NotificationFeed struct {
	Notifications []repository.Notification
	UnreadCount   int
}

type NotificationUsecase interface {
	Feed(ctx context.Context, recipientID uuid.UUID) (NotificationFeed, error)
	MarkRead(ctx context.Context, recipientID, notificationID uuid.UUID) (bool, error)
}

type NotificationService struct {
	notifications repository.NotificationRepository
}

func NewNotificationUsecase(notifications repository.NotificationRepository) *NotificationService {
	return &NotificationService{notifications: notifications}
}

func (u *NotificationService) Feed(ctx context.Context, recipientID uuid.UUID) (NotificationFeed, error) {
	list, err := u.notifications.ListByRecipient(ctx, recipientID, notificationPageSize)
	if err != nil {
		return NotificationFeed{}, ErrInternal
	}

	unread, err := u.notifications.CountUnread(ctx, recipientID)
	if err != nil {
		return NotificationFeed{}, ErrInternal
	}

	return NotificationFeed{Notifications: list, UnreadCount: unread}, nil
}

// MarkRead reports whether the notification transitioned to read. Marking an
// already-read or unknown notification is not an error.
func (u *NotificationService) MarkRead(ctx context.Context, recipientID, notificationID uuid.UUID) (bool, error) {
	_, err := u.notifications.MarkRead(ctx, notificationID, recipientID)
	if err != nil {
		if errors.Is(err, repository.ErrNotificationNotFound) {
			return false, nil
		}
		return false, ErrInternal
	}
	return true, nil
}
