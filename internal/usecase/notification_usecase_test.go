package usecase

import (
	"context"
	"testing"

	"gigboard/internal/repository"

	"github.com/google/uuid"
)

func TestNotificationFeedCountsUnread(t *testing.T) {
	repo := newMockNotificationRepo()
	svc := NewNotificationUsecase(repo)
	ctx := context.Background()
	recipientID := uuid.New()

	for i := 0; i < 3; i++ {
		if err := repo.Insert(ctx, repository.Notification{
			ID: uuid.New(), RecipientID: recipientID,
			Type: repository.NotificationTypeNewJobOpen, Message: "hi",
		}); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	feed, err := svc.Feed(ctx, recipientID)
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	if len(feed.Notifications) != 3 || feed.UnreadCount != 3 {
		t.Fatalf("feed: got %d items, %d unread", len(feed.Notifications), feed.UnreadCount)
	}
}

func TestMarkReadIsIdempotent(t *testing.T) {
	repo := newMockNotificationRepo()
	svc := NewNotificationUsecase(repo)
	ctx := context.Background()
	recipientID := uuid.New()

	n := repository.Notification{ID: uuid.New(), RecipientID: recipientID, Type: repository.NotificationTypeNewJobOpen}
	if err := repo.Insert(ctx, n); err != nil {
		t.Fatalf("seed: %v", err)
	}

	updated, err := svc.MarkRead(ctx, recipientID, n.ID)
	if err != nil || !updated {
		t.Fatalf("first mark: updated=%v err=%v", updated, err)
	}

	// already read and unknown ids both succeed without updating
	updated, err = svc.MarkRead(ctx, recipientID, n.ID)
	if err != nil || updated {
		t.Fatalf("second mark: updated=%v err=%v", updated, err)
	}
	updated, err = svc.MarkRead(ctx, recipientID, uuid.New())
	if err != nil || updated {
		t.Fatalf("unknown id: updated=%v err=%v", updated, err)
	}
}

func TestMarkReadScopedToRecipient(t *testing.T) {
	repo := newMockNotificationRepo()
	svc := NewNotificationUsecase(repo)
	ctx := context.Background()

	owner := uuid.New()
	n := repository.Notification{ID: uuid.New(), RecipientID: owner, Type: repository.NotificationTypeNewJobOpen}
	if err := repo.Insert(ctx, n); err != nil {
		t.Fatalf("seed: %v", err)
	}

	updated, err := svc.MarkRead(ctx, uuid.New(), n.ID)
	if err != nil || updated {
		t.Fatalf("other recipient must not mark: updated=%v err=%v", updated, err)
	}

	feed, err := svc.Feed(ctx, owner)
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	if feed.UnreadCount != 1 {
		t.Fatalf("notification leaked a read flag: %d unread", feed.UnreadCount)
	}
}
