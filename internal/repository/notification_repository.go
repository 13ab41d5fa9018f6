package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gigboard/internal/database"

	"github.com/google/uuid"
)

var ErrNotificationNotFound = errors.New("notification not found")

const (
	NotificationTypeNewJobOpen        = "NEW_JOB_OPEN"
	NotificationTypeApplicationStatus = "APPLICATION_STATUS"
	NotificationTypeMessage           = "MESSAGE"
)

type Notification struct {
	ID          uuid.UUID
	RecipientID uuid.UUID
	SenderID    *uuid.UUID
	Type        string
	Message     string
	Link        string
	Read        bool
	CreatedAt   time.Time
}

type NotificationRepository interface {
	Insert(ctx context.Context, n Notification) error
	BulkInsert(ctx context.Context, ns []Notification) error
	ListByRecipient(ctx context.Context, recipientID uuid.UUID, limit int) ([]Notification, error)
	CountUnread(ctx context.Context, recipientID uuid.UUID) (int, error)
	MarkRead(ctx context.Context, id, recipientID uuid.UUID) (Notification, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type PostgresNotificationRepository struct {
	db database.DB
}

func NewPostgresNotificationRepository(db database.DB) *PostgresNotificationRepository {
	return &PostgresNotificationRepository{db: db}
}

const notificationColumns = `id, recipient_id, sender_id, type, message, link, read, created_at`

func (r *PostgresNotificationRepository) Insert(ctx context.Context, n Notification) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO notifications (id, recipient_id, sender_id, type, message, link, read)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		n.ID, n.RecipientID, n.SenderID, n.Type, n.Message, n.Link, n.Read,
	)
	return err
}

// BulkInsert writes the whole batch in one statement. No chunking; a failed
// insert loses the entire batch, which callers treat as best-effort.
func (r *PostgresNotificationRepository) BulkInsert(ctx context.Context, ns []Notification) error {
	if len(ns) == 0 {
		return nil
	}

	placeholders := make([]string, 0, len(ns))
	args := make([]any, 0, len(ns)*7)
	for i, n := range ns {
		base := i * 7
		placeholders = append(placeholders, fmt.Sprintf(
			"($%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7,
		))
		args = append(args, n.ID, n.RecipientID, n.SenderID, n.Type, n.Message, n.Link, n.Read)
	}

	query := `INSERT INTO notifications (id, recipient_id, sender_id, type, message, link, read) VALUES ` +
		strings.Join(placeholders, ", ")

	_, err := r.db.Exec(ctx, query, args...)
	return err
}

func (r *PostgresNotificationRepository) ListByRecipient(ctx context.Context, recipientID uuid.UUID, limit int) ([]Notification, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+notificationColumns+`
		 FROM notifications
		 WHERE recipient_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		recipientID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Notification, 0)
	for rows.Next() {
		var n Notification
		if err := rows.Scan(&n.ID, &n.RecipientID, &n.SenderID, &n.Type, &n.Message, &n.Link, &n.Read, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r *PostgresNotificationRepository) CountUnread(ctx context.Context, recipientID uuid.UUID) (int, error) {
	var count int
	row := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM notifications WHERE recipient_id = $1 AND read = false`,
		recipientID,
	)
	if err := row.Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// MarkRead flips an unread notification owned by the recipient. Anything
// else (already read, missing, someone else's) reports ErrNotificationNotFound
// so callers can answer idempotently.
func (r *PostgresNotificationRepository) MarkRead(ctx context.Context, id, recipientID uuid.UUID) (Notification, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE notifications SET read = true
		 WHERE id = $1 AND recipient_id = $2 AND read = false
		 RETURNING `+notificationColumns,
		id, recipientID,
	)

	var n Notification
	err := row.Scan(&n.ID, &n.RecipientID, &n.SenderID, &n.Type, &n.Message, &n.Link, &n.Read, &n.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return Notification{}, ErrNotificationNotFound
		}
		return Notification{}, err
	}
	return n, nil
}

func (r *PostgresNotificationRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	return r.db.Exec(ctx, `DELETE FROM notifications WHERE created_at < $1`, cutoff)
}
