package notifier

import (
	"context"
	"log"
	"time"

	"gigboard/internal/repository"
)

// RetentionSweeper deletes notifications past their retention window, the
// Postgres counterpart of a storage-level TTL. Read state is irrelevant.
type RetentionSweeper struct {
	notifications repository.NotificationRepository
	maxAge        time.Duration
	interval      time.Duration
	logger        *log.Logger

	done chan struct{}
}

const (
	defaultRetention     = 7 * 24 * time.Hour
	defaultSweepInterval = time.Hour
)

func NewRetentionSweeper(notifications repository.NotificationRepository, logger *log.Logger) *RetentionSweeper {
	if logger == nil {
		logger = log.Default()
	}
	return &RetentionSweeper{
		notifications: notifications,
		maxAge:        defaultRetention,
		interval:      defaultSweepInterval,
		logger:        logger,
		done:          make(chan struct{}),
	}
}

func (s *RetentionSweeper) Start() {
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.sweep()
		for {
			select {
			case <-ticker.C:
				s.sweep()
			case <-s.done:
				return
			}
		}
	}()
}

func (s *RetentionSweeper) Stop() {
	close(s.done)
}

func (s *RetentionSweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cutoff := time.Now().Add(-s.maxAge)
	deleted, err := s.notifications.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		s.logger.Printf("notifier: retention sweep failed | error=%v", err)
		return
	}
	if deleted > 0 {
		s.logger.Printf("notifier: retention sweep | deleted=%d cutoff=%s", deleted, cutoff.UTC().Format(time.RFC3339))
	}
}
