package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"gigboard/internal/domain/user"
	"gigboard/internal/repository"

	"github.com/google/uuid"
)

// Pusher delivers a stored notification to a live recipient. Implemented by
// the websocket hub; delivery is best-effort.
type Pusher interface {
	Push(recipientID uuid.UUID, payload []byte)
}

// Broadcaster runs notification side effects off the request path. Triggers
// enqueue a task onto a buffered channel drained by a single worker; a full
// queue or a failed write is logged and dropped, never surfaced to the
// triggering request.
type Broadcaster struct {
	users         user.Repository
	jobs          repository.JobRepository
	notifications repository.NotificationRepository
	push          Pusher
	logger        *log.Logger
	sent          SentCounter

	tasks chan func(ctx context.Context)
	done  chan struct{}
}

// SentCounter is satisfied by a prometheus counter.
type SentCounter interface {
	Add(float64)
}

const (
	taskQueueSize = 256
	taskTimeout   = 30 * time.Second
)

func NewBroadcaster(
	users user.Repository,
	jobs repository.JobRepository,
	notifications repository.NotificationRepository,
	push Pusher,
	logger *log.Logger,
) *Broadcaster {
	if logger == nil {
		logger = log.Default()
	}
	return &Broadcaster{
		users:         users,
		jobs:          jobs,
		notifications: notifications,
		push:          push,
		logger:        logger,
		tasks:         make(chan func(ctx context.Context), taskQueueSize),
		done:          make(chan struct{}),
	}
}

// WithSentCounter records every persisted notification; call before Start.
func (b *Broadcaster) WithSentCounter(c SentCounter) *Broadcaster {
	b.sent = c
	return b
}

func (b *Broadcaster) Start() {
	go func() {
		for {
			select {
			case task := <-b.tasks:
				ctx, cancel := context.WithTimeout(context.Background(), taskTimeout)
				task(ctx)
				cancel()
			case <-b.done:
				return
			}
		}
	}()
}

func (b *Broadcaster) Stop() {
	close(b.done)
}

func (b *Broadcaster) enqueue(task func(ctx context.Context)) {
	select {
	case b.tasks <- task:
	default:
		b.logger.Printf("notifier: task dropped | reason=queue_full")
	}
}

// JobOpened fans a NEW_JOB_OPEN notification out to every freelancer.
// One bulk insert, no chunking; failure loses the whole broadcast.
func (b *Broadcaster) JobOpened(jobID uuid.UUID, jobTitle string) {
	b.enqueue(func(ctx context.Context) {
		recipients, err := b.users.ListIDsByRole(ctx, user.RoleFreelancer)
		if err != nil {
			b.logger.Printf("notifier: list freelancers failed | job_id=%s error=%v", jobID, err)
			return
		}
		if len(recipients) == 0 {
			b.logger.Printf("notifier: no freelancers to notify | job_id=%s", jobID)
			return
		}

		ns := make([]repository.Notification, 0, len(recipients))
		for _, rid := range recipients {
			ns = append(ns, repository.Notification{
				ID:          uuid.New(),
				RecipientID: rid,
				Type:        repository.NotificationTypeNewJobOpen,
				Message:     fmt.Sprintf("New job posted %s is now open for applications!", jobTitle),
				Link:        fmt.Sprintf("/find-work/job-details/%s", jobID),
			})
		}

		if err := b.notifications.BulkInsert(ctx, ns); err != nil {
			b.logger.Printf("notifier: broadcast insert failed | job_id=%s recipients=%d error=%v", jobID, len(ns), err)
			return
		}

		if b.sent != nil {
			b.sent.Add(float64(len(ns)))
		}
		b.pushAll(ns)
		b.logger.Printf("notifier: job broadcast sent | job_id=%s recipients=%d", jobID, len(ns))
	})
}

// ApplicationDecided notifies one freelancer that their application was
// accepted or rejected.
func (b *Broadcaster) ApplicationDecided(freelancerID, clientID, jobID, applicationID uuid.UUID, status string) {
	b.enqueue(func(ctx context.Context) {
		title, err := b.jobs.TitleByID(ctx, jobID)
		if err != nil {
			b.logger.Printf("notifier: job lookup failed | job_id=%s error=%v", jobID, err)
			return
		}

		var message string
		if status == repository.ApplicationStatusAccepted {
			message = fmt.Sprintf("Congratulations! Your application for %q has been accepted.", title)
		} else {
			message = fmt.Sprintf("Your application for %q has been rejected.", title)
		}

		sender := clientID
		n := repository.Notification{
			ID:          uuid.New(),
			RecipientID: freelancerID,
			SenderID:    &sender,
			Type:        repository.NotificationTypeApplicationStatus,
			Message:     message,
			Link:        fmt.Sprintf("/freelancer-dashboard/applications/%s", applicationID),
		}

		if err := b.notifications.Insert(ctx, n); err != nil {
			b.logger.Printf("notifier: status notification failed | application_id=%s error=%v", applicationID, err)
			return
		}

		if b.sent != nil {
			b.sent.Add(1)
		}
		b.pushAll([]repository.Notification{n})
		b.logger.Printf("notifier: status notification sent | recipient=%s status=%s", freelancerID, status)
	})
}

func (b *Broadcaster) pushAll(ns []repository.Notification) {
	if b.push == nil {
		return
	}
	for _, n := range ns {
		payload, err := json.Marshal(map[string]any{
			"id":      n.ID,
			"type":    n.Type,
			"message": n.Message,
			"link":    n.Link,
		})
		if err != nil {
			continue
		}
		b.push.Push(n.RecipientID, payload)
	}
}
