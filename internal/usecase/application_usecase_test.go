package usecase

import (
	"context"
	"errors"
	"testing"

	"gigboard/internal/repository"

	"github.com/google/uuid"
)

func openJob(t *testing.T, jobs *mockJobRepo, clientID uuid.UUID) repository.Job {
	t.Helper()
	j := repository.Job{
		ID:       uuid.New(),
		Title:    "Build API",
		ClientID: clientID,
		Status:   repository.JobStatusOpen,
	}
	if err := jobs.Create(context.Background(), j); err != nil {
		t.Fatalf("seed job: %v", err)
	}
	return j
}

func TestApplyHappyPathAndDuplicate(t *testing.T) {
	jobs := newMockJobRepo()
	apps := newMockApplicationRepo()
	svc := NewApplicationUsecase(apps, jobs, &mockNotifier{})
	ctx := context.Background()

	j := openJob(t, jobs, uuid.New())
	freelancerID := uuid.New()

	a, err := svc.Apply(ctx, freelancerID, ApplyInput{JobID: j.ID, CoverLetter: "I'm interested"})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if a.Status != repository.ApplicationStatusPending {
		t.Fatalf("new application status: got %q", a.Status)
	}

	if _, err := svc.Apply(ctx, freelancerID, ApplyInput{JobID: j.ID, CoverLetter: "again"}); !errors.Is(err, ErrAlreadyApplied) {
		t.Fatalf("second apply: want ErrAlreadyApplied, got %v", err)
	}
}

func TestApplyValidation(t *testing.T) {
	jobs := newMockJobRepo()
	apps := newMockApplicationRepo()
	svc := NewApplicationUsecase(apps, jobs, &mockNotifier{})
	ctx := context.Background()

	j := openJob(t, jobs, uuid.New())

	if _, err := svc.Apply(ctx, uuid.New(), ApplyInput{JobID: j.ID, CoverLetter: "  "}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("empty cover letter: want ErrInvalidInput, got %v", err)
	}
	if _, err := svc.Apply(ctx, uuid.New(), ApplyInput{JobID: uuid.New(), CoverLetter: "hi"}); !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("unknown job: want ErrJobNotFound, got %v", err)
	}
}

func TestApplyToClosedJobFails(t *testing.T) {
	jobs := newMockJobRepo()
	apps := newMockApplicationRepo()
	svc := NewApplicationUsecase(apps, jobs, &mockNotifier{})
	ctx := context.Background()

	j := repository.Job{ID: uuid.New(), Title: "Old", ClientID: uuid.New(), Status: repository.JobStatusClosed}
	if err := jobs.Create(ctx, j); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if _, err := svc.Apply(ctx, uuid.New(), ApplyInput{JobID: j.ID, CoverLetter: "hi"}); !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("closed job: want ErrJobNotFound, got %v", err)
	}
}

func TestSetStatusOwnershipAndNotification(t *testing.T) {
	jobs := newMockJobRepo()
	apps := newMockApplicationRepo()
	notifier := &mockNotifier{}
	svc := NewApplicationUsecase(apps, jobs, notifier)
	ctx := context.Background()

	clientID := uuid.New()
	j := openJob(t, jobs, clientID)
	freelancerID := uuid.New()

	a, err := svc.Apply(ctx, freelancerID, ApplyInput{JobID: j.ID, CoverLetter: "hi"})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	// the mock joins no job fields on create, patch them in
	d := apps.apps[a.ID]
	d.JobClientID = clientID
	d.JobTitle = j.Title
	apps.apps[a.ID] = d

	if _, err := svc.SetStatus(ctx, uuid.New(), a.ID, repository.ApplicationStatusAccepted); !errors.Is(err, ErrNotJobOwner) {
		t.Fatalf("stranger decision: want ErrNotJobOwner, got %v", err)
	}
	if len(notifier.decisions) != 0 {
		t.Fatalf("denied decision must not notify")
	}

	got, err := svc.SetStatus(ctx, clientID, a.ID, repository.ApplicationStatusAccepted)
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	if got.Status != repository.ApplicationStatusAccepted {
		t.Fatalf("status not updated: %q", got.Status)
	}
	if len(notifier.decisions) != 1 {
		t.Fatalf("accepted decision must notify once, got %d", len(notifier.decisions))
	}
	dec := notifier.decisions[0]
	if dec.freelancerID != freelancerID || dec.status != repository.ApplicationStatusAccepted {
		t.Fatalf("wrong notification target: %+v", dec)
	}
}

func TestSetStatusBackToPendingIsSilent(t *testing.T) {
	jobs := newMockJobRepo()
	apps := newMockApplicationRepo()
	notifier := &mockNotifier{}
	svc := NewApplicationUsecase(apps, jobs, notifier)
	ctx := context.Background()

	clientID := uuid.New()
	j := openJob(t, jobs, clientID)

	a, err := svc.Apply(ctx, uuid.New(), ApplyInput{JobID: j.ID, CoverLetter: "hi"})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	d := apps.apps[a.ID]
	d.JobClientID = clientID
	apps.apps[a.ID] = d

	if _, err := svc.SetStatus(ctx, clientID, a.ID, repository.ApplicationStatusPending); err != nil {
		t.Fatalf("set pending: %v", err)
	}
	if len(notifier.decisions) != 0 {
		t.Fatalf("pending must not notify")
	}

	if _, err := svc.SetStatus(ctx, clientID, a.ID, "withdrawn"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("invalid status: want ErrInvalidInput, got %v", err)
	}
}

func TestDashboardStats(t *testing.T) {
	jobs := newMockJobRepo()
	apps := newMockApplicationRepo()
	svc := NewApplicationUsecase(apps, jobs, &mockNotifier{})
	ctx := context.Background()

	clientID := uuid.New()
	freelancerID := uuid.New()
	for i := 0; i < 3; i++ {
		j := openJob(t, jobs, clientID)
		if _, err := svc.Apply(ctx, freelancerID, ApplyInput{JobID: j.ID, CoverLetter: "hi"}); err != nil {
			t.Fatalf("apply %d: %v", i, err)
		}
	}

	counts, err := svc.DashboardStats(ctx, freelancerID)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if counts.Total != 3 || counts.Pending != 3 {
		t.Fatalf("unexpected counts: %+v", counts)
	}
}
