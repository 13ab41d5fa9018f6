package usecase

import (
	"context"
	"errors"
	"testing"

	"gigboard/internal/domain/user"
	"gigboard/internal/repository"

	"github.com/google/uuid"
)

func TestAccountOverview(t *testing.T) {
	jobs := newMockJobRepo()
	users := &stubUserRepo{users: map[uuid.UUID]user.User{}}
	svc := NewAccountUsecase(users, jobs)
	ctx := context.Background()

	clientID := uuid.New()
	users.users[clientID] = user.User{ID: clientID, Name: "carla", Email: "carla@example.com", Role: user.RoleClient}

	for _, status := range []string{
		repository.JobStatusOpen, repository.JobStatusOpen,
		repository.JobStatusDraft, repository.JobStatusClosed,
	} {
		if err := jobs.Create(ctx, repository.Job{ID: uuid.New(), ClientID: clientID, Status: status}); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	ov, err := svc.Overview(ctx, clientID)
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if ov.Avatar != "C" {
		t.Fatalf("avatar: got %q", ov.Avatar)
	}
	if ov.Jobs.Total != 4 || ov.Jobs.Open != 2 || ov.Jobs.Draft != 1 || ov.Jobs.Closed != 1 {
		t.Fatalf("job counts: %+v", ov.Jobs)
	}
}

type emailTakenUserRepo struct {
	stubUserRepo
}

func (r *emailTakenUserRepo) EmailTakenByOther(ctx context.Context, email string, id uuid.UUID) (bool, error) {
	return true, nil
}

func TestUpdateDetailsEmailConflict(t *testing.T) {
	users := &emailTakenUserRepo{stubUserRepo{users: map[uuid.UUID]user.User{}}}
	svc := NewAccountUsecase(users, newMockJobRepo())

	_, err := svc.UpdateDetails(context.Background(), uuid.New(), UpdateDetailsInput{
		FullName: "Carla",
		Email:    "taken@example.com",
	})
	if !errors.Is(err, ErrEmailInUse) {
		t.Fatalf("want ErrEmailInUse, got %v", err)
	}
}

func TestUpdateDetailsNormalizesAndStrips(t *testing.T) {
	users := &stubUserRepo{users: map[uuid.UUID]user.User{}}
	svc := NewAccountUsecase(users, newMockJobRepo())
	ctx := context.Background()

	clientID := uuid.New()
	users.users[clientID] = user.User{ID: clientID, Name: "old", Email: "old@example.com", PasswordHash: "hash"}

	got, err := svc.UpdateDetails(ctx, clientID, UpdateDetailsInput{
		FullName: "  Carla  ",
		Email:    " CARLA@Example.com ",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Name != "Carla" || got.Email != "carla@example.com" {
		t.Fatalf("normalization: %+v", got)
	}
	if got.PasswordHash != "" {
		t.Fatalf("hash leaked")
	}

	if _, err := svc.UpdateDetails(ctx, clientID, UpdateDetailsInput{FullName: "", Email: "x@y.z"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("empty name: want ErrInvalidInput, got %v", err)
	}
}
