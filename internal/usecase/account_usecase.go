package usecase

import (
	"context"
	"errors"
	"strings"

	"gigboard/internal/domain/user"
	"gigboard/internal/repository"

	"github.com/google/uuid"
)

var ErrEmailInUse = errors.New("email is already in use")

// AccountOverview is the client dashboard header: identity summary plus job
// counts by status.
type AccountOverview struct {
	ID     uuid.UUID
	Name   string
	Email  string
	Avatar string
	Jobs   repository.JobStatusCounts
}

type UpdateDetailsInput struct {
	FullName string
	Email    string
}

type AccountUsecase interface {
	Overview(ctx context.Context, clientID uuid.UUID) (AccountOverview, error)
	UpdateDetails(ctx context.Context, clientID uuid.UUID, in UpdateDetailsInput) (user.User, error)
}

type AccountService struct {
	users user.Repository
	jobs  repository.JobRepository
}

func NewAccountUsecase(users user.Repository, jobs repository.JobRepository) *AccountService {
	return &AccountService{users: users, jobs: jobs}
}

func (u *AccountService) Overview(ctx context.Context, clientID uuid.UUID) (AccountOverview, error) {
	usr, err := u.users.GetByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return AccountOverview{}, ErrUnauthorized
		}
		return AccountOverview{}, ErrInternal
	}

	counts, err := u.jobs.CountsByClient(ctx, clientID)
	if err != nil {
		return AccountOverview{}, ErrInternal
	}

	return AccountOverview{
		ID:     usr.ID,
		Name:   usr.Name,
		Email:  usr.Email,
		Avatar: AvatarLetter(usr.Name),
		Jobs:   counts,
	}, nil
}

func (u *AccountService) UpdateDetails(ctx context.Context, clientID uuid.UUID, in UpdateDetailsInput) (user.User, error) {
	name := strings.TrimSpace(in.FullName)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if name == "" || email == "" {
		return user.User{}, ErrInvalidInput
	}

	taken, err := u.users.EmailTakenByOther(ctx, email, clientID)
	if err != nil {
		return user.User{}, ErrInternal
	}
	if taken {
		return user.User{}, ErrEmailInUse
	}

	updated, err := u.users.UpdateDetails(ctx, clientID, name, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrUnauthorized
		}
		return user.User{}, ErrInternal
	}
	updated.PasswordHash = ""

	return updated, nil
}
