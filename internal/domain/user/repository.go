package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("user not found")

type Repository interface {
	Create(ctx context.Context, u User) error
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// EmailTakenByOther reports whether the email belongs to a different user.
	EmailTakenByOther(ctx context.Context, email string, id uuid.UUID) (bool, error)
	UpdateDetails(ctx context.Context, id uuid.UUID, name, email string) (User, error)
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error
	ListIDsByRole(ctx context.Context, role string) ([]uuid.UUID, error)
}
