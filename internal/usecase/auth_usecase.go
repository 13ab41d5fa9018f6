package usecase

import (
	"context"
	"errors"

	"gigboard/internal/domain/user"
	"gigboard/internal/pkg/jwt"
	ucauth "gigboard/internal/usecase/auth"

	"github.com/google/uuid"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal error")
)

type AuthUsecase interface {
	Register(ctx context.Context, in ucauth.RegisterInput) (user.User, string, error)
	Login(ctx context.Context, in ucauth.LoginInput) (user.User, string, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, in ucauth.ChangePasswordInput) (user.User, error)
}

type Auth struct {
	authSvc *ucauth.Service
	jwt     jwt.Service
}

func NewAuthUsecase(users user.Repository, jwtSvc jwt.Service) *Auth {
	return &Auth{authSvc: ucauth.NewService(users), jwt: jwtSvc}
}

func (u *Auth) Register(ctx context.Context, in ucauth.RegisterInput) (user.User, string, error) {
	usr, err := u.authSvc.Register(ctx, in)
	if err != nil {
		return user.User{}, "", err
	}

	token, err := u.jwt.Generate(usr.ID, usr.Email, usr.Role)
	if err != nil {
		return user.User{}, "", ErrInternal
	}

	return usr, token, nil
}

func (u *Auth) Login(ctx context.Context, in ucauth.LoginInput) (user.User, string, error) {
	usr, err := u.authSvc.Login(ctx, in)
	if err != nil {
		return user.User{}, "", err
	}

	token, err := u.jwt.Generate(usr.ID, usr.Email, usr.Role)
	if err != nil {
		return user.User{}, "", ErrInternal
	}

	return usr, token, nil
}

func (u *Auth) ChangePassword(ctx context.Context, userID uuid.UUID, in ucauth.ChangePasswordInput) (user.User, error) {
	usr, err := u.authSvc.ChangePassword(ctx, userID, in)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrUnauthorized
		}
		return user.User{}, err
	}
	return usr, nil
}
