package handler

import (
	"errors"

	"gigboard/internal/delivery/http/dto"
	"gigboard/internal/delivery/http/middleware"
	"gigboard/internal/metrics"
	"gigboard/internal/pkg/response"
	"gigboard/internal/usecase"
	ucauth "gigboard/internal/usecase/auth"

	"github.com/gofiber/fiber/v3"
)

type AuthHandler struct {
	uc      usecase.AuthUsecase
	metrics *metrics.Metrics
}

type registerRequest struct {
	FullName        string `json:"full_name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	Role            string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func NewAuthHandler(uc usecase.AuthUsecase, m *metrics.Metrics) *AuthHandler {
	return &AuthHandler{uc: uc, metrics: m}
}

func (h *AuthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
}

func (h *AuthHandler) Register(c fiber.Ctx) error {
	var req registerRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	usr, token, err := h.uc.Register(c.Context(), ucauth.RegisterInput{
		Name:            req.FullName,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		Role:            req.Role,
	})
	if err != nil {
		return mapAuthUsecaseError(err)
	}

	if h.metrics != nil {
		h.metrics.UsersRegistered.Inc()
	}

	data := map[string]any{
		"user":  dto.FromUser(usr),
		"token": token,
	}
	return response.Success(c, fiber.StatusCreated, "User registered successfully.", data)
}

func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req loginRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	usr, token, err := h.uc.Login(c.Context(), ucauth.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		return mapAuthUsecaseError(err)
	}

	data := map[string]any{
		"user":  dto.FromUser(usr),
		"token": token,
	}
	return response.Success(c, fiber.StatusOK, "Login successful.", data)
}

func mapAuthUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ucauth.ErrEmailAlreadyRegistered):
		return middleware.NewAppError(fiber.StatusConflict, "Email already registered.", nil, err)
	case errors.Is(err, ucauth.ErrInvalidCredentials):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid email or password.", nil, err)
	case errors.Is(err, ucauth.ErrPasswordMismatch):
		return middleware.NewAppError(fiber.StatusBadRequest, "Passwords do not match.", nil, err)
	case errors.Is(err, ucauth.ErrPasswordTooShort):
		return middleware.NewAppError(fiber.StatusBadRequest, "Password must be at least 6 characters.", nil, err)
	case errors.Is(err, ucauth.ErrWrongCurrentPassword):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Current password is incorrect.", nil, err)
	case errors.Is(err, ucauth.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, response.MessageUnauthorized, nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
