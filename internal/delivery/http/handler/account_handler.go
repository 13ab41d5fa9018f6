package handler

import (
	"errors"

	"gigboard/internal/delivery/http/dto"
	"gigboard/internal/delivery/http/middleware"
	"gigboard/internal/pkg/response"
	"gigboard/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

// AccountHandler serves the client account overview and detail updates.
type AccountHandler struct {
	uc usecase.AccountUsecase
}

type updateDetailsRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

func NewAccountHandler(uc usecase.AccountUsecase) *AccountHandler {
	return &AccountHandler{uc: uc}
}

func (h *AccountHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/profile", h.Overview)
	r.Patch("/profile/details", h.UpdateDetails)
}

func (h *AccountHandler) Overview(c fiber.Ctx) error {
	clientID, err := callerID(c)
	if err != nil {
		return err
	}

	ov, err := h.uc.Overview(c.Context(), clientID)
	if err != nil {
		return mapAccountUsecaseError(err)
	}

	data := map[string]any{
		"id":        ov.ID,
		"full_name": ov.Name,
		"email":     ov.Email,
		"avatar":    ov.Avatar,
		"jobs": map[string]int{
			"total":  ov.Jobs.Total,
			"open":   ov.Jobs.Open,
			"draft":  ov.Jobs.Draft,
			"closed": ov.Jobs.Closed,
		},
	}
	return response.Success(c, fiber.StatusOK, "Profile fetched successfully.", data)
}

func (h *AccountHandler) UpdateDetails(c fiber.Ctx) error {
	clientID, err := callerID(c)
	if err != nil {
		return err
	}

	var req updateDetailsRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	usr, err := h.uc.UpdateDetails(c.Context(), clientID, usecase.UpdateDetailsInput{
		FullName: req.FullName,
		Email:    req.Email,
	})
	if err != nil {
		return mapAccountUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, "Details updated successfully.", dto.FromUser(usr))
}

func mapAccountUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrEmailInUse):
		return middleware.NewAppError(fiber.StatusConflict, "Email is already in use.", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, response.MessageUnauthorized, nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
