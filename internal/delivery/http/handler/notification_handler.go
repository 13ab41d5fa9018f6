package handler

import (
	"gigboard/internal/delivery/http/dto"
	"gigboard/internal/delivery/http/middleware"
	"gigboard/internal/pkg/response"
	"gigboard/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type NotificationHandler struct {
	uc usecase.NotificationUsecase
}

func NewNotificationHandler(uc usecase.NotificationUsecase) *NotificationHandler {
	return &NotificationHandler{uc: uc}
}

func (h *NotificationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/notifications", h.Feed)
	r.Patch("/read/:notificationId", h.MarkRead)
}

func (h *NotificationHandler) Feed(c fiber.Ctx) error {
	recipientID, err := callerID(c)
	if err != nil {
		return err
	}

	feed, err := h.uc.Feed(c.Context(), recipientID)
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	return response.Success(c, fiber.StatusOK, "Notifications fetched successfully.", dto.FromNotificationFeed(feed))
}

func (h *NotificationHandler) MarkRead(c fiber.Ctx) error {
	recipientID, err := callerID(c)
	if err != nil {
		return err
	}
	notificationID, err := pathUUID(c, "notificationId")
	if err != nil {
		return err
	}

	updated, err := h.uc.MarkRead(c.Context(), recipientID, notificationID)
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	msg := "Notification marked as read."
	if !updated {
		msg = "Notification already read."
	}
	return response.Success(c, fiber.StatusOK, msg, map[string]any{"updated": updated})
}
