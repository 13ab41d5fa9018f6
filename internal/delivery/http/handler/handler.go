package handler

import (
	"gigboard/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// callerID reads the authenticated user's id set by the auth middleware.
func callerID(c fiber.Ctx) (uuid.UUID, error) {
	raw, _ := c.Locals(middleware.CtxUserIDKey).(string)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusUnauthorized, "Access denied. No token provided.", nil, err)
	}
	return id, nil
}

func parseUUIDField(raw string) (uuid.UUID, error) {
	return uuid.Parse(raw)
}

func pathUUID(c fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusBadRequest, "Invalid id.", nil, err)
	}
	return id, nil
}
