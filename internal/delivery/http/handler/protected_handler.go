package handler

import (
	"gigboard/internal/delivery/http/middleware"
	"gigboard/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

// ProtectedHandler serves the claim-echo endpoint any authenticated identity
// can call, regardless of role.
type ProtectedHandler struct{}

func NewProtectedHandler() *ProtectedHandler {
	return &ProtectedHandler{}
}

func (h *ProtectedHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/dashboard", h.Dashboard)
}

func (h *ProtectedHandler) Dashboard(c fiber.Ctx) error {
	data := map[string]any{
		"user_id": c.Locals(middleware.CtxUserIDKey),
		"email":   c.Locals(middleware.CtxEmailKey),
		"role":    c.Locals(middleware.CtxRoleKey),
	}
	return response.Success(c, fiber.StatusOK, "Access granted.", data)
}
