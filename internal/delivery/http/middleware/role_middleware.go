package middleware

import (
	"github.com/gofiber/fiber/v3"
)

// RequireRole gates a route group to callers whose token carries one of the
// allowed roles. Must run after AuthMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c fiber.Ctx) error {
		role, _ := c.Locals(CtxRoleKey).(string)
		if role == "" {
			return NewAppError(fiber.StatusUnauthorized, "Access denied. No token provided.", nil, nil)
		}
		if !allowed[role] {
			return NewAppError(fiber.StatusForbidden, "Access denied. Role not permitted.", nil, nil)
		}
		return c.Next()
	}
}
