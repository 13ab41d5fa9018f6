package metrics

import (
	"errors"
	"fmt"
	"testing"

	"gigboard/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
)

func TestStatusForError(t *testing.T) {
	assert.Equal(t, 200, statusForError(nil, 200))

	appErr := middleware.NewAppError(fiber.StatusConflict, "Email is already in use.", nil, nil)
	assert.Equal(t, fiber.StatusConflict, statusForError(appErr, 200))

	// wrapped errors still resolve to their handled status
	wrapped := fmt.Errorf("handler: %w", appErr)
	assert.Equal(t, fiber.StatusConflict, statusForError(wrapped, 200))

	assert.Equal(t, fiber.StatusNotFound, statusForError(fiber.ErrNotFound, 200))

	assert.Equal(t, fiber.StatusInternalServerError, statusForError(errors.New("boom"), 200))
}
