package middleware

import (
	"errors"
	"testing"

	"gigboard/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
)

func TestBearerTokenFromHeader(t *testing.T) {
	cases := []struct {
		header string
		token  string
		ok     bool
	}{
		{"Bearer abc.def.ghi", "abc.def.ghi", true},
		{"bearer abc", "abc", true},
		{"  Bearer   abc  ", "abc", true},
		{"Basic abc", "", false},
		{"Bearer ", "", false},
		{"", "", false},
		{"abc", "", false},
	}

	for _, tc := range cases {
		token, ok := bearerTokenFromHeader(tc.header)
		assert.Equal(t, tc.ok, ok, "header %q", tc.header)
		assert.Equal(t, tc.token, token, "header %q", tc.header)
	}
}

func TestNormalizeErrorAppError(t *testing.T) {
	status, msg, data := normalizeError(NewAppError(fiber.StatusConflict, "Email already registered.", map[string]any{"field": "email"}, nil))
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "Email already registered.", msg)
	assert.NotNil(t, data)
}

func TestNormalizeErrorHides5xxDetails(t *testing.T) {
	cause := errors.New("pq: connection refused")

	status, msg, data := normalizeError(NewAppError(fiber.StatusInternalServerError, "db exploded", nil, cause))
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, response.MessageInternalServerError, msg)
	assert.Nil(t, data)

	// unknown errors are treated the same way
	status, msg, _ = normalizeError(cause)
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, response.MessageInternalServerError, msg)
}

func TestNormalizeErrorFiberError(t *testing.T) {
	status, msg, _ := normalizeError(fiber.ErrNotFound)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.NotEmpty(t, msg)
}

func TestAppErrorHTTPStatus(t *testing.T) {
	assert.Equal(t, fiber.StatusConflict, NewAppError(fiber.StatusConflict, "taken", nil, nil).HTTPStatus())
	assert.Equal(t, fiber.StatusInternalServerError, NewAppError(0, "unset", nil, nil).HTTPStatus())
}

func TestAppErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := NewAppError(fiber.StatusBadRequest, "Bad request", nil, cause)
	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "boom")
}
