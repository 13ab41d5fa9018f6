package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateValidateRoundtrip(t *testing.T) {
	svc := NewHMACService("test-secret", time.Hour)
	userID := uuid.New()

	token, err := svc.Generate(userID, "ada@example.com", "client")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.Equal(t, "client", claims.Role)
	assert.Equal(t, userID.String(), claims.Subject)
}

func TestValidateExpiredToken(t *testing.T) {
	svc := NewHMACService("test-secret", time.Minute)

	token, err := svc.Generate(uuid.New(), "ada@example.com", "freelancer")
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Now().Add(2 * time.Minute) }

	_, err = svc.Validate(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	issuer := NewHMACService("secret-a", time.Hour)
	verifier := NewHMACService("secret-b", time.Hour)

	token, err := issuer.Generate(uuid.New(), "", "client")
	require.NoError(t, err)

	_, err = verifier.Validate(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidateRejectsGarbage(t *testing.T) {
	svc := NewHMACService("test-secret", time.Hour)

	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		_, err := svc.Validate(tok)
		assert.ErrorIs(t, err, ErrTokenInvalid, "token %q", tok)
	}
}

func TestGenerateRequiresSecret(t *testing.T) {
	svc := NewHMACService("", time.Hour)

	_, err := svc.Generate(uuid.New(), "", "client")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
