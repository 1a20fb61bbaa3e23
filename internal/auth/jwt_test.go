package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ticketchain/ticketchain/internal/models"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)
	userID := uuid.New()

	token, err := svc.Issue(userID, "alice@example.com", models.RoleBuyer, "0xdeadbeef")
	require.NoError(t, err)

	claims, err := svc.Verify(token)
	require.NoError(t, err)

	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Identifier)
	assert.Equal(t, models.RoleBuyer, claims.Role)
	assert.Equal(t, "0xdeadbeef", claims.WalletAddress)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	_, err := svc.Verify("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenService("secret-a", time.Hour)
	verifier := NewTokenService("secret-b", time.Hour)

	token, err := issuer.Issue(uuid.New(), "alice@example.com", models.RoleBuyer, "0x1")
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	svc := NewTokenService("test-secret", -time.Minute)

	token, err := svc.Issue(uuid.New(), "alice@example.com", models.RoleBuyer, "0x1")
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
