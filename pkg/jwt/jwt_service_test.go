package jwt

import (
	"MangaVerse-Backend/domain"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenUser_RoundTrip(t *testing.T) {
	service := NewJWTService()
	userID := uuid.New().String()

	token := service.GenerateTokenUser(userID, domain.RoleAdmin)
	require.NotEmpty(t, token)

	gotID, gotRole, err := service.GetUserIDByToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, gotID)
	assert.Equal(t, domain.RoleAdmin, gotRole)
}

func TestTokenUser_Garbage(t *testing.T) {
	service := NewJWTService()

	_, _, err := service.GetUserIDByToken("not-a-token")
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestTokenForgetPassword_RoundTrip(t *testing.T) {
	service := NewJWTService()

	token, err := service.GenerateTokenForgetPassword(map[string]any{
		"email":   "reader@example.com",
		"purpose": "reset_password",
	}, time.Hour)
	require.NoError(t, err)

	claims, err := service.ValidateTokenForgetPassword(token)
	require.NoError(t, err)
	assert.Equal(t, "reader@example.com", claims["email"])
	assert.Equal(t, "reset_password", claims["purpose"])
}

func TestTokenForgetPassword_Expired(t *testing.T) {
	service := NewJWTService()

	token, err := service.GenerateTokenForgetPassword(map[string]any{
		"email": "reader@example.com",
	}, -time.Minute)
	require.NoError(t, err)

	_, err = service.ValidateTokenForgetPassword(token)
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
}
