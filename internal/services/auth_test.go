package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	db := newTestDB(t)
	auth := NewAuthService(db, "test-secret", 10)

	token, err := auth.Register("runner@example.com", "secret123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, email, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "runner@example.com", email)

	profile, err := auth.GetProfile(userID)
	require.NoError(t, err)
	assert.Equal(t, 10, profile.Wishes, "registration grants the initial wishes balance")

	_, err = auth.Register("runner@example.com", "other")
	assert.Error(t, err, "duplicate email is rejected")

	loginToken, err := auth.Login("runner@example.com", "secret123")
	require.NoError(t, err)
	loginID, _, err := auth.ValidateToken(loginToken)
	require.NoError(t, err)
	assert.Equal(t, userID, loginID)

	_, err = auth.Login("runner@example.com", "wrong-password")
	assert.Error(t, err)
	_, err = auth.Login("nobody@example.com", "secret123")
	assert.Error(t, err)
}

func TestValidateTokenRejectsTampering(t *testing.T) {
	db := newTestDB(t)
	auth := NewAuthService(db, "test-secret", 0)
	other := NewAuthService(db, "different-secret", 0)

	token, err := auth.Register("runner@example.com", "secret123")
	require.NoError(t, err)

	_, _, err = other.ValidateToken(token)
	assert.Error(t, err)

	_, _, err = auth.ValidateToken(token + "x")
	assert.Error(t, err)
}
