package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("rahasia123")
	require.NoError(t, err)

	assert.NotEqual(t, "rahasia123", hash)
	assert.True(t, CheckPasswordHash("rahasia123", hash))
	assert.False(t, CheckPasswordHash("salah", hash))
}

func TestSessionToken(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)
	id := uuid.New()

	token, err := m.GenerateSessionToken(id, "budi", "Budi Santoso")
	require.NoError(t, err)

	claims, err := m.ValidateSessionToken(token)
	require.NoError(t, err)
	assert.Equal(t, id, claims.UserID)
	assert.Equal(t, "budi", claims.Username)
	assert.Equal(t, "Budi Santoso", claims.FullName)
}

func TestSessionTokenRejectsOtherSecretAndExpiry(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)
	token, err := m.GenerateSessionToken(uuid.New(), "budi", "")
	require.NoError(t, err)

	_, err = NewJWTManager("other-secret", time.Hour).ValidateSessionToken(token)
	assert.Error(t, err)

	expired := NewJWTManager("test-secret", time.Minute)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, err := expired.GenerateSessionToken(uuid.New(), "budi", "")
	require.NoError(t, err)

	_, err = m.ValidateSessionToken(old)
	assert.Error(t, err)
}

func TestSafeFilename(t *testing.T) {
	assert.True(t, SafeFilename("exported_data_20261019_101500.xlsx"))
	assert.True(t, SafeFilename("nota_CH00001.pdf"))
	assert.False(t, SafeFilename("../secrets.env"))
	assert.False(t, SafeFilename("a/b.xlsx"))
	assert.False(t, SafeFilename(".."))
	assert.False(t, SafeFilename(""))
	assert.False(t, SafeFilename("name with space.xlsx"))
}
