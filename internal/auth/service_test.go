package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/readinglog/internal/config"
)

func TestAuthenticate(t *testing.T) {
	service, err := NewService(config.Auth{
		Mode:       config.AuthModeLocal,
		Password:   "correct horse battery staple",
		BcryptCost: 4, // min cost keeps the test fast
	})
	require.NoError(t, err)
	assert.True(t, service.IsAuthEnabled())

	assert.NoError(t, service.Authenticate("correct horse battery staple"))
	assert.ErrorIs(t, service.Authenticate("wrong"), ErrInvalidPassword)
	assert.ErrorIs(t, service.Authenticate(""), ErrInvalidPassword)
}

func TestNewServiceRequiresPassword(t *testing.T) {
	_, err := NewService(config.Auth{Mode: config.AuthModeLocal})
	assert.ErrorIs(t, err, ErrNoPasswordSet)
}

func TestNewServiceDisabledMode(t *testing.T) {
	service, err := NewService(config.Auth{Mode: config.AuthModeNone})
	require.NoError(t, err)
	assert.False(t, service.IsAuthEnabled())
	assert.ErrorIs(t, service.Authenticate("anything"), ErrInvalidPassword)
}

func TestGenerateSessionSecret(t *testing.T) {
	a, err := GenerateSessionSecret()
	require.NoError(t, err)
	b, err := GenerateSessionSecret()
	require.NoError(t, err)
	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}
