package user_test

import (
	"testing"

	"github.com/amirasaad/amanah/pkg/domain"
	"github.com/amirasaad/amanah/pkg/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := user.HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)
	assert.True(t, user.CheckPasswordHash("s3cret-pass", hash))
	assert.False(t, user.CheckPasswordHash("wrong", hash))
	assert.False(t, user.CheckPasswordHash("s3cret-pass", ""))

	_, err = user.HashPassword("123")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNormalizeUsername(t *testing.T) {
	u, err := user.NormalizeUsername("  Aisha_K ")
	require.NoError(t, err)
	assert.Equal(t, "aisha_k", u)

	_, err = user.NormalizeUsername("ab")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = user.NormalizeUsername("has space")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}
