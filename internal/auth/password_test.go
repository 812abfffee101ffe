package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotContains(t, hash, "correct horse")

	assert.True(t, CheckPassword("correct horse battery staple", hash))
	assert.False(t, CheckPassword("wrong password", hash))
}

func TestCheckPassword_MalformedHashFailsClosed(t *testing.T) {
	assert.False(t, CheckPassword("anything", ""))
	assert.False(t, CheckPassword("anything", "not-a-bcrypt-hash"))
}

func TestHashPassword_UniqueSalt(t *testing.T) {
	h1, err := HashPassword("same input")
	require.NoError(t, err)
	h2, err := HashPassword("same input")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
}
