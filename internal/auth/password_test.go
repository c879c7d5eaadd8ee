package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashPasswordNeverStoresPlaintext(t *testing.T) {
	hash, err := HashPassword("password123")
	require.NoError(t, err)
	require.NotEqual(t, "password123", hash)
	require.NotContains(t, hash, "password123")
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("password123")
	require.NoError(t, err)

	require.True(t, CheckPassword(hash, "password123"))
	require.False(t, CheckPassword(hash, "wrongpassword"))
	require.False(t, CheckPassword("not-a-hash", "password123"))
}
