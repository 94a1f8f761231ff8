package hash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	digest, err := HashPassword("password")
	require.NoError(t, err)
	require.NotEmpty(t, digest)
	require.NotEqual(t, "password", digest)

	again, err := HashPassword("password")
	require.NoError(t, err)
	require.NotEqual(t, digest, again, "hashes must be salted")
}

func TestCheckPassword(t *testing.T) {
	digest, err := HashPassword("password")
	require.NoError(t, err)

	require.True(t, CheckPassword(digest, "password"))
	require.False(t, CheckPassword(digest, "wrong_password"))
	require.False(t, CheckPassword("not-a-bcrypt-hash", "password"))
	require.False(t, CheckPassword("", "password"))
}
