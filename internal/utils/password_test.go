package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	const plain = "Str0ngEnough!AB"
	hash, err := HashPassword(plain, 4) // low cost keeps the test fast
	require.NoError(t, err)

	assert.NotEqual(t, plain, hash)
	assert.True(t, VerifyPassword(hash, plain))
	assert.False(t, VerifyPassword(hash, "Str0ngEnough!AC"))
	assert.False(t, VerifyPassword(hash, ""))
}

func TestHashPasswordZeroCostFallsBack(t *testing.T) {
	hash, err := HashPassword("Str0ngEnough!AB", 0)
	require.NoError(t, err)
	assert.True(t, VerifyPassword(hash, "Str0ngEnough!AB"))
}

func TestVerifyPasswordGarbageHash(t *testing.T) {
	assert.False(t, VerifyPassword("not-a-bcrypt-hash", "anything"))
}
