package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("rahasia-123", bcrypt.MinCost)
	require.NoError(t, err)
	require.NotEqual(t, "rahasia-123", hash)

	assert.NoError(t, ComparePassword(hash, "rahasia-123"))
	assert.Error(t, ComparePassword(hash, "salah"))
}

func TestHashPasswordInvalidCostFallsBack(t *testing.T) {
	hash, err := HashPassword("rahasia-123", 0)
	require.NoError(t, err)
	assert.NoError(t, ComparePassword(hash, "rahasia-123"))
}
