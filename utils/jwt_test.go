package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("rest-1", "owner@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "rest-1", claims.RestaurantID)
	assert.Equal(t, "owner@example.com", claims.Email)
	assert.Equal(t, "rest-1", claims.Subject)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	_, err := ValidateToken("not-a-token")
	require.Error(t, err)

	_, err = ValidateToken("")
	require.Error(t, err)
}
