package tokens

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateUserJWT(t *testing.T) {
	key := []byte("super secret key")

	tokenStr, err := GenerateUserJWT("alice", []string{"admin"}, time.Hour, key)
	require.NoError(t, err)
	require.NotEmpty(t, tokenStr)

	claims, validateErr := ValidateUserJWT(tokenStr, key)
	require.NoError(t, validateErr)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, []string{"admin"}, claims.Roles)
}

func TestValidateUserJWTWrongKey(t *testing.T) {
	tokenStr, err := GenerateUserJWT("alice", nil, time.Hour, []byte("key one"))
	require.NoError(t, err)

	_, validateErr := ValidateUserJWT(tokenStr, []byte("key two"))
	require.Error(t, validateErr)
}

func TestValidateUserJWTExpired(t *testing.T) {
	key := []byte("super secret key")
	tokenStr, err := GenerateUserJWT("alice", nil, -time.Minute, key)
	require.NoError(t, err)

	_, validateErr := ValidateUserJWT(tokenStr, key)
	require.ErrorIs(t, validateErr, ErrTokenExpired)
}

func TestValidateUserJWTGarbage(t *testing.T) {
	_, err := ValidateUserJWT("not.a.token", []byte("key"))
	require.Error(t, err)
}
