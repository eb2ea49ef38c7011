package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService() *JWTService {
	return &JWTService{
		AccessTokenDuration: time.Hour,
		jwtSecretKey:        "test-secret",
	}
}

func TestJWT_RoundTrip(t *testing.T) {
	svc := newTestJWTService()

	token, err := svc.ToJWT("user-123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := svc.VerifyJWTToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)
}

func TestJWT_WrongSecretRejected(t *testing.T) {
	svc := newTestJWTService()

	token, err := svc.ToJWT("user-123")
	require.NoError(t, err)

	other := &JWTService{AccessTokenDuration: time.Hour, jwtSecretKey: "different-secret"}
	_, err = other.VerifyJWTToken(token)
	assert.Error(t, err)
}

func TestJWT_ExpiredTokenRejected(t *testing.T) {
	svc := newTestJWTService()
	svc.AccessTokenDuration = -time.Minute

	token, err := svc.ToJWT("user-123")
	require.NoError(t, err)

	_, err = svc.VerifyJWTToken(token)
	assert.Error(t, err)
}

func TestJWT_GenerateTokenPair(t *testing.T) {
	svc := newTestJWTService()

	pair, err := svc.GenerateTokenPair("user-123")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.Equal(t, int64(3600), pair.ExpiresIn)
}

func TestJWT_ExtractTokenFromHeader(t *testing.T) {
	svc := newTestJWTService()

	token, err := svc.ExtractTokenFromHeader("Bearer abc123")
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)

	_, err = svc.ExtractTokenFromHeader("")
	assert.Error(t, err)

	_, err = svc.ExtractTokenFromHeader("Basic abc123")
	assert.Error(t, err)
}
