package utils

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	"github.com/yash9424/first-night-api/config"
)

func TestTokenRoundTrip(t *testing.T) {
	config.SetConfig(&config.Config{JWTSecret: "test-secret"})

	token, err := GenerateToken(42, "admin")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "admin", claims.Role)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	config.SetConfig(&config.Config{JWTSecret: "test-secret"})
	token, err := GenerateToken(42, "user")
	assert.NoError(t, err)

	config.SetConfig(&config.Config{JWTSecret: "other-secret"})
	_, err = ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateToken_WrongSigningMethod(t *testing.T) {
	config.SetConfig(&config.Config{JWTSecret: "test-secret"})

	// Even a correctly keyed token is rejected if it is not HS256.
	claims := Claims{UserID: 42, Role: "user"}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS384, claims).SignedString([]byte("test-secret"))
	assert.NoError(t, err)

	_, err = ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateToken_Garbage(t *testing.T) {
	config.SetConfig(&config.Config{JWTSecret: "test-secret"})
	_, err := ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("password123")
	assert.NoError(t, err)
	assert.NotEqual(t, "password123", hash)

	assert.True(t, CheckPassword(hash, "password123"))
	assert.False(t, CheckPassword(hash, "wrong-password"))
	assert.False(t, CheckPassword("", "password123"))
}
