package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"hotelier/infras/jwt"
	"hotelier/internal/domains/auth/model/dto"
)

func TestLoginResponse_FromTokenPair(t *testing.T) {
	tokenPair := &jwt.TokenPair{
		AccessToken:  "test-access-token",
		RefreshToken: "test-refresh-token",
		TokenType:    "Bearer",
		ExpiresIn:    900,
	}

	var response dto.LoginResponse
	response.FromTokenPair(tokenPair)

	assert.Equal(t, tokenPair.AccessToken, response.AccessToken)
	assert.Equal(t, tokenPair.RefreshToken, response.RefreshToken)
	assert.Equal(t, "Bearer", response.TokenType)
	assert.Equal(t, int64(900), response.ExpiresIn)
}

func TestRegisterRequest_ToUserModel(t *testing.T) {
	name := "Night Auditor"
	req := dto.RegisterRequest{Email: "  Night@Hotel.TEST", Password: "ignored", Level: "operator", FullName: &name}

	user := req.ToUserModel("admin@hotel.test", "hashed")

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "night@hotel.test", user.Email)
	assert.Equal(t, "hashed", user.Password)
	assert.Equal(t, "operator", user.Level)
	assert.Equal(t, &name, user.FullName)
	assert.True(t, user.Active)
	assert.Equal(t, "admin@hotel.test", user.CreatedBy)
	assert.Equal(t, user.CreatedAt, user.ModifiedAt)
}

func TestLoginRequest_NormalizedEmail(t *testing.T) {
	req := dto.LoginRequest{Email: " FrontDesk@Hotel.test "}

	assert.Equal(t, "frontdesk@hotel.test", req.NormalizedEmail())
}
