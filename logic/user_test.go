package logic

import (
	"testing"
	"time"

	"github.com/AnthonyTavian/chatbot-api-ia/config"
	"github.com/AnthonyTavian/chatbot-api-ia/dao"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUserLogic(t *testing.T) *UserLogic {
	t.Helper()
	config.GlobalConfig.Auth.Secret = "test-secret"
	config.GlobalConfig.Auth.ExpMinutes = 30
	return NewUserLogic(dao.NewUserDAO(newTestDB(t)))
}

func TestRegisterAndLogin(t *testing.T) {
	userLogic := newTestUserLogic(t)

	user, err := userLogic.Register("alice", "correct horse battery")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.NotEqual(t, "correct horse battery", user.PasswordHash)

	loggedIn, token, expireAt, err := userLogic.Login("alice", "correct horse battery")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
	assert.NotEmpty(t, token)
	assert.True(t, expireAt.After(time.Now()))

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		return []byte(config.GlobalConfig.Auth.Secret), nil
	})
	require.NoError(t, err)
	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, float64(user.ID), claims["sub"])
	assert.Equal(t, "alice", claims["username"])
}

func TestRegisterDuplicateUsername(t *testing.T) {
	userLogic := newTestUserLogic(t)

	_, err := userLogic.Register("alice", "password one")
	require.NoError(t, err)

	_, err = userLogic.Register("alice", "password two")
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestLoginBadCredentials(t *testing.T) {
	userLogic := newTestUserLogic(t)

	_, err := userLogic.Register("alice", "the real password")
	require.NoError(t, err)

	_, _, _, err = userLogic.Login("alice", "wrong password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, _, err = userLogic.Login("nobody", "whatever password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
