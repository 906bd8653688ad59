package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/AnthonyTavian/chatbot-api-ia/config"
	"github.com/AnthonyTavian/chatbot-api-ia/dao"
	"github.com/AnthonyTavian/chatbot-api-ia/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupAuthTest(t *testing.T) (*gin.Engine, *models.User) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.GlobalConfig.Auth.Secret = "test-secret"

	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	userDAO := dao.NewUserDAO(db)
	user, err := userDAO.CreateUser("alice", "hash")
	require.NoError(t, err)

	r := gin.New()
	r.GET("/me", Auth(userDAO), func(ctx *gin.Context) {
		u := ctx.MustGet(UserContextKey).(*models.User)
		ctx.JSON(http.StatusOK, gin.H{"username": u.Username})
	})
	return r, user
}

func signToken(t *testing.T, userID uint64, secret string, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID,
		"exp": exp.Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestAuthAcceptsValidToken(t *testing.T) {
	r, user := setupAuthTest(t)
	token := signToken(t, user.ID, "test-secret", time.Now().Add(time.Hour))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alice")
}

func TestAuthRejectsBadTokens(t *testing.T) {
	r, user := setupAuthTest(t)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not a bearer token", "Basic abc123"},
		{"garbage token", "Bearer not.a.token"},
		{"wrong secret", "Bearer " + signToken(t, user.ID, "other-secret", time.Now().Add(time.Hour))},
		{"expired", "Bearer " + signToken(t, user.ID, "test-secret", time.Now().Add(-time.Hour))},
		{"unknown user", "Bearer " + signToken(t, user.ID+999, "test-secret", time.Now().Add(time.Hour))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			r.ServeHTTP(w, req)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}
