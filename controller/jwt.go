package controller

import (
	"errors"
	"net/http"

	"github.com/AnthonyTavian/chatbot-api-ia/middleware"
	"github.com/AnthonyTavian/chatbot-api-ia/models"

	"github.com/gin-gonic/gin"
)

// currentUser pulls the authenticated user placed in the context by the
// auth middleware. Writes a 401 and returns an error if it is missing.
func currentUser(ctx *gin.Context) (*models.User, error) {
	value, exists := ctx.Get(middleware.UserContextKey)
	if !exists {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "user not found in context"})
		return nil, errors.New("user not found in context")
	}

	user, ok := value.(*models.User)
	if !ok {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "invalid user in context"})
		return nil, errors.New("invalid user in context")
	}

	return user, nil
}
