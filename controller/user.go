package controller

import (
	"errors"
	"net/http"

	"github.com/AnthonyTavian/chatbot-api-ia/logic"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserController handles registration and login requests
type UserController struct {
	userLogic *logic.UserLogic
	logger    *zap.Logger
}

func NewUserController(userLogic *logic.UserLogic, logger *zap.Logger) *UserController {
	return &UserController{userLogic: userLogic, logger: logger}
}

type credentialsRequest struct {
	Username string `json:"username" binding:"required,min=3,max=64"`
	Password string `json:"password" binding:"required,min=8,max=128"`
}

// Register handles POST /auth/register
func (c *UserController) Register(ctx *gin.Context) {
	var req credentialsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := c.userLogic.Register(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, logic.ErrUsernameTaken) {
			ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.logger.Error("registration failed", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	ctx.JSON(http.StatusCreated, user)
}

// Login handles POST /auth/login
func (c *UserController) Login(ctx *gin.Context) {
	var req credentialsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, expireAt, err := c.userLogic.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, logic.ErrInvalidCredentials) {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.logger.Error("login failed", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "bearer",
		"expires_at":   expireAt,
		"user":         user,
	})
}
