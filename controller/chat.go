package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/AnthonyTavian/chatbot-api-ia/logic"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ChatController handles HTTP requests for the chat endpoints
type ChatController struct {
	chatLogic *logic.ChatLogic
	logger    *zap.Logger
}

func NewChatController(chatLogic *logic.ChatLogic, logger *zap.Logger) *ChatController {
	return &ChatController{chatLogic: chatLogic, logger: logger}
}

// SendMessage handles POST /chat/send
func (c *ChatController) SendMessage(ctx *gin.Context) {
	type Request struct {
		Message        string     `json:"message" binding:"required"`
		ConversationID *uuid.UUID `json:"conversation_id"`
	}
	var req Request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := currentUser(ctx)
	if err != nil {
		return
	}

	result, err := c.chatLogic.SendMessage(ctx.Request.Context(), user, req.Message, req.ConversationID)
	if err != nil {
		c.writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// ListConversations handles GET /chat/conversations
func (c *ChatController) ListConversations(ctx *gin.Context) {
	user, err := currentUser(ctx)
	if err != nil {
		return
	}

	skip, _ := strconv.Atoi(ctx.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	convos, err := c.chatLogic.ListConversations(user, skip, limit)
	if err != nil {
		c.writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, convos)
}

// GetConversation handles GET /chat/conversations/:id
func (c *ChatController) GetConversation(ctx *gin.Context) {
	user, err := currentUser(ctx)
	if err != nil {
		return
	}

	convoID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid conversation ID"})
		return
	}

	convo, messages, err := c.chatLogic.GetConversation(convoID, user)
	if err != nil {
		c.writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"id":         convo.ID,
		"title":      convo.Title,
		"created_at": convo.CreatedAt,
		"updated_at": convo.UpdatedAt,
		"messages":   messages,
	})
}

// DeleteConversation handles DELETE /chat/conversations/:id
func (c *ChatController) DeleteConversation(ctx *gin.Context) {
	user, err := currentUser(ctx)
	if err != nil {
		return
	}

	convoID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid conversation ID"})
		return
	}

	if err := c.chatLogic.DeleteConversation(convoID, user); err != nil {
		c.writeError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (c *ChatController) writeError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, logic.ErrConversationNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, logic.ErrEmptyMessage), errors.Is(err, logic.ErrMessageTooLong):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, logic.ErrUpstreamFailure):
		ctx.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		c.logger.Error("chat request failed", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
