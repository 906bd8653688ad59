package logic

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/AnthonyTavian/chatbot-api-ia/dao"
	"github.com/AnthonyTavian/chatbot-api-ia/models"
	"github.com/AnthonyTavian/chatbot-api-ia/pkg"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	// HistoryLimit bounds the number of prior messages sent to the model.
	// Counted in messages, not tokens, so a long individual message can
	// still overflow the model's input budget.
	HistoryLimit = 10

	chatTemperature  float32 = 0.7
	maxMessageLength         = 5000

	defaultPageSize = 20
	maxPageSize     = 100
)

// Responder produces a completion for an ordered message sequence.
// pkg.ChatClient implements it; tests substitute a double.
type Responder interface {
	Complete(ctx context.Context, messages []pkg.RequestMessage, temperature float32) (string, error)
}

// SendResult is the outcome of one completed exchange
type SendResult struct {
	ConversationID uuid.UUID `json:"conversation_id"`
	UserMessage    string    `json:"user_message"`
	AIResponse     string    `json:"ai_response"`
}

// ChatLogic orchestrates conversations: ownership, message persistence,
// history windowing and the chat provider call
type ChatLogic struct {
	convoDAO   *dao.ConversationDAO
	messageDAO *dao.MessageDAO
	responder  Responder
	logger     *zap.Logger
}

func NewChatLogic(
	convoDAO *dao.ConversationDAO,
	messageDAO *dao.MessageDAO,
	responder Responder,
	logger *zap.Logger,
) *ChatLogic {
	return &ChatLogic{
		convoDAO:   convoDAO,
		messageDAO: messageDAO,
		responder:  responder,
		logger:     logger,
	}
}

// SendMessage appends a user message to a conversation (creating one when
// conversationID is nil) and returns the assistant's reply.
//
// The user message is committed before the provider is invoked, so a
// provider failure never loses the user's input; the assistant message and
// the conversation's updated_at are then committed together.
func (l *ChatLogic) SendMessage(ctx context.Context, user *models.User, content string, conversationID *uuid.UUID) (*SendResult, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyMessage
	}
	if utf8.RuneCountInString(content) > maxMessageLength {
		return nil, ErrMessageTooLong
	}

	var convo *models.Conversation
	var err error
	if conversationID != nil {
		convo, err = l.getUserConversation(*conversationID, user)
		if err != nil {
			return nil, err
		}
	} else {
		convo, err = l.convoDAO.CreateConversation(user.ID, models.DefaultConversationTitle)
		if err != nil {
			return nil, fmt.Errorf("failed to create conversation: %w", err)
		}
	}

	if _, err := l.messageDAO.CreateMessage(convo.ID, models.RoleUser, content); err != nil {
		return nil, fmt.Errorf("failed to save user message: %w", err)
	}

	history, err := l.renderContext(convo.ID, HistoryLimit)
	if err != nil {
		return nil, err
	}

	reply, err := l.responder.Complete(ctx, history, chatTemperature)
	if err != nil {
		l.logger.Warn("chat provider call failed",
			zap.String("conversation_id", convo.ID.String()),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrUpstreamFailure, err)
	}

	if _, err := l.messageDAO.CreateAssistantReply(convo.ID, reply); err != nil {
		return nil, fmt.Errorf("failed to save assistant message: %w", err)
	}

	return &SendResult{
		ConversationID: convo.ID,
		UserMessage:    content,
		AIResponse:     reply,
	}, nil
}

// ListConversations returns a page of the user's conversations, most
// recently active first. skip and limit are clamped to sane bounds.
func (l *ChatLogic) ListConversations(user *models.User, skip, limit int) ([]models.Conversation, error) {
	if skip < 0 {
		skip = 0
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return l.convoDAO.GetConversationsByUserID(user.ID, skip, limit)
}

// GetConversation resolves ownership and returns the conversation together
// with its full message history in chronological order
func (l *ChatLogic) GetConversation(conversationID uuid.UUID, user *models.User) (*models.Conversation, []models.Message, error) {
	convo, err := l.getUserConversation(conversationID, user)
	if err != nil {
		return nil, nil, err
	}

	messages, err := l.messageDAO.GetMessagesByConversationID(convo.ID)
	if err != nil {
		return nil, nil, err
	}
	return convo, messages, nil
}

// GetConversationMessages returns the full message history of a
// conversation owned by the user
func (l *ChatLogic) GetConversationMessages(conversationID uuid.UUID, user *models.User) ([]models.Message, error) {
	_, messages, err := l.GetConversation(conversationID, user)
	return messages, err
}

// DeleteConversation removes a conversation and all its messages. A repeat
// delete of the same ID fails with ErrConversationNotFound.
func (l *ChatLogic) DeleteConversation(conversationID uuid.UUID, user *models.User) error {
	convo, err := l.getUserConversation(conversationID, user)
	if err != nil {
		return err
	}
	return l.convoDAO.DeleteConversation(convo.ID)
}

// getUserConversation is the shared ownership resolution used by every
// operation: a conversation that exists but belongs to someone else is
// indistinguishable from one that does not exist.
func (l *ChatLogic) getUserConversation(conversationID uuid.UUID, user *models.User) (*models.Conversation, error) {
	convo, err := l.convoDAO.GetUserConversation(conversationID, user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConversationNotFound
		}
		return nil, err
	}
	return convo, nil
}

// renderContext selects the limit most recent messages and renders them
// oldest first, the order the model expects
func (l *ChatLogic) renderContext(conversationID uuid.UUID, limit int) ([]pkg.RequestMessage, error) {
	recent, err := l.messageDAO.GetRecentMessages(conversationID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load conversation history: %w", err)
	}

	history := make([]pkg.RequestMessage, 0, len(recent))
	for i := len(recent) - 1; i >= 0; i-- {
		history = append(history, pkg.RequestMessage{
			Role:    string(recent[i].Role),
			Content: recent[i].Content,
		})
	}
	return history, nil
}
