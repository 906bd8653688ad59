package dao

import (
	"time"

	"github.com/AnthonyTavian/chatbot-api-ia/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MessageDAO handles message-related database operations
type MessageDAO struct {
	db *gorm.DB
}

func NewMessageDAO(db *gorm.DB) *MessageDAO {
	return &MessageDAO{db: db}
}

// CreateMessage adds a message to a conversation
func (d *MessageDAO) CreateMessage(conversationID uuid.UUID, role models.Role, content string) (*models.Message, error) {
	msg := &models.Message{
		ConversationID: conversationID,
		Role:           role,
		Content:        content,
	}
	if err := d.db.Create(msg).Error; err != nil {
		return nil, err
	}
	return msg, nil
}

// CreateAssistantReply stores the assistant's message and bumps the parent
// conversation's updated_at as a single transaction, so a reply and the
// activity timestamp never diverge.
func (d *MessageDAO) CreateAssistantReply(conversationID uuid.UUID, content string) (*models.Message, error) {
	msg := &models.Message{
		ConversationID: conversationID,
		Role:           models.RoleAssistant,
		Content:        content,
	}
	err := d.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(msg).Error; err != nil {
			return err
		}
		return tx.Model(&models.Conversation{}).
			Where("id = ?", conversationID).
			Update("updated_at", time.Now().UTC()).Error
	})
	if err != nil {
		return nil, err
	}
	return msg, nil
}

// GetMessagesByConversationID retrieves all messages in a conversation in
// chronological order, insertion order breaking timestamp ties
func (d *MessageDAO) GetMessagesByConversationID(conversationID uuid.UUID) ([]models.Message, error) {
	var messages []models.Message
	err := d.db.Where("conversation_id = ?", conversationID).
		Order("created_at ASC, id ASC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// GetRecentMessages retrieves at most limit messages, newest first
func (d *MessageDAO) GetRecentMessages(conversationID uuid.UUID, limit int) ([]models.Message, error) {
	var messages []models.Message
	err := d.db.Where("conversation_id = ?", conversationID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}
