package dao

import (
	"github.com/AnthonyTavian/chatbot-api-ia/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ConversationDAO handles conversation-related database operations
type ConversationDAO struct {
	db *gorm.DB
}

func NewConversationDAO(db *gorm.DB) *ConversationDAO {
	return &ConversationDAO{db: db}
}

// CreateConversation creates a new conversation owned by the given user
func (d *ConversationDAO) CreateConversation(userID uint64, title string) (*models.Conversation, error) {
	convo := &models.Conversation{
		ID:     uuid.New(),
		UserID: userID,
		Title:  title,
	}
	if err := d.db.Create(convo).Error; err != nil {
		return nil, err
	}
	return convo, nil
}

// GetUserConversation looks up a conversation by ID filtered on its owner.
// A conversation owned by a different user yields gorm.ErrRecordNotFound,
// same as a nonexistent one.
func (d *ConversationDAO) GetUserConversation(id uuid.UUID, userID uint64) (*models.Conversation, error) {
	var convo models.Conversation
	if err := d.db.Where("id = ? AND user_id = ?", id, userID).First(&convo).Error; err != nil {
		return nil, err
	}
	return &convo, nil
}

// GetConversationsByUserID retrieves a page of the user's conversations,
// most recently active first
func (d *ConversationDAO) GetConversationsByUserID(userID uint64, skip, limit int) ([]models.Conversation, error) {
	var convos []models.Conversation
	err := d.db.Where("user_id = ?", userID).
		Order("updated_at DESC").
		Offset(skip).
		Limit(limit).
		Find(&convos).Error
	if err != nil {
		return nil, err
	}
	return convos, nil
}

// DeleteConversation removes a conversation and all of its messages in
// one transaction
func (d *ConversationDAO) DeleteConversation(id uuid.UUID) error {
	return d.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("conversation_id = ?", id).Delete(&models.Message{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.Conversation{}).Error
	})
}
