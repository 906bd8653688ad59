package models

import (
	"time"

	"github.com/google/uuid"
)

// DefaultConversationTitle is assigned when a conversation is created
// implicitly by the first message.
const DefaultConversationTitle = "New Conversation"

// Conversation represents a single dialogue thread owned by one user.
// Messages never outlive their conversation.
type Conversation struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uint64    `gorm:"index;not null" json:"user_id"`
	Title     string    `gorm:"not null" json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Messages []Message `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
