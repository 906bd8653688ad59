package dao

import (
	"github.com/AnthonyTavian/chatbot-api-ia/models"
	"gorm.io/gorm"
)

// UserDAO handles user-related database operations
type UserDAO struct {
	db *gorm.DB
}

func NewUserDAO(db *gorm.DB) *UserDAO {
	return &UserDAO{db: db}
}

// CreateUser creates a new user with an already-hashed password
func (d *UserDAO) CreateUser(username, passwordHash string) (*models.User, error) {
	user := &models.User{Username: username, PasswordHash: passwordHash}
	if err := d.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// GetUserByUsername retrieves a user by username
func (d *UserDAO) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	if err := d.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByID retrieves a user by primary key
func (d *UserDAO) GetUserByID(id uint64) (*models.User, error) {
	var user models.User
	if err := d.db.Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
