package logic

import (
	"errors"
	"fmt"
	"time"

	"github.com/AnthonyTavian/chatbot-api-ia/config"
	"github.com/AnthonyTavian/chatbot-api-ia/dao"
	"github.com/AnthonyTavian/chatbot-api-ia/models"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserLogic handles registration and authentication
type UserLogic struct {
	userDAO *dao.UserDAO
}

func NewUserLogic(userDAO *dao.UserDAO) *UserLogic {
	return &UserLogic{userDAO: userDAO}
}

// Register creates a new user with a bcrypt-hashed password
func (l *UserLogic) Register(username, password string) (*models.User, error) {
	_, err := l.userDAO.GetUserByUsername(username)
	if err == nil {
		return nil, ErrUsernameTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	return l.userDAO.CreateUser(username, string(hash))
}

// Login verifies credentials and issues a signed access token
func (l *UserLogic) Login(username, password string) (*models.User, string, time.Time, error) {
	user, err := l.userDAO.GetUserByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", time.Time{}, ErrInvalidCredentials
		}
		return nil, "", time.Time{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	token, expireAt, err := l.generateJWT(user)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	return user, token, expireAt, nil
}

func (l *UserLogic) generateJWT(user *models.User) (string, time.Time, error) {
	expireAt := time.Now().Add(time.Duration(config.GlobalConfig.Auth.ExpMinutes) * time.Minute)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"exp":      expireAt.Unix(),
	})
	tokenString, err := token.SignedString([]byte(config.GlobalConfig.Auth.Secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expireAt, nil
}
