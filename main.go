package main

import (
	"fmt"
	"log"
	"os"

	"github.com/AnthonyTavian/chatbot-api-ia/config"
	"github.com/AnthonyTavian/chatbot-api-ia/controller"
	"github.com/AnthonyTavian/chatbot-api-ia/dao"
	"github.com/AnthonyTavian/chatbot-api-ia/logic"
	"github.com/AnthonyTavian/chatbot-api-ia/middleware"
	"github.com/AnthonyTavian/chatbot-api-ia/models"
	"github.com/AnthonyTavian/chatbot-api-ia/pkg"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const appVersion = "1.0.0"

func main() {
	// Initialize config
	if len(os.Args) < 2 {
		log.Fatal("Usage: chatbot-api-ia <config.yaml>")
	}
	configFile := os.Args[1]
	if err := config.LoadConfig(configFile); err != nil {
		log.Fatalf("Failed to load config from %s: %v", configFile, err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize database
	db, err := gorm.Open(postgres.Open(config.GlobalConfig.DSN()), &gorm.Config{})
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := db.AutoMigrate(&models.User{}, &models.Conversation{}, &models.Message{}); err != nil {
		logger.Fatal("failed to migrate database", zap.Error(err))
	}

	// Initialize Chat client
	chatClient := pkg.NewChatClient(
		config.GlobalConfig.Chat.BaseURL,
		config.GlobalConfig.Chat.APIKey,
		config.GlobalConfig.Chat.Model,
		config.GlobalConfig.Chat.MaxTokens,
	)

	// Initialize DAOs
	userDAO := dao.NewUserDAO(db)
	convoDAO := dao.NewConversationDAO(db)
	messageDAO := dao.NewMessageDAO(db)

	// Initialize Logics
	userLogic := logic.NewUserLogic(userDAO)
	chatLogic := logic.NewChatLogic(convoDAO, messageDAO, chatClient, logger)

	// Initialize Controllers
	userCtrl := controller.NewUserController(userLogic, logger)
	chatCtrl := controller.NewChatController(chatLogic, logger)

	// Setup Gin router
	r := gin.Default()
	r.GET("/", func(ctx *gin.Context) {
		ctx.JSON(200, gin.H{"message": "Chatbot AI API is running", "version": appVersion})
	})
	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(200, gin.H{"status": "ok"})
	})

	r.POST("/auth/register", userCtrl.Register)
	r.POST("/auth/login", userCtrl.Login)

	authorized := r.Group("/chat", middleware.Auth(userDAO))
	authorized.POST("/send", chatCtrl.SendMessage)
	authorized.GET("/conversations", chatCtrl.ListConversations)
	authorized.GET("/conversations/:id", chatCtrl.GetConversation)
	authorized.DELETE("/conversations/:id", chatCtrl.DeleteConversation)

	// Run server
	logger.Info("starting server", zap.Int("port", config.GlobalConfig.Server.Port))
	if err := r.Run(fmt.Sprintf(":%d", config.GlobalConfig.Server.Port)); err != nil {
		logger.Fatal("failed to run server", zap.Error(err))
	}
}
