package main

import (
	"log"
	"os"

	"PelicanChat/config"
	"PelicanChat/controllers"
	"PelicanChat/repositories/impl"
	"PelicanChat/routes"
	"PelicanChat/services"
	"PelicanChat/websocket"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	// Initialize database and Firebase
	config.InitDatabase()
	config.InitFirebase()

	// Initialize repositories
	userRepo := impl.NewUserRepository(config.DB)
	messageRepo := impl.NewMessageRepository(config.DB)
	conversationRepo := impl.NewConversationRepository(config.DB)
	channelRepo := impl.NewChannelRepository(config.DB)
	communityRepo := impl.NewCommunityRepository(config.DB)
	roleRepo := impl.NewRoleRepository(config.DB)
	friendRequestRepo := impl.NewFriendRequestRepository(config.DB)

	// Initialize services
	storageService := services.NewStorageService(
		envOr("UPLOAD_DIR", "./uploads"),
		envOr("BASE_URL", "http://localhost:8000"),
	)
	permissionService := services.NewPermissionService(communityRepo, roleRepo)
	mentionService := services.NewMentionService()
	chatService := services.NewChatService(
		messageRepo, conversationRepo, channelRepo, communityRepo, userRepo,
		permissionService, mentionService, storageService,
	)
	conversationService := services.NewConversationService(conversationRepo, userRepo, messageRepo)
	communityService := services.NewCommunityService(communityRepo, channelRepo, messageRepo, permissionService)
	roleService := services.NewRoleService(communityRepo, roleRepo, channelRepo, permissionService)
	friendService := services.NewFriendService(friendRequestRepo, userRepo)
	authService := services.NewAuthService(userRepo, config.FirebaseAuth, config.JWTSecret())

	notificationService, err := services.NewNotificationService(config.FirebaseApp, messageRepo, friendRequestRepo, userRepo)
	if err != nil {
		log.Fatalf("error initializing notification service: %v", err)
	}

	// Set services in controllers
	controllers.SetAuthService(authService)
	controllers.SetChatService(chatService)
	controllers.SetStorageService(storageService)
	controllers.SetConversationService(conversationService)
	controllers.SetCommunityService(communityService)
	controllers.SetRoleService(roleService)
	controllers.SetPermissionService(permissionService)
	controllers.SetFriendService(friendService)
	controllers.SetNotificationService(notificationService)
	controllers.SetWebSocketHub(websocket.NewHub())

	// Initialize Gin router
	r := gin.Default()
	r.Static("/media", envOr("UPLOAD_DIR", "./uploads"))

	// Register routes
	routes.RegisterRoutes(r, authService)

	// Start the server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	r.Run(":" + port)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
