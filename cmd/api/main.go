package main

import (
	"context"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	fbapp "firebase.google.com/go/v4"

	"socialconnect/internal/adapter/api"
	"socialconnect/internal/adapter/api/handler"
	apimiddleware "socialconnect/internal/adapter/api/middleware"
	"socialconnect/internal/adapter/api/router"
	"socialconnect/internal/adapter/repository"
	"socialconnect/internal/infrastructure/firebase"
	"socialconnect/internal/infrastructure/websocket"
	"socialconnect/internal/usecase"
	"socialconnect/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var opt option.ClientOption

	// Try to get service account from environment variable (for production)
	serviceAccountJSON := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON")
	if serviceAccountJSON != "" {
		log.Printf("Using Firebase service account from environment variable")
		opt = option.WithCredentialsJSON([]byte(serviceAccountJSON))
	} else {
		// Fallback to file path (for local development)
		serviceAccountPath := cfg.ServiceAccountPath
		if _, err := os.Stat(serviceAccountPath); os.IsNotExist(err) {
			log.Fatalf("Service account file does not exist: %s", serviceAccountPath)
		}

		log.Printf("Using Firebase service account from file: %s", serviceAccountPath)
		opt = option.WithCredentialsFile(serviceAccountPath)
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opt)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Auth: %v", err)
	}

	messagingClient, err := firebaseApp.Messaging(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Messaging: %v", err)
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opt)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	userRepo := repository.NewFirestoreUserRepository(firestoreClient)
	postRepo := repository.NewFirestorePostRepository(firestoreClient)
	followRepo := repository.NewFirestoreFollowRepository(firestoreClient)
	friendRepo := repository.NewFirestoreFriendRepository(firestoreClient)
	chatRepo := repository.NewFirestoreChatRepository(firestoreClient)

	firebaseAuthClient := firebase.NewFirebaseAuthClient(authClient, cfg.FirebaseApiKey)
	pushMessenger := firebase.NewFirebaseMessagingClient(messagingClient)

	notificationUseCase := usecase.NewNotificationUseCase(userRepo, pushMessenger)
	authUseCase := usecase.NewAuthUseCase(userRepo, firebaseAuthClient)
	profileUseCase := usecase.NewProfileUseCase(userRepo, firebaseAuthClient)
	socialUseCase := usecase.NewSocialUseCase(followRepo, friendRepo, userRepo, notificationUseCase)
	contentUseCase := usecase.NewContentUseCase(postRepo, userRepo, followRepo, cfg.FeedPageSize)
	chatUseCase := usecase.NewChatUseCase(chatRepo, userRepo, notificationUseCase)

	wsManager := websocket.NewManager()

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(authClient)

	wsHandler := handler.NewWebSocketHandler(
		wsManager,
		authMiddleware,
		profileUseCase,
		contentUseCase,
		socialUseCase,
		chatUseCase,
	)
	wsManager.Start(ctx)

	router.Setup(e, authMiddleware, router.Handlers{
		Auth:      handler.NewAuthHandler(authUseCase),
		User:      handler.NewUserHandler(profileUseCase),
		Social:    handler.NewSocialHandler(socialUseCase),
		Post:      handler.NewPostHandler(contentUseCase),
		Chat:      handler.NewChatHandler(chatUseCase),
		WebSocket: wsHandler,
	})

	log.Printf("Starting server on port %s...", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
