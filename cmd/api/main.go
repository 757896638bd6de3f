package main

import (
	"context"
	"log"
	"os"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	fbapp "firebase.google.com/go/v4"

	"peermarket/internal/adapter/api"
	"peermarket/internal/adapter/api/handler"
	apimiddleware "peermarket/internal/adapter/api/middleware"
	"peermarket/internal/adapter/api/router"
	"peermarket/internal/adapter/repository"
	"peermarket/internal/infrastructure/firebase"
	"peermarket/internal/infrastructure/ratelimit"
	"peermarket/internal/infrastructure/websocket"
	"peermarket/internal/usecase"
	"peermarket/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var opts []option.ClientOption

	// Service account comes from an env var in production, a file in local dev.
	if serviceAccountJSON := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON"); serviceAccountJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(serviceAccountJSON)))
	} else if serviceAccountPath := os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH"); serviceAccountPath != "" {
		if _, err := os.Stat(serviceAccountPath); os.IsNotExist(err) {
			log.Fatalf("Service account file does not exist: %s", serviceAccountPath)
		}
		opts = append(opts, option.WithCredentialsFile(serviceAccountPath))
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opts...)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Auth: %v", err)
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opts...)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	userRepo := repository.NewFirestoreUserRepository(firestoreClient)
	productRepo := repository.NewFirestoreProductRepository(firestoreClient)
	messageRepo := repository.NewFirestoreMessageRepository(firestoreClient)
	ratingRepo := repository.NewFirestoreRatingRepository(firestoreClient)
	wishlistRepo := repository.NewFirestoreWishlistRepository(firestoreClient)

	firebaseAuthClient := firebase.NewAuthClient(authClient)

	wsManager := websocket.NewManager()
	wsManager.Start(ctx)

	rateLimiter := ratelimit.NewRateLimiter()
	rateLimiter.StartCleanupRoutine()

	messagingUseCase := usecase.NewMessagingUseCase(messageRepo, userRepo, productRepo, wsManager, rateLimiter)
	productUseCase := usecase.NewProductUseCase(productRepo, rateLimiter)
	ratingUseCase := usecase.NewRatingUseCase(ratingRepo, productRepo, userRepo)
	wishlistUseCase := usecase.NewWishlistUseCase(wishlistRepo, productRepo)
	profileUseCase := usecase.NewProfileUseCase(userRepo)

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(apimiddleware.NewIPRateLimiter(120, time.Minute).Middleware())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(authClient)

	messageHandler := handler.NewMessageHandler(messagingUseCase)
	productHandler := handler.NewProductHandler(productUseCase)
	ratingHandler := handler.NewRatingHandler(ratingUseCase)
	wishlistHandler := handler.NewWishlistHandler(wishlistUseCase)
	profileHandler := handler.NewProfileHandler(profileUseCase)
	wsHandler := handler.NewWebSocketHandler(wsManager, firebaseAuthClient, cfg.ClientOrigin)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	router.Setup(e, authMiddleware, messageHandler, productHandler, ratingHandler, wishlistHandler, profileHandler, wsHandler)

	log.Printf("Starting server on port %s...", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
