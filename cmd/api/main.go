package main

import (
	"context"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	fbapp "firebase.google.com/go/v4"

	"bizbid/internal/adapter/api"
	"bizbid/internal/adapter/api/handler"
	apimiddleware "bizbid/internal/adapter/api/middleware"
	"bizbid/internal/adapter/api/router"
	"bizbid/internal/adapter/repository"
	"bizbid/internal/domain/service"
	"bizbid/internal/infrastructure/firebase"
	"bizbid/internal/infrastructure/storage"
	"bizbid/internal/usecase"
	"bizbid/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var opt option.ClientOption
	credentialsPath := ""

	serviceAccountJSON := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON")
	if serviceAccountJSON != "" {
		opt = option.WithCredentialsJSON([]byte(serviceAccountJSON))
	} else {
		credentialsPath = os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH")
		if credentialsPath == "" {
			log.Fatalf("FIREBASE_SERVICE_ACCOUNT_JSON or FIREBASE_SERVICE_ACCOUNT_PATH must be set")
		}
		if _, err := os.Stat(credentialsPath); os.IsNotExist(err) {
			log.Fatalf("Service account file does not exist: %s", credentialsPath)
		}
		opt = option.WithCredentialsFile(credentialsPath)
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opt)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Auth: %v", err)
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opt)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	storageClient, err := storage.NewCloudStorageClient(ctx, cfg.StorageBucket, credentialsPath)
	if err != nil {
		log.Fatalf("Failed to initialize Cloud Storage: %v", err)
	}
	defer storageClient.Close()

	userRepo := repository.NewFirestoreUserRepository(firestoreClient)
	listingRepo := repository.NewFirestoreListingRepository(firestoreClient)
	bidRepo := repository.NewFirestoreBidRepository(firestoreClient)
	wishlistRepo := repository.NewFirestoreWishlistRepository(firestoreClient)
	paymentRepo := repository.NewFirestorePaymentRepository(firestoreClient)

	firebaseAuthClient := firebase.NewFirebaseAuthClient(authClient, cfg.FirebaseApiKey)
	paymentGateway := service.NewRazorpayPaymentService(cfg.PaymentKeyID, cfg.PaymentKeySecret)
	mailer := service.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom)

	authUseCase := usecase.NewAuthUseCase(firebaseAuthClient, userRepo, mailer)
	listingUseCase := usecase.NewListingUseCase(listingRepo, userRepo, storageClient, mailer)
	bidUseCase := usecase.NewBidUseCase(bidRepo, listingRepo, userRepo)
	auctionUseCase := usecase.NewAuctionUseCase(bidRepo, listingRepo, userRepo)
	verificationUseCase := usecase.NewVerificationUseCase(listingRepo, bidRepo, wishlistRepo, userRepo)
	wishlistUseCase := usecase.NewWishlistUseCase(wishlistRepo, listingRepo, bidRepo, userRepo)
	paymentUseCase := usecase.NewPaymentUseCase(paymentRepo, bidRepo, userRepo, paymentGateway)

	e := echo.New()

	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(firebaseAuthClient)
	roleMiddleware := apimiddleware.NewRoleMiddleware(userRepo)

	router.Setup(e, router.Handlers{
		Auth:     handler.NewAuthHandler(authUseCase),
		Listing:  handler.NewListingHandler(listingUseCase),
		Bid:      handler.NewBidHandler(bidUseCase),
		Admin:    handler.NewAdminHandler(verificationUseCase, auctionUseCase),
		Wishlist: handler.NewWishlistHandler(wishlistUseCase),
		Payment:  handler.NewPaymentHandler(paymentUseCase),
		Health:   handler.NewHealthHandler(),
	}, authMiddleware, roleMiddleware)

	log.Printf("Starting server on port %s...", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
