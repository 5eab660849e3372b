package config

import (
	"MangaVerse-Backend/internal/api/handlers"
	"MangaVerse-Backend/internal/api/routes"
	"MangaVerse-Backend/internal/middleware"
	"MangaVerse-Backend/internal/utils"
	"MangaVerse-Backend/internal/utils/storage"
	"MangaVerse-Backend/pkg/access"
	"MangaVerse-Backend/pkg/jwt"
	"MangaVerse-Backend/pkg/manga"
	"MangaVerse-Backend/pkg/midtrans"
	"MangaVerse-Backend/pkg/purchase"
	"MangaVerse-Backend/pkg/subscription"
	"MangaVerse-Backend/pkg/user"
	"MangaVerse-Backend/pkg/wallet"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Asia/Jakarta",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()

	// Repository
	userRepository := user.NewUserRepository(db)
	walletRepository := wallet.NewWalletRepository(db)
	purchaseRepository := purchase.NewPurchaseRepository(db)
	subscriptionRepository := subscription.NewSubscriptionRepository(db)
	mangaRepository := manga.NewMangaRepository(db)
	midtransRepository := midtrans.NewMidtransRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	walletService := wallet.NewWalletService(walletRepository)
	subscriptionService := subscription.NewSubscriptionService(
		subscriptionRepository,
		walletService,
		purchaseRepository,
	)
	purchaseService := purchase.NewPurchaseService(
		purchaseRepository,
		walletService,
		mangaRepository,
		subscriptionService,
	)
	accessService := access.NewAccessService(
		userRepository,
		mangaRepository,
		purchaseRepository,
		subscriptionService,
	)
	mangaService := manga.NewMangaService(mangaRepository, s3)
	userService := user.NewUserService(userRepository, jwtService, s3)
	midtransService := midtrans.NewMidtransService(midtransRepository, walletService)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	walletHandler := handlers.NewWalletHandler(walletService, validator)
	subscriptionHandler := handlers.NewSubscriptionHandler(subscriptionService, validator)
	purchaseHandler := handlers.NewPurchaseHandler(purchaseService, validator)
	accessHandler := handlers.NewAccessHandler(accessService)
	mangaHandler := handlers.NewMangaHandler(mangaService, validator)
	midtransHandler := handlers.NewMidtransHandler(midtransService, validator)

	// routes
	routesConfig := routes.Config{
		App:                 app,
		UserHandler:         userHandler,
		WalletHandler:       walletHandler,
		SubscriptionHandler: subscriptionHandler,
		PurchaseHandler:     purchaseHandler,
		AccessHandler:       accessHandler,
		MangaHandler:        mangaHandler,
		MidtransHandler:     midtransHandler,
		Middleware:          middlewares,
		JWTService:          jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
