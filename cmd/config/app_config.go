package config

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/sfirke/meutch/internal/api/handlers"
	"github.com/sfirke/meutch/internal/api/routes"
	"github.com/sfirke/meutch/internal/middleware"
	"github.com/sfirke/meutch/internal/utils"
	"github.com/sfirke/meutch/internal/utils/mailing"
	"github.com/sfirke/meutch/internal/utils/storage"
	"github.com/sfirke/meutch/pkg/giveaway"
	"github.com/sfirke/meutch/pkg/item"
	"github.com/sfirke/meutch/pkg/jwt"
	"github.com/sfirke/meutch/pkg/notification"
	"github.com/sfirke/meutch/pkg/user"
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
		TimeZone:   "UTC",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()
	mailer := mailing.NewMailer()

	// Repository
	userRepository := user.NewUserRepository(db)
	itemRepository := item.NewItemRepository(db)
	giveawayRepository := giveaway.NewGiveawayRepository(db)
	notificationRepository := notification.NewNotificationRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository, jwtService)
	itemService := item.NewItemService(itemRepository, s3)
	notifier := notification.NewNotifier(notificationRepository, mailer)
	giveawayService := giveaway.NewGiveawayService(
		giveawayRepository,
		giveaway.NewSelector(nil),
		notifier,
	)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	itemHandler := handlers.NewItemHandler(itemService, validator)
	giveawayHandler := handlers.NewGiveawayHandler(giveawayService, validator)

	// routes
	routesConfig := routes.Config{
		App:             app,
		UserHandler:     userHandler,
		ItemHandler:     itemHandler,
		GiveawayHandler: giveawayHandler,
		Middleware:      middlewares,
		JWTService:      jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
