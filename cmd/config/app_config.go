package config

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"github.com/carnegieJiang/pocketfridge/internal/api/handlers"
	"github.com/carnegieJiang/pocketfridge/internal/api/routes"
	"github.com/carnegieJiang/pocketfridge/internal/middleware"
	"github.com/carnegieJiang/pocketfridge/internal/utils"
	"github.com/carnegieJiang/pocketfridge/internal/utils/storage"
	"github.com/carnegieJiang/pocketfridge/pkg/dateutil"
	"github.com/carnegieJiang/pocketfridge/pkg/fridge"
	"github.com/carnegieJiang/pocketfridge/pkg/jwt"
	"github.com/carnegieJiang/pocketfridge/pkg/recipe"
	"github.com/carnegieJiang/pocketfridge/pkg/scan"
	"github.com/carnegieJiang/pocketfridge/pkg/user"
)

func NewApp() (*fiber.App, error) {
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
	store := fridge.NewStore()

	// Repository
	userRepository := user.NewUserRepository()
	recipeRepository := recipe.NewRecipeRepository()

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository, jwtService)
	fridgeService := fridge.NewFridgeService(store, dateutil.SystemClock())
	scanService := scan.NewScanService(scan.NewChatExtractor(), s3)
	recipeService := recipe.NewRecipeService(recipeRepository, fridgeService)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	fridgeHandler := handlers.NewFridgeHandler(fridgeService, scanService, userService, validator)
	recipeHandler := handlers.NewRecipeHandler(recipeService, validator)

	// log inventory changes in the background
	snapshots, _ := store.Subscribe()
	go func() {
		for snap := range snapshots {
			log.Infof("fridge updated: %d items, %d receipts", len(snap.Items), len(snap.Receipts))
		}
	}()

	// routes
	routesConfig := routes.Config{
		App:           app,
		UserHandler:   userHandler,
		FridgeHandler: fridgeHandler,
		RecipeHandler: recipeHandler,
		Middleware:    middlewares,
		JWTService:    jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
