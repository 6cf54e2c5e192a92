package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/carnegieJiang/pocketfridge/internal/api/handlers"
	"github.com/carnegieJiang/pocketfridge/internal/middleware"
	"github.com/carnegieJiang/pocketfridge/pkg/jwt"
)

type Config struct {
	App           *fiber.App
	UserHandler   handlers.UserHandler
	FridgeHandler handlers.FridgeHandler
	RecipeHandler handlers.RecipeHandler
	Middleware    middleware.Middleware
	JWTService    jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Fridge()
	c.Recipes()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
	}
}

func (c *Config) Fridge() {
	fridge := c.App.Group("/api/v1/fridge", c.Middleware.AuthMiddleware(c.JWTService))

	// Receipt scanning and ingestion
	fridge.Post("/receipt-scan", c.FridgeHandler.UploadReceipt)
	fridge.Get("/receipt-scan/:id", c.FridgeHandler.GetReceiptScan)
	fridge.Post("/ingest", c.FridgeHandler.IngestItems)

	// Ledger and digest
	fridge.Get("/expiring", c.FridgeHandler.GetExpiring)
	fridge.Get("/receipts", c.FridgeHandler.GetReceipts)
	fridge.Get("/spending", c.FridgeHandler.GetSpending)
	fridge.Post("/expiry-digest", c.FridgeHandler.SendExpiryDigest)

	// Basic inventory operations
	fridge.Post("", c.FridgeHandler.AddItem)
	fridge.Get("", c.FridgeHandler.GetFridge)
	fridge.Patch("/:id/quantity", c.FridgeHandler.UpdateQuantity)
	fridge.Delete("/:id", c.FridgeHandler.DeleteItem)
}

func (c *Config) Recipes() {
	recipes := c.App.Group("/api/v1/recipes", c.Middleware.AuthMiddleware(c.JWTService))
	recipes.Post("/generate", c.RecipeHandler.GenerateRecipes)
	recipes.Get("", c.RecipeHandler.GetRecipes)
	recipes.Get("/:id", c.RecipeHandler.GetRecipeDetail)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}
