package main

import (
	"github.com/gofiber/fiber/v2/log"

	"github.com/carnegieJiang/pocketfridge/cmd/config"
	"github.com/carnegieJiang/pocketfridge/internal/utils"
)

func main() {
	utils.LoadConfig()

	app, err := config.NewApp()
	if err != nil {
		log.Fatalf("error creating app: %v", err)
	}

	port := utils.GetConfig("PORT")
	if port == "" {
		port = "8080"
	}

	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
