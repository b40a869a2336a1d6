package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"

	"shopai/config"
	"shopai/database"
	"shopai/gemini"
	"shopai/handlers"
	"shopai/routes"
)

func main() {
	// Load .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()

	// Initialize database
	db, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v", err)
	}
	defer db.Close()

	// Initialize the shared Gemini client
	ai, err := gemini.New(ctx, cfg.GeminiAPIKey)
	if err != nil {
		log.Fatalf("Unable to create Gemini client: %v", err)
	}
	defer ai.Close()

	app := fiber.New()

	// Add CORS middleware
	app.Use(cors.New())

	// Setup routes
	routes.SetupRoutes(app, handlers.New(db, ai))

	// Start server
	log.Fatal(app.Listen(":" + cfg.Port))
}
