package routes

import (
	"github.com/gofiber/fiber/v2"

	"shopai/handlers"
)

// SetupRoutes defines all the routes for the application.
func SetupRoutes(app *fiber.App, h *handlers.Handler) {
	// AI assistance
	app.Post("/chatbot", h.HandleChatbot)
	app.Post("/visual-search", h.HandleVisualSearch)

	// Analytics
	app.Get("/predict-revenue", h.HandlePredictRevenue)
	app.Get("/customer-segments", h.HandleCustomerSegments)
	app.Get("/analyze-reviews", h.HandleAnalyzeReviews)

	// Catalog
	app.Get("/products", h.HandleListProducts)
}
