package handlers

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"shopai/analytics"
	"shopai/models"
)

// HandlePredictRevenue aggregates completed orders into monthly buckets,
// projects next month's revenue and attaches the top-selling products.
// GET /predict-revenue
func (h *Handler) HandlePredictRevenue(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	rows, err := h.db.Query(ctx, `SELECT "createdAt", "totalAmount" FROM "Order" WHERE status = $1`, models.OrderStatusCompleted)
	if err != nil {
		log.Printf("❌ [REVENUE] Query error: %v", err)
		return c.JSON(fiber.Map{
			"error":    "Failed to load order history",
			"data":     []models.RevenuePoint{},
			"analysis": fiber.Map{},
		})
	}
	defer rows.Close()

	var orders []analytics.OrderPoint
	for rows.Next() {
		var p analytics.OrderPoint
		if err := rows.Scan(&p.CreatedAt, &p.Amount); err != nil {
			log.Printf("⚠️  [REVENUE] Scan error: %v", err)
			continue
		}
		orders = append(orders, p)
	}

	forecast := analytics.ForecastRevenue(orders, time.Now())

	analysis := models.RevenueAnalysis{
		Trend:       forecast.Trend,
		GrowthRate:  forecast.GrowthRate,
		Advice:      forecast.Advice,
		SeasonTip:   forecast.SeasonTip,
		TopProducts: []models.TopProduct{},
	}
	if len(orders) > 0 {
		analysis.TopProducts = h.topSellingProducts(ctx)
	}

	return c.JSON(models.RevenueForecastResponse{
		Data:     forecast.Points,
		Analysis: analysis,
	})
}

// topSellingProducts counts every order item regardless of order status. The
// storefront dashboard has always displayed it that way, even though the
// revenue series above is completed-only.
func (h *Handler) topSellingProducts(ctx context.Context) []models.TopProduct {
	query := `
        SELECT p.name, COALESCE(SUM(oi.quantity), 0) AS total_sold
        FROM "OrderItem" oi
        JOIN "Product" p ON oi."productId" = p.id
        GROUP BY p.name
        ORDER BY total_sold DESC
        LIMIT 3
    `
	rows, err := h.db.Query(ctx, query)
	if err != nil {
		log.Printf("⚠️  [REVENUE] Top products query error: %v", err)
		return []models.TopProduct{}
	}
	defer rows.Close()

	products := make([]models.TopProduct, 0, 3)
	for rows.Next() {
		var p models.TopProduct
		if err := rows.Scan(&p.Name, &p.TotalSold); err != nil {
			continue
		}
		products = append(products, p)
	}
	return products
}
