package handlers

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"

	"shopai/analytics"
	"shopai/models"
)

// HandleCustomerSegments clusters customers into behavioral cohorts from
// their completed-order history.
// GET /customer-segments
func (h *Handler) HandleCustomerSegments(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	query := `
        SELECT "userId",
               COUNT(id) AS frequency,
               SUM("totalAmount") AS monetary,
               MAX("createdAt") AS last_purchase
        FROM "Order"
        WHERE status = $1
        GROUP BY "userId"
    `
	rows, err := h.db.Query(ctx, query, models.OrderStatusCompleted)
	if err != nil {
		log.Printf("❌ [SEGMENTS] Query error: %v", err)
		return c.JSON(fiber.Map{
			"status":     "error",
			"error":      "Failed to load customer order history",
			"chart_data": []models.SegmentCount{},
			"details":    []models.CustomerSegment{},
		})
	}
	defer rows.Close()

	var customers []analytics.CustomerStats
	for rows.Next() {
		var cs analytics.CustomerStats
		if err := rows.Scan(&cs.UserID, &cs.Frequency, &cs.Monetary, &cs.LastPurchase); err != nil {
			log.Printf("⚠️  [SEGMENTS] Scan error: %v", err)
			continue
		}
		customers = append(customers, cs)
	}

	if len(customers) == 0 {
		return c.JSON(fiber.Map{
			"status":     "error",
			"message":    "Not enough order data to analyze yet",
			"chart_data": []models.SegmentCount{},
			"details":    []models.CustomerSegment{},
		})
	}

	chart, details := analytics.SegmentCustomers(customers)

	return c.JSON(models.SegmentsResponse{
		Status:    "success",
		ChartData: chart,
		Details:   details,
	})
}
