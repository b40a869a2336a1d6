package handlers

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"

	"shopai/models"
)

// HandleListProducts returns the full catalog, newest first.
// GET /products
func (h *Handler) HandleListProducts(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	products, err := h.listProducts(ctx)
	if err != nil {
		log.Printf("❌ [PRODUCTS] Query error: %v", err)
		return c.JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to load products",
			"data":    []models.Product{},
		})
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   products,
	})
}

func (h *Handler) listProducts(ctx context.Context) ([]models.Product, error) {
	query := `
        SELECT id, name, price,
               COALESCE(description, ''),
               COALESCE(stock, 0),
               COALESCE(category, ''),
               COALESCE(image, '')
        FROM "Product"
        ORDER BY id DESC
    `
	rows, err := h.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]models.Product, 0)
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Description, &p.Stock, &p.Category, &p.Image); err != nil {
			log.Printf("⚠️  [PRODUCTS] Scan error: %v", err)
			continue
		}
		products = append(products, p)
	}
	return products, nil
}
