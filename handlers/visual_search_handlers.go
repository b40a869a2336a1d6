package handlers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"shopai/gemini"
	"shopai/models"
)

const visualSearchTimeout = 30 * time.Second

// HandleVisualSearch matches an uploaded photo against the product catalog
// using Gemini's image understanding.
// POST /visual-search
func (h *Handler) HandleVisualSearch(c *fiber.Ctx) error {
	var req models.VisualSearchRequest
	if err := c.BodyParser(&req); err != nil || req.ImageBase64 == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "image_base64 is required",
			"data":    []models.Product{},
		})
	}

	mimeType, payload := gemini.ParseImageData(req.ImageBase64)
	image, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to decode image data",
			"data":    []models.Product{},
		})
	}

	dbCtx, dbCancel := context.WithTimeout(context.Background(), dbTimeout)
	defer dbCancel()
	products, err := h.listProducts(dbCtx)
	if err != nil {
		log.Printf("❌ [VISUAL SEARCH] Query error: %v", err)
		return c.JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to load product catalog",
			"data":    []models.Product{},
		})
	}
	if len(products) == 0 {
		return c.JSON(fiber.Map{
			"status":  "error",
			"message": "No products in the catalog",
			"data":    []models.Product{},
		})
	}

	// Only id/name/category go into the prompt; the full rows come back from
	// the catalog after matching.
	type productRef struct {
		ID       int    `json:"id"`
		Name     string `json:"name"`
		Category string `json:"category"`
	}
	refs := make([]productRef, len(products))
	for i, p := range products {
		refs[i] = productRef{ID: p.ID, Name: p.Name, Category: p.Category}
	}
	refJSON, err := json.Marshal(refs)
	if err != nil {
		return c.JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to prepare catalog data",
			"data":    []models.Product{},
		})
	}

	prompt := fmt.Sprintf(`You are an AI fashion expert. A customer just uploaded a photo.
Study the photo and pick AT MOST 4 products whose STYLE OR COLOR MATCHES BEST from the store list below:
%s

RETURN ONLY A JSON ARRAY with the IDs of the products you picked (for example: [1, 5, 12]).
No explanations, no markdown.`, refJSON)

	ctx, cancel := context.WithTimeout(context.Background(), visualSearchTimeout)
	defer cancel()

	raw, err := h.ai.GenerateWithImage(ctx, prompt, mimeType, image)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return c.JSON(fiber.Map{
				"status":  "error",
				"message": "The AI took too long to analyze the image, please try again.",
				"data":    []models.Product{},
			})
		}
		log.Printf("❌ [VISUAL SEARCH] Gemini error: %v", err)
		return c.JSON(fiber.Map{
			"status":  "error",
			"message": "AI service error",
			"data":    []models.Product{},
		})
	}

	var matchedIDs []int
	if err := json.Unmarshal([]byte(gemini.StripCodeFence(raw)), &matchedIDs); err != nil {
		log.Printf("⚠️  [VISUAL SEARCH] Unparseable Gemini reply: %q", raw)
		matchedIDs = nil
	}

	matched := make([]models.Product, 0, len(matchedIDs))
	for _, p := range products {
		for _, id := range matchedIDs {
			if p.ID == id {
				matched = append(matched, p)
				break
			}
		}
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   matched,
	})
}
