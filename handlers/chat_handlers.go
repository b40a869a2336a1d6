package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"shopai/gemini"
	"shopai/models"
)

const chatTimeout = 18 * time.Second

// HandleChatbot answers a customer question grounded in the live product
// catalog. AI failures degrade to a friendly fallback reply, never to an
// error status.
// POST /chatbot
func (h *Handler) HandleChatbot(c *fiber.Ctx) error {
	var req models.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid request body",
		})
	}

	system := chatSystemPrompt(h.productCatalogContext())

	history := make([]gemini.ChatTurn, 0, len(req.History))
	for _, m := range req.History {
		history = append(history, gemini.ChatTurn{Role: m.Role, Content: m.Content})
	}

	ctx, cancel := context.WithTimeout(context.Background(), chatTimeout)
	defer cancel()

	reply, err := h.ai.Chat(ctx, system, history, req.Question)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return c.JSON(fiber.Map{"reply": "The AI is busy right now, please try again in a few seconds!"})
		}
		log.Printf("❌ [CHATBOT] Gemini error: %v", err)
		return c.JSON(fiber.Map{"reply": "Sorry, the AI did not quite catch that. Could you ask again?"})
	}

	return c.JSON(fiber.Map{"reply": reply})
}

// productCatalogContext renders the catalog into plain text for the system
// prompt. A store failure yields an empty context rather than failing the
// chat.
func (h *Handler) productCatalogContext() string {
	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	rows, err := h.db.Query(ctx, `SELECT name, price, description, stock FROM "Product"`)
	if err != nil {
		log.Printf("⚠️  [CHATBOT] Failed to load product catalog: %v", err)
		return ""
	}
	defer rows.Close()

	var sb strings.Builder
	sb.WriteString("PRODUCTS IN STOCK:\n")
	for rows.Next() {
		var name, description string
		var price float64
		var stock int
		if err := rows.Scan(&name, &price, &description, &stock); err != nil {
			continue
		}
		fmt.Fprintf(&sb, "- %s (Price: %.0f, Stock: %d). Details: %s\n", name, price, stock, description)
	}
	return sb.String()
}

func chatSystemPrompt(catalog string) string {
	return fmt.Sprintf(`You are a friendly fashion consultant for the Fashion AI Shop.
Advise the customer based on the following product list. Keep answers short and natural:

%s

Note: if the customer asks about a product that is not on the list, be honest and say it is not in stock.`, catalog)
}
