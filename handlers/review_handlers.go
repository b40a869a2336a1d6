package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"shopai/gemini"
	"shopai/models"
)

const (
	sentimentTimeout     = 20 * time.Second
	sentimentReviewLimit = 50
)

const (
	sentimentPositive = "Positive"
	sentimentNegative = "Negative"
	sentimentNeutral  = "Neutral"
)

// HandleAnalyzeReviews classifies the latest product reviews with Gemini and
// aggregates sentiment percentages. When the AI answer is missing or
// unparseable, each review falls back to its star rating.
// GET /analyze-reviews
func (h *Handler) HandleAnalyzeReviews(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	query := `
        SELECT r.id, r.content, r.rating, p.name AS product_name
        FROM "Review" r
        JOIN "Product" p ON r."productId" = p.id
        ORDER BY r.id DESC
        LIMIT $1
    `
	rows, err := h.db.Query(ctx, query, sentimentReviewLimit)
	if err != nil {
		log.Printf("❌ [REVIEWS] Query error: %v", err)
		return c.JSON(fiber.Map{
			"status": "error",
			"error":  "Failed to load reviews",
		})
	}
	defer rows.Close()

	var reviews []models.ReviewDetail
	for rows.Next() {
		var r models.ReviewDetail
		if err := rows.Scan(&r.ID, &r.Content, &r.Rating, &r.ProductName); err != nil {
			log.Printf("⚠️  [REVIEWS] Scan error: %v", err)
			continue
		}
		reviews = append(reviews, r)
	}

	if len(reviews) == 0 {
		return c.JSON(fiber.Map{
			"status":   "success",
			"stats":    models.SentimentStats{},
			"warnings": []string{},
			"details":  []models.ReviewDetail{},
		})
	}

	stats, warnings := aggregateSentiments(reviews, h.classifyReviews(reviews))

	return c.JSON(fiber.Map{
		"status":   "success",
		"stats":    stats,
		"warnings": warnings,
		"details":  reviews,
	})
}

// aggregateSentiments merges the AI verdicts with the rating fallback,
// filling in each review's Sentiment in place, and returns the percentage
// stats plus one warning per product with at least two negative reviews.
func aggregateSentiments(reviews []models.ReviewDetail, verdicts map[int]string) (models.SentimentStats, []string) {
	if len(reviews) == 0 {
		return models.SentimentStats{}, []string{}
	}

	counts := make(map[string]int, 3)
	negativeByProduct := make(map[string]int)
	for i := range reviews {
		r := &reviews[i]
		sentiment, ok := verdicts[r.ID]
		if !ok {
			sentiment = ratingSentiment(r.Rating)
		}
		sentiment = normalizeSentiment(sentiment)

		r.Sentiment = sentiment
		counts[sentiment]++
		if sentiment == sentimentNegative {
			negativeByProduct[r.ProductName]++
		}
	}

	total := float64(len(reviews))
	stats := models.SentimentStats{
		Positive: round1(float64(counts[sentimentPositive]) / total * 100),
		Negative: round1(float64(counts[sentimentNegative]) / total * 100),
		Neutral:  round1(float64(counts[sentimentNeutral]) / total * 100),
	}

	warnings := make([]string, 0)
	for name, count := range negativeByProduct {
		if count >= 2 {
			warnings = append(warnings, fmt.Sprintf("Product '%s' is drawing complaints (%d negative reviews)! Check its quality.", name, count))
		}
	}
	sort.Strings(warnings)

	return stats, warnings
}

// classifyReviews sends the review batch to Gemini and parses the strict
// JSON-array reply. Any failure returns an empty map so the caller falls
// back to ratings.
func (h *Handler) classifyReviews(reviews []models.ReviewDetail) map[int]string {
	type reviewInput struct {
		ID      int    `json:"id"`
		Content string `json:"content"`
	}
	batch := make([]reviewInput, len(reviews))
	for i, r := range reviews {
		batch[i] = reviewInput{ID: r.ID, Content: r.Content}
	}
	payload, err := json.Marshal(batch)
	if err != nil {
		return nil
	}

	prompt := fmt.Sprintf(`You are a professional sentiment analysis AI.
Read the following list of reviews and classify each one with exactly one of three labels: 'Positive', 'Negative' or 'Neutral'.
RETURN ONLY A BARE JSON ARRAY (no markdown, no extra explanation), for example:
[ {"id": 1, "sentiment": "Positive"}, {"id": 2, "sentiment": "Negative"} ]

Input data:
%s`, payload)

	ctx, cancel := context.WithTimeout(context.Background(), sentimentTimeout)
	defer cancel()

	raw, err := h.ai.Generate(ctx, prompt)
	if err != nil {
		log.Printf("⚠️  [REVIEWS] Gemini error, falling back to ratings: %v", err)
		return nil
	}

	var results []struct {
		ID        int    `json:"id"`
		Sentiment string `json:"sentiment"`
	}
	if err := json.Unmarshal([]byte(gemini.StripCodeFence(raw)), &results); err != nil {
		log.Printf("⚠️  [REVIEWS] Unparseable Gemini reply, falling back to ratings: %v", err)
		return nil
	}

	sentiments := make(map[int]string, len(results))
	for _, r := range results {
		sentiments[r.ID] = r.Sentiment
	}
	return sentiments
}

// ratingSentiment is the per-review fallback when the AI gave no verdict.
func ratingSentiment(rating int) string {
	switch {
	case rating >= 4:
		return sentimentPositive
	case rating <= 2:
		return sentimentNegative
	default:
		return sentimentNeutral
	}
}

// normalizeSentiment maps free-form model output onto the three labels.
func normalizeSentiment(s string) string {
	switch {
	case strings.HasPrefix(strings.ToLower(s), "pos"):
		return sentimentPositive
	case strings.HasPrefix(strings.ToLower(s), "neg"):
		return sentimentNegative
	default:
		return sentimentNeutral
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
