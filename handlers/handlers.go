package handlers

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"shopai/gemini"
)

// Every store call runs a single attempt under this timeout.
const dbTimeout = 10 * time.Second

// Handler bundles the dependencies every endpoint needs. It is constructed
// once in main and shared across requests; both members are safe for
// concurrent use.
type Handler struct {
	db *pgxpool.Pool
	ai *gemini.Client
}

// New creates the shared handler.
func New(db *pgxpool.Pool, ai *gemini.Client) *Handler {
	return &Handler{db: db, ai: ai}
}
