package models

// OrderStatusCompleted marks fulfilled orders, the only ones counted in
// revenue and segmentation.
const OrderStatusCompleted = "COMPLETED"

// Product is a catalog row. Read-only reference data for every endpoint.
type Product struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Stock       int     `json:"stock"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
}
