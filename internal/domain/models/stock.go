package models

import "time"

// StockMovementKind separates feed purchases from feed drawn out of the store.
type StockMovementKind string

const (
	StockPurchase StockMovementKind = "purchase"
	StockUsage    StockMovementKind = "usage"
)

// StockMovement captures feed entering or leaving the farm store.
type StockMovement struct {
	Date       time.Time         `json:"date"`
	FeedType   string            `json:"feed_type"`
	Kind       StockMovementKind `json:"kind"`
	QuantityKg float64           `json:"quantity_kg"`
	UnitPrice  float64           `json:"unit_price"`
}
