package models

import "time"

// Pond describes a production pond and its current stock.
type Pond struct {
	ID         string     `bson:"_id" json:"id"`
	Name       string     `bson:"name" json:"name"`
	Length     float64    `bson:"length" json:"length"`
	Width      float64    `bson:"width" json:"width"`
	Depth      float64    `bson:"depth" json:"depth"`
	Population int        `bson:"population" json:"population"`
	StockedAt  *time.Time `bson:"stocked_at,omitempty" json:"stocked_at,omitempty"`
	Status     string     `bson:"status" json:"status"`
	CreatedAt  time.Time  `bson:"created_at" json:"created_at"`
}

// Volume returns the water volume in cubic meters.
func (p Pond) Volume() float64 {
	return p.Length * p.Width * p.Depth
}

// Snapshot bundles one pond with every event collection recorded for it.
// Collections need no particular order.
type Snapshot struct {
	Pond       Pond              `json:"pond"`
	Population []PopulationEvent `json:"population"`
	Feed       []FeedEvent       `json:"feed"`
	Harvests   []HarvestEvent    `json:"harvests"`
	Expenses   []ExpenseEvent    `json:"expenses"`
	Samples    []BiomassSample   `json:"samples"`
	Stock      []StockMovement   `json:"stock"`
}
