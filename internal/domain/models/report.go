package models

import "time"

// PondReport is the weekly digest of one pond persisted to MongoDB.
type PondReport struct {
	PondID       string        `bson:"pond_id" json:"pond_id"`
	WeekOf       time.Time     `bson:"week_of" json:"week_of"`
	Population   int           `bson:"population" json:"population"`
	BiomassKg    float64       `bson:"biomass_kg" json:"biomass_kg"`
	Status       UnifiedStatus `bson:"status" json:"status"`
	Cycle        *CycleSummary `bson:"cycle,omitempty" json:"cycle,omitempty"`
	FeedWeekKg   float64       `bson:"feed_week_kg" json:"feed_week_kg"`
	AppetiteDrop bool          `bson:"appetite_drop" json:"appetite_drop"`
	CreatedAt    time.Time     `bson:"created_at" json:"created_at"`
}
