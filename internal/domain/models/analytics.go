package models

import "time"

// DensityStatus classifies stocking pressure in a pond.
type DensityStatus string

const (
	DensitySafe    DensityStatus = "safe"
	DensityCaution DensityStatus = "caution"
	DensityAtRisk  DensityStatus = "at-risk"
)

// DensitySource names the signal a density status was derived from.
type DensitySource string

const (
	SourceBiomass DensitySource = "biomass"
	SourceCount   DensitySource = "count"
)

// Biomass is the estimated standing stock of a pond.
type Biomass struct {
	TotalKg     float64    `json:"total_kg"`
	DensityKgM3 float64    `json:"density_kg_m3"`
	AvgWeightKg float64    `json:"avg_weight_kg"`
	SampleDate  *time.Time `json:"sample_date,omitempty"`
}

// UnifiedStatus merges count and biomass density into one classification.
type UnifiedStatus struct {
	Status         DensityStatus `bson:"status" json:"status"`
	CountDensity   float64       `bson:"count_density" json:"count_density"`
	BiomassDensity float64       `bson:"biomass_density" json:"biomass_density"`
	Source         DensitySource `bson:"source" json:"source"`
}

// CycleSummary holds the derived metrics of one production cycle.
type CycleSummary struct {
	PondID            string     `bson:"pond_id" json:"pond_id"`
	Number            int        `bson:"number" json:"number"`
	Start             time.Time  `bson:"start" json:"start"`
	End               *time.Time `bson:"end,omitempty" json:"end,omitempty"`
	DurationDays      int        `bson:"duration_days" json:"duration_days"`
	InitialPopulation int        `bson:"initial_population" json:"initial_population"`
	FinalPopulation   int        `bson:"final_population" json:"final_population"`
	TotalFeedKg       float64    `bson:"total_feed_kg" json:"total_feed_kg"`
	TotalFeedCost     float64    `bson:"total_feed_cost" json:"total_feed_cost"`
	TotalHarvestKg    float64    `bson:"total_harvest_kg" json:"total_harvest_kg"`
	TotalRevenue      float64    `bson:"total_revenue" json:"total_revenue"`
	TotalExpenses     float64    `bson:"total_expenses" json:"total_expenses"`
	NetProfit         float64    `bson:"net_profit" json:"net_profit"`
	FCR               float64    `bson:"fcr" json:"fcr"`
	SurvivalRate      float64    `bson:"survival_rate" json:"survival_rate"`
	Mortality         int        `bson:"mortality" json:"mortality"`
	Active            bool       `bson:"active" json:"active"`
	LastInput         time.Time  `bson:"last_input" json:"last_input"`
	// Precise is false when the window fell back to calendar dates.
	Precise bool `bson:"precise" json:"precise"`
}

// FeedProgress labels today's feeding against the target.
type FeedProgress string

const (
	FeedInsufficient FeedProgress = "insufficient"
	FeedSufficient   FeedProgress = "sufficient"
	FeedExcess       FeedProgress = "excess"
)

// FeedSlot is one planned feeding of the day.
type FeedSlot struct {
	Label string  `json:"label"`
	Time  string  `json:"time"`
	Kg    float64 `json:"kg"`
}

// NextFeed names the upcoming slot.
type NextFeed string

const (
	NextMorning         NextFeed = "morning"
	NextEvening         NextFeed = "evening"
	NextTomorrowMorning NextFeed = "tomorrow-morning"
	NextComplete        NextFeed = "complete"
)

// FeedSchedule is the fixed two-slot daily plan.
type FeedSchedule struct {
	Slots []FeedSlot `json:"slots"`
	Next  NextFeed   `json:"next"`
}

// FeedStatus compares today's feeding with the biomass-based target.
type FeedStatus struct {
	TargetKg    float64      `json:"target_kg"`
	ActualKg    float64      `json:"actual_kg"`
	RemainingKg float64      `json:"remaining_kg"`
	ProgressPct float64      `json:"progress_pct"`
	FeedRatePct float64      `json:"feed_rate_pct"`
	Status      FeedProgress `json:"status"`
	Schedule    FeedSchedule `json:"schedule"`
}

// AppetiteReport compares recent feeding with the preceding days.
type AppetiteReport struct {
	HasDrop     bool    `json:"has_drop"`
	DropPercent float64 `json:"drop_percent"`
	Diff        float64 `json:"diff"`
	RecentAvg   float64 `json:"recent_avg"`
	PriorAvg    float64 `json:"prior_avg"`
}

// HarvestPrediction projects when fish reach market weight.
type HarvestPrediction struct {
	DaysRemaining  int       `json:"days_remaining"`
	ProjectedDate  time.Time `json:"projected_date"`
	CurrentWeightG float64   `json:"current_weight_g"`
	TargetReached  bool      `json:"target_reached"`
}

// PondOverview gathers every derived value for one pond.
type PondOverview struct {
	Pond         Pond              `json:"pond"`
	Volume       float64           `json:"volume"`
	Biomass      Biomass           `json:"biomass"`
	Status       UnifiedStatus     `json:"status"`
	CurrentCycle *CycleSummary     `json:"current_cycle,omitempty"`
	CycleCount   int               `json:"cycle_count"`
	Feed         FeedStatus        `json:"feed"`
	Appetite     AppetiteReport    `json:"appetite"`
	Harvest      HarvestPrediction `json:"harvest"`
	GeneratedAt  time.Time         `json:"generated_at"`
}
