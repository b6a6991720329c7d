package models

import (
	"strings"
	"time"
)

// PopulationKind tags a population change at write time.
type PopulationKind string

const (
	PopulationStocking   PopulationKind = "stocking"
	PopulationMortality  PopulationKind = "mortality"
	PopulationAdjustment PopulationKind = "adjustment"
	// PopulationUntagged marks rows written before kinds existed; the
	// description and delta heuristics classify them.
	PopulationUntagged PopulationKind = ""
)

var (
	stockingMarkers  = []string{"stocking", "restock"}
	mortalityMarkers = []string{"death", "dead", "mortality"}
)

// PopulationEvent records a signed change in pond population.
type PopulationEvent struct {
	ID          string         `bson:"_id" json:"id"`
	PondID      string         `bson:"pond_id" json:"pond_id"`
	Date        time.Time      `bson:"date" json:"date"`
	Delta       int            `bson:"delta" json:"delta"`
	Total       int            `bson:"total" json:"total"`
	Kind        PopulationKind `bson:"kind,omitempty" json:"kind,omitempty"`
	Description string         `bson:"description" json:"description"`
	Created     Stamp          `bson:"created" json:"created"`
}

// Stamp returns the creation stamp, or the effective date when the event
// carries no precise timestamp.
func (e PopulationEvent) Stamp() Stamp {
	return resolveStamp(e.Date, e.Created)
}

// IsStocking reports whether the event opens a production cycle.
func (e PopulationEvent) IsStocking() bool {
	if e.Kind != PopulationUntagged {
		return e.Kind == PopulationStocking
	}
	if containsAny(e.Description, stockingMarkers) {
		return true
	}
	return e.Delta > 0 && e.Delta == e.Total
}

// IsMortality reports whether the event is a loss.
func (e PopulationEvent) IsMortality() bool {
	if e.Kind != PopulationUntagged {
		return e.Kind == PopulationMortality
	}
	return e.Delta < 0 && containsAny(e.Description, mortalityMarkers)
}

// FeedEvent records feed given to a pond.
type FeedEvent struct {
	ID       string    `bson:"_id" json:"id"`
	PondID   string    `bson:"pond_id" json:"pond_id"`
	Date     time.Time `bson:"date" json:"date"`
	Kg       float64   `bson:"kg" json:"kg"`
	FeedType string    `bson:"feed_type" json:"feed_type"`
	Created  Stamp     `bson:"created" json:"created"`
}

// Stamp returns the creation stamp or the feeding date.
func (e FeedEvent) Stamp() Stamp {
	return resolveStamp(e.Date, e.Created)
}

// HarvestType distinguishes partial from total harvests.
type HarvestType string

const (
	HarvestPartial HarvestType = "partial"
	HarvestTotal   HarvestType = "total"
)

// HarvestEvent records fish taken out of a pond and sold.
type HarvestEvent struct {
	ID         string      `bson:"_id" json:"id"`
	PondID     string      `bson:"pond_id" json:"pond_id"`
	Date       time.Time   `bson:"date" json:"date"`
	Kg         float64     `bson:"kg" json:"kg"`
	Count      int         `bson:"count" json:"count"`
	PricePerKg float64     `bson:"price_per_kg" json:"price_per_kg"`
	Type       HarvestType `bson:"type" json:"type"`
	Created    Stamp       `bson:"created" json:"created"`
}

// Stamp returns the creation stamp or the harvest date.
func (e HarvestEvent) Stamp() Stamp {
	return resolveStamp(e.Date, e.Created)
}

// Revenue is the sale value of the harvest.
func (e HarvestEvent) Revenue() float64 {
	return e.Kg * e.PricePerKg
}

// ExpenseCategory enumerates expense kinds.
type ExpenseCategory string

const (
	ExpenseFeed        ExpenseCategory = "feed"
	ExpenseSeed        ExpenseCategory = "seed"
	ExpenseMedicine    ExpenseCategory = "medicine"
	ExpenseElectricity ExpenseCategory = "electricity"
	ExpenseLabor       ExpenseCategory = "labor"
	ExpenseEquipment   ExpenseCategory = "equipment"
	ExpenseOther       ExpenseCategory = "other"
)

// ParseExpenseCategory maps free text to a known category.
func ParseExpenseCategory(value string) (ExpenseCategory, bool) {
	switch c := ExpenseCategory(strings.ToLower(strings.TrimSpace(value))); c {
	case ExpenseFeed, ExpenseSeed, ExpenseMedicine, ExpenseElectricity, ExpenseLabor, ExpenseEquipment, ExpenseOther:
		return c, true
	default:
		return "", false
	}
}

// ExpenseEvent records money spent. An empty PondID marks a farm-level
// expense that no single pond carries.
type ExpenseEvent struct {
	ID          string          `bson:"_id" json:"id"`
	PondID      string          `bson:"pond_id,omitempty" json:"pond_id,omitempty"`
	Date        time.Time       `bson:"date" json:"date"`
	Category    ExpenseCategory `bson:"category" json:"category"`
	Amount      float64         `bson:"amount" json:"amount"`
	Description string          `bson:"description" json:"description"`
	Created     Stamp           `bson:"created" json:"created"`
}

// Stamp returns the creation stamp or the expense date.
func (e ExpenseEvent) Stamp() Stamp {
	return resolveStamp(e.Date, e.Created)
}

// BiomassSample is a weighing of a handful of fish.
type BiomassSample struct {
	ID        string    `bson:"_id" json:"id"`
	PondID    string    `bson:"pond_id" json:"pond_id"`
	Date      time.Time `bson:"date" json:"date"`
	FishPerKg float64   `bson:"fish_per_kg" json:"fish_per_kg"`
	Note      string    `bson:"note,omitempty" json:"note,omitempty"`
}

func containsAny(text string, markers []string) bool {
	lower := strings.ToLower(text)
	for _, m := range markers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}
