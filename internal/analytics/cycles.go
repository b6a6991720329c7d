package analytics

import (
	"sort"
	"time"

	"github.com/mamadbah2/aquafarm/internal/domain/models"
)

// Boundary delimits one production cycle.
type Boundary struct {
	Number   int
	Window   Window
	Stocking models.PopulationEvent
}

// DetectCycles splits a population history into cycles. Each stocking event
// opens a cycle that ends at the next stocking event; the last cycle stays
// open. A history without stocking events has no cycles.
func DetectCycles(events []models.PopulationEvent) []Boundary {
	var starts []models.PopulationEvent
	for _, e := range chronological(events) {
		if e.IsStocking() {
			starts = append(starts, e)
		}
	}

	bounds := make([]Boundary, 0, len(starts))
	for i, e := range starts {
		b := Boundary{
			Number:   i + 1,
			Window:   Window{Start: e.Stamp()},
			Stocking: e,
		}
		if i+1 < len(starts) {
			b.Window.End = starts[i+1].Stamp()
		}
		bounds = append(bounds, b)
	}
	return bounds
}

// CycleHistory summarizes every cycle of the snapshot's pond, oldest first.
func CycleHistory(snap models.Snapshot, now time.Time) []models.CycleSummary {
	bounds := DetectCycles(ownPopulation(snap))
	out := make([]models.CycleSummary, 0, len(bounds))
	for _, b := range bounds {
		out = append(out, SummarizeCycle(snap, b, now))
	}
	return out
}

// CurrentCycle returns the most recent cycle, active or not.
func CurrentCycle(snap models.Snapshot, now time.Time) (models.CycleSummary, bool) {
	history := CycleHistory(snap, now)
	if len(history) == 0 {
		return models.CycleSummary{}, false
	}
	return history[len(history)-1], true
}

// chronological orders events by creation stamp, keeping input order for ties.
func chronological(events []models.PopulationEvent) []models.PopulationEvent {
	sorted := make([]models.PopulationEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Stamp().Time.Before(sorted[j].Stamp().Time)
	})
	return sorted
}

func ownPopulation(snap models.Snapshot) []models.PopulationEvent {
	out := make([]models.PopulationEvent, 0, len(snap.Population))
	for _, e := range snap.Population {
		if e.PondID == snap.Pond.ID {
			out = append(out, e)
		}
	}
	return out
}
