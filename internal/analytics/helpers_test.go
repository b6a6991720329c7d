package analytics

import (
	"math"
	"testing"
	"time"

	"github.com/mamadbah2/aquafarm/internal/domain/models"
)

const pondID = "p1"

func day(month time.Month, d, hour int) time.Time {
	return time.Date(2024, month, d, hour, 0, 0, 0, time.UTC)
}

func testPond(population int) models.Pond {
	return models.Pond{ID: pondID, Name: "North", Length: 10, Width: 5, Depth: 1.2, Population: population}
}

func stocking(at time.Time, count int) models.PopulationEvent {
	return models.PopulationEvent{PondID: pondID, Date: models.DateOf(at), Delta: count, Total: count, Description: "initial stocking", Created: models.At(at)}
}

func feedAt(at time.Time, kg float64, feedType string) models.FeedEvent {
	return models.FeedEvent{PondID: pondID, Date: models.DateOf(at), Kg: kg, FeedType: feedType, Created: models.At(at)}
}

func approx(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-6 {
		t.Errorf("%s: expected %.6f, got %.6f", name, want, got)
	}
}
