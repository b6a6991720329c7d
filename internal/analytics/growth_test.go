package analytics

import (
	"testing"
	"time"

	"github.com/mamadbah2/aquafarm/internal/domain/models"
)

func TestPredictHarvestDate(t *testing.T) {
	now := day(time.June, 1, 14)
	today := day(time.June, 1, 0)

	tests := []struct {
		name     string
		sample   *models.BiomassSample
		days     int
		weight   float64
		achieved bool
	}{
		{"juvenile default", nil, 73, 5, false},
		{"fifty grams", &models.BiomassSample{FishPerKg: 20}, 50, 50, false},
		{"odd gap rounds up", &models.BiomassSample{FishPerKg: 1000.0 / 149}, 1, 149, false},
		{"exactly at target", &models.BiomassSample{FishPerKg: 1000.0 / 150}, 0, 150, true},
		{"above target", &models.BiomassSample{FishPerKg: 4}, 0, 250, true},
	}
	for _, tt := range tests {
		got := PredictHarvestDate(tt.sample, now)
		if got.DaysRemaining != tt.days {
			t.Errorf("%s: expected %d days, got %d", tt.name, tt.days, got.DaysRemaining)
		}
		if got.TargetReached != tt.achieved {
			t.Errorf("%s: expected reached=%v", tt.name, tt.achieved)
		}
		approx(t, tt.name+" weight", got.CurrentWeightG, tt.weight)
		if want := today.AddDate(0, 0, tt.days); !got.ProjectedDate.Equal(want) {
			t.Errorf("%s: expected date %s, got %s", tt.name, want, got.ProjectedDate)
		}
	}
}
