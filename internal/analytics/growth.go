package analytics

import (
	"math"
	"time"

	"github.com/mamadbah2/aquafarm/internal/domain/models"
)

const (
	dailyGrowthG    = 2.0
	targetWeightG   = 150.0
	juvenileWeightG = 5.0
)

// PredictHarvestDate extrapolates the latest sample at a fixed daily growth
// until market weight. Ponds never sampled are assumed to hold juveniles.
func PredictHarvestDate(sample *models.BiomassSample, now time.Time) models.HarvestPrediction {
	weight := averageWeightG(sample, juvenileWeightG)
	today := models.DateOf(now)

	if weight >= targetWeightG {
		return models.HarvestPrediction{
			ProjectedDate:  today,
			CurrentWeightG: weight,
			TargetReached:  true,
		}
	}

	days := int(math.Ceil((targetWeightG - weight) / dailyGrowthG))
	return models.HarvestPrediction{
		DaysRemaining:  days,
		ProjectedDate:  today.AddDate(0, 0, days),
		CurrentWeightG: weight,
	}
}

// averageWeightG returns the mean fish weight in grams implied by the sample.
// Rounding to a micro-gram keeps 1000/(1000/w) landing back on w.
func averageWeightG(sample *models.BiomassSample, fallback float64) float64 {
	if !usable(sample) {
		return fallback
	}
	return roundTo(1000/sample.FishPerKg, 6)
}
