package analytics

import (
	"github.com/mamadbah2/aquafarm/internal/domain/models"
)

const (
	biomassSafeMaxKgM3    = 10.0
	biomassCautionMaxKgM3 = 20.0
	countSafeMaxPerM3     = 50.0
	countCautionMaxPerM3  = 100.0
)

// LatestSample returns the most recent sample, or nil when there is none.
// Samples sharing a date resolve to the one listed last.
func LatestSample(samples []models.BiomassSample) *models.BiomassSample {
	var latest *models.BiomassSample
	for i := range samples {
		s := &samples[i]
		if latest == nil || !s.Date.Before(latest.Date) {
			latest = s
		}
	}
	if latest == nil {
		return nil
	}
	out := *latest
	return &out
}

// EstimateBiomass converts the latest sample into standing stock. Without a
// usable sample the biomass is unknown and every figure is zero.
func EstimateBiomass(pond models.Pond, sample *models.BiomassSample) models.Biomass {
	if !usable(sample) {
		return models.Biomass{}
	}

	avg := 1 / sample.FishPerKg
	total := float64(pond.Population) * avg
	date := sample.Date

	return models.Biomass{
		TotalKg:     total,
		DensityKgM3: ratio(total, positive(pond.Volume())),
		AvgWeightKg: avg,
		SampleDate:  &date,
	}
}

// CountDensity is the number of fish per cubic meter.
func CountDensity(pond models.Pond) float64 {
	return ratio(float64(pond.Population), positive(pond.Volume()))
}

// UnifiedStatus classifies the pond by biomass density when a usable sample
// exists and by head count otherwise. An empty or dimensionless pond has zero
// biomass density, which classifies the same as its zero count density.
func UnifiedStatus(pond models.Pond, sample *models.BiomassSample) models.UnifiedStatus {
	out := models.UnifiedStatus{
		CountDensity:   CountDensity(pond),
		BiomassDensity: EstimateBiomass(pond, sample).DensityKgM3,
	}

	if usable(sample) {
		out.Source = models.SourceBiomass
		out.Status = classify(out.BiomassDensity, biomassSafeMaxKgM3, biomassCautionMaxKgM3)
		return out
	}

	out.Source = models.SourceCount
	out.Status = classify(out.CountDensity, countSafeMaxPerM3, countCautionMaxPerM3)
	return out
}

func classify(density, safeMax, cautionMax float64) models.DensityStatus {
	switch {
	case density <= safeMax:
		return models.DensitySafe
	case density <= cautionMax:
		return models.DensityCaution
	default:
		return models.DensityAtRisk
	}
}

// positive maps non-positive volumes to zero so ratio yields zero.
func positive(v float64) float64 {
	if v <= 0 {
		return 0
	}
	return v
}

func usable(sample *models.BiomassSample) bool {
	return sample != nil && sample.FishPerKg > 0
}
