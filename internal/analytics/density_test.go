package analytics

import (
	"testing"
	"time"

	"github.com/mamadbah2/aquafarm/internal/domain/models"
)

func TestUnifiedStatus_CountFallbackWithoutSample(t *testing.T) {
	st := UnifiedStatus(testPond(3000), nil)

	approx(t, "count density", st.CountDensity, 50)
	if st.Status != models.DensitySafe {
		t.Errorf("expected safe, got %s", st.Status)
	}
	if st.Source != models.SourceCount {
		t.Errorf("expected count source, got %s", st.Source)
	}
	if st.BiomassDensity != 0 {
		t.Errorf("expected zero biomass density, got %f", st.BiomassDensity)
	}
}

func TestUnifiedStatus_BiomassTakesPrecedence(t *testing.T) {
	pond := testPond(6000) // 100 fish/m3 would be caution by count
	sample := &models.BiomassSample{PondID: pondID, FishPerKg: 20}

	st := UnifiedStatus(pond, sample)
	if st.Source != models.SourceBiomass {
		t.Fatalf("expected biomass source, got %s", st.Source)
	}
	approx(t, "biomass density", st.BiomassDensity, 5)
	approx(t, "count density", st.CountDensity, 100)
	if st.Status != models.DensitySafe {
		t.Errorf("expected safe, got %s", st.Status)
	}
}

func TestUnifiedStatus_NonPositiveRatioFallsBackToCount(t *testing.T) {
	for _, ratio := range []float64{0, -3} {
		st := UnifiedStatus(testPond(3000), &models.BiomassSample{FishPerKg: ratio})
		if st.Source != models.SourceCount {
			t.Errorf("ratio %.0f: expected count source, got %s", ratio, st.Source)
		}
	}
}

func TestUnifiedStatus_Thresholds(t *testing.T) {
	tests := []struct {
		name       string
		population int
		fishPerKg  float64
		want       models.DensityStatus
	}{
		{"count at safe limit", 3000, 0, models.DensitySafe},
		{"count just over safe", 3060, 0, models.DensityCaution},
		{"count at caution limit", 6000, 0, models.DensityCaution},
		{"count over caution", 6060, 0, models.DensityAtRisk},
		{"biomass at safe limit", 600, 1, models.DensitySafe},
		{"biomass caution", 1200, 1, models.DensityCaution},
		{"biomass at risk", 1260, 1, models.DensityAtRisk},
	}
	for _, tt := range tests {
		var sample *models.BiomassSample
		if tt.fishPerKg > 0 {
			sample = &models.BiomassSample{FishPerKg: tt.fishPerKg}
		}
		if got := UnifiedStatus(testPond(tt.population), sample).Status; got != tt.want {
			t.Errorf("%s: expected %s, got %s", tt.name, tt.want, got)
		}
	}
}

func TestEstimateBiomass(t *testing.T) {
	sample := &models.BiomassSample{FishPerKg: 20, Date: day(time.March, 1, 0)}
	b := EstimateBiomass(testPond(3000), sample)

	approx(t, "avg weight", b.AvgWeightKg, 0.05)
	approx(t, "total", b.TotalKg, 150)
	approx(t, "density", b.DensityKgM3, 2.5)
	if b.SampleDate == nil || !b.SampleDate.Equal(sample.Date) {
		t.Errorf("expected sample date to be reported")
	}
}

func TestEstimateBiomass_ZeroVolume(t *testing.T) {
	pond := testPond(3000)
	pond.Depth = 0

	b := EstimateBiomass(pond, &models.BiomassSample{FishPerKg: 20})
	approx(t, "total", b.TotalKg, 150)
	if b.DensityKgM3 != 0 {
		t.Errorf("expected zero density for zero volume, got %f", b.DensityKgM3)
	}
	if CountDensity(pond) != 0 {
		t.Errorf("expected zero count density for zero volume")
	}
}

func TestEstimateBiomass_UnknownWithoutSample(t *testing.T) {
	if b := EstimateBiomass(testPond(3000), nil); b != (models.Biomass{}) {
		t.Errorf("expected zero biomass, got %+v", b)
	}
}

func TestLatestSample(t *testing.T) {
	if LatestSample(nil) != nil {
		t.Fatal("expected nil for no samples")
	}

	samples := []models.BiomassSample{
		{ID: "b", Date: day(time.March, 5, 0), FishPerKg: 30},
		{ID: "a", Date: day(time.March, 1, 0), FishPerKg: 50},
		{ID: "c", Date: day(time.March, 5, 0), FishPerKg: 25},
	}
	got := LatestSample(samples)
	if got == nil || got.ID != "c" {
		t.Fatalf("expected sample c, got %+v", got)
	}

	got.FishPerKg = 1
	if samples[2].FishPerKg != 25 {
		t.Error("LatestSample must not alias the input slice")
	}
}
