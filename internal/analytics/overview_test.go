package analytics

import (
	"reflect"
	"testing"
	"time"

	"github.com/mamadbah2/aquafarm/internal/domain/models"
)

func TestOverview(t *testing.T) {
	snap := fullSnapshot()
	snap.Samples = []models.BiomassSample{
		{PondID: pondID, Date: day(time.February, 20, 0), FishPerKg: 40},
		{PondID: "p2", Date: day(time.February, 25, 0), FishPerKg: 2},
	}
	now := day(time.March, 1, 8)

	ov := Overview(snap, now)
	if ov.CycleCount != 2 {
		t.Errorf("expected 2 cycles, got %d", ov.CycleCount)
	}
	if ov.CurrentCycle == nil || ov.CurrentCycle.Number != 2 || !ov.CurrentCycle.Active {
		t.Fatalf("unexpected current cycle %+v", ov.CurrentCycle)
	}
	approx(t, "volume", ov.Volume, 60)
	approx(t, "biomass", ov.Biomass.TotalKg, 20)
	if ov.Status.Source != models.SourceBiomass {
		t.Errorf("expected biomass source, got %s", ov.Status.Source)
	}
	approx(t, "weight", ov.Harvest.CurrentWeightG, 25)
	if ov.Harvest.DaysRemaining != 63 {
		t.Errorf("expected 63 days, got %d", ov.Harvest.DaysRemaining)
	}
	if !ov.GeneratedAt.Equal(now) {
		t.Errorf("unexpected generated at %s", ov.GeneratedAt)
	}
}

func TestOverview_Idempotent(t *testing.T) {
	snap := fullSnapshot()
	snap.Samples = []models.BiomassSample{{PondID: pondID, Date: day(time.February, 20, 0), FishPerKg: 40}}
	now := day(time.March, 1, 8)

	first := Overview(snap, now)
	second := Overview(snap, now)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("overview differs between identical calls:\n%+v\n%+v", first, second)
	}
	if !reflect.DeepEqual(snap, fullSnapshotWithSample()) {
		t.Error("overview must not mutate its snapshot")
	}
}

func fullSnapshotWithSample() models.Snapshot {
	snap := fullSnapshot()
	snap.Samples = []models.BiomassSample{{PondID: pondID, Date: day(time.February, 20, 0), FishPerKg: 40}}
	return snap
}
