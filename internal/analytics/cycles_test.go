package analytics

import (
	"testing"
	"time"

	"github.com/mamadbah2/aquafarm/internal/domain/models"
)

func TestDetectCycles_OnePerStocking(t *testing.T) {
	events := []models.PopulationEvent{
		stocking(day(time.May, 1, 8), 900),
		stocking(day(time.January, 1, 8), 1000),
		{PondID: pondID, Delta: -40, Total: 960, Description: "dead after storm", Created: models.At(day(time.January, 20, 9))},
		stocking(day(time.March, 1, 8), 1200),
	}

	bounds := DetectCycles(events)
	if len(bounds) != 3 {
		t.Fatalf("expected 3 cycles, got %d", len(bounds))
	}

	wantStarts := []time.Time{day(time.January, 1, 8), day(time.March, 1, 8), day(time.May, 1, 8)}
	for i, b := range bounds {
		if b.Number != i+1 {
			t.Errorf("cycle %d: expected ordinal %d, got %d", i, i+1, b.Number)
		}
		if !b.Window.Start.Time.Equal(wantStarts[i]) {
			t.Errorf("cycle %d: expected start %s, got %s", i, wantStarts[i], b.Window.Start.Time)
		}
	}
	if !bounds[0].Window.End.Time.Equal(bounds[1].Window.Start.Time) {
		t.Error("closed cycle must end where the next one starts")
	}
	if !bounds[2].Window.Open() {
		t.Error("last cycle must be open")
	}
}

func TestDetectCycles_NoStockingNoCycles(t *testing.T) {
	events := []models.PopulationEvent{
		{PondID: pondID, Delta: -5, Total: 95, Description: "mortality", Created: models.At(day(time.January, 2, 8))},
	}
	if got := DetectCycles(events); len(got) != 0 {
		t.Fatalf("expected no cycles, got %d", len(got))
	}
	if got := CycleHistory(models.Snapshot{Pond: testPond(95), Population: events}, day(time.February, 1, 0)); len(got) != 0 {
		t.Fatalf("expected empty history, got %d", len(got))
	}
}

func TestPopulationEvent_StockingDetection(t *testing.T) {
	tests := []struct {
		name  string
		event models.PopulationEvent
		want  bool
	}{
		{"keyword", models.PopulationEvent{Delta: 300, Total: 1300, Description: "Restock from hatchery"}, true},
		{"delta equals total", models.PopulationEvent{Delta: 500, Total: 500}, true},
		{"top up", models.PopulationEvent{Delta: 100, Total: 600, Description: "top up"}, false},
		{"empty pond correction", models.PopulationEvent{Delta: 0, Total: 0}, false},
		{"tagged adjustment wins over equality", models.PopulationEvent{Delta: 500, Total: 500, Kind: models.PopulationAdjustment}, false},
		{"tagged stocking", models.PopulationEvent{Delta: 50, Total: 700, Kind: models.PopulationStocking}, true},
	}
	for _, tt := range tests {
		if got := tt.event.IsStocking(); got != tt.want {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, got)
		}
	}
}

func TestCycleHistory_ActiveFlag(t *testing.T) {
	events := []models.PopulationEvent{
		stocking(day(time.January, 1, 8), 1000),
		stocking(day(time.March, 1, 8), 1000),
	}
	now := day(time.April, 1, 8)

	history := CycleHistory(models.Snapshot{Pond: testPond(1000), Population: events}, now)
	if len(history) != 2 {
		t.Fatalf("expected 2 cycles, got %d", len(history))
	}
	if history[0].Active || !history[1].Active {
		t.Errorf("expected only the last cycle active, got %v/%v", history[0].Active, history[1].Active)
	}
	if history[1].End != nil {
		t.Error("open cycle must have no end")
	}

	history = CycleHistory(models.Snapshot{Pond: testPond(0), Population: events}, now)
	for _, c := range history {
		if c.Active {
			t.Errorf("cycle %d active in an empty pond", c.Number)
		}
	}
}

func TestCycleHistory_IgnoresOtherPonds(t *testing.T) {
	other := stocking(day(time.February, 1, 8), 400)
	other.PondID = "p2"
	snap := models.Snapshot{
		Pond:       testPond(1000),
		Population: []models.PopulationEvent{stocking(day(time.January, 1, 8), 1000), other},
	}

	if got := CycleHistory(snap, day(time.March, 1, 0)); len(got) != 1 {
		t.Fatalf("expected 1 cycle, got %d", len(got))
	}
}

func TestCurrentCycle(t *testing.T) {
	snap := models.Snapshot{Pond: testPond(500)}
	if _, ok := CurrentCycle(snap, day(time.March, 1, 0)); ok {
		t.Fatal("expected no current cycle")
	}

	snap.Population = []models.PopulationEvent{stocking(day(time.January, 1, 8), 500), stocking(day(time.February, 1, 8), 500)}
	c, ok := CurrentCycle(snap, day(time.March, 1, 0))
	if !ok || c.Number != 2 {
		t.Fatalf("expected cycle 2, got %+v (ok=%v)", c, ok)
	}
}

func TestWindow_DateOnlyFallbackIsInclusive(t *testing.T) {
	w := Window{Start: models.On(day(time.January, 1, 0)), End: models.On(day(time.February, 10, 0))}
	if w.Precise() {
		t.Fatal("date-only window must not be precise")
	}

	tests := []struct {
		stamp models.Stamp
		want  bool
	}{
		{models.On(day(time.January, 1, 0)), true},
		{models.At(day(time.February, 10, 23)), true},
		{models.At(day(time.February, 11, 0)), false},
		{models.On(day(time.December, 31, 0).AddDate(-1, 0, 0)), false},
	}
	for i, tt := range tests {
		if got := w.Contains(tt.stamp); got != tt.want {
			t.Errorf("case %d: expected %v, got %v", i, tt.want, got)
		}
	}
}

func TestWindow_PreciseIsHalfOpen(t *testing.T) {
	w := Window{Start: models.At(day(time.January, 1, 8)), End: models.At(day(time.February, 10, 8))}

	if !w.Contains(models.At(day(time.January, 1, 8))) {
		t.Error("start instant must be inside")
	}
	if w.Contains(models.At(day(time.February, 10, 8))) {
		t.Error("end instant must be outside")
	}
	if w.Contains(models.At(day(time.January, 1, 7))) {
		t.Error("instant before start must be outside")
	}
	if !w.Contains(models.On(day(time.February, 10, 0))) {
		t.Error("date-only stamp on the end day falls back to inclusive dates")
	}
}

func TestCycleHistory_DateOnlyHistory(t *testing.T) {
	snap := models.Snapshot{
		Pond: testPond(800),
		Population: []models.PopulationEvent{
			{PondID: pondID, Date: day(time.February, 10, 0), Delta: 800, Total: 800},
			{PondID: pondID, Date: day(time.January, 1, 0), Delta: 1000, Total: 1000},
		},
		Feed: []models.FeedEvent{
			{PondID: pondID, Date: day(time.January, 15, 0), Kg: 10},
			{PondID: pondID, Date: day(time.February, 10, 0), Kg: 4},
		},
	}

	history := CycleHistory(snap, day(time.March, 1, 0))
	if len(history) != 2 {
		t.Fatalf("expected 2 cycles, got %d", len(history))
	}
	if history[0].Precise || history[1].Precise {
		t.Error("date-only cycles must be flagged imprecise")
	}
	approx(t, "first cycle feed", history[0].TotalFeedKg, 14)
	approx(t, "second cycle feed", history[1].TotalFeedKg, 4)
	// The boundary day belongs to both cycles when only dates are known.
	if history[0].InitialPopulation != 1800 {
		t.Errorf("expected initial population 1800, got %d", history[0].InitialPopulation)
	}
	if history[1].InitialPopulation != 800 {
		t.Errorf("expected initial population 800, got %d", history[1].InitialPopulation)
	}
}
