package analytics

import (
	"testing"
	"time"

	"github.com/mamadbah2/aquafarm/internal/domain/models"
)

func fullSnapshot() models.Snapshot {
	return models.Snapshot{
		Pond: testPond(800),
		Population: []models.PopulationEvent{
			stocking(day(time.January, 1, 8), 1000),
			{PondID: pondID, Delta: 200, Total: 1200, Description: "top up", Created: models.At(day(time.January, 5, 8))},
			{PondID: pondID, Delta: -50, Total: 1150, Description: "dead fish", Created: models.At(day(time.January, 10, 8))},
			{PondID: pondID, Delta: 800, Total: 800, Kind: models.PopulationStocking, Created: models.At(day(time.February, 10, 8))},
		},
		Feed: []models.FeedEvent{
			feedAt(day(time.January, 2, 7), 10, "Pellet A"),
			feedAt(day(time.January, 3, 7), 20, "pellet a"),
			feedAt(day(time.January, 4, 7), 5, "crumble"),
			feedAt(day(time.February, 11, 7), 8, "pellet a"),
		},
		Harvests: []models.HarvestEvent{
			{PondID: pondID, Kg: 60, Count: 1100, PricePerKg: 50, Type: models.HarvestTotal, Created: models.At(day(time.February, 1, 10))},
		},
		Expenses: []models.ExpenseEvent{
			{PondID: pondID, Category: models.ExpenseMedicine, Amount: 100, Created: models.At(day(time.January, 3, 12))},
			{PondID: pondID, Category: models.ExpenseFeed, Amount: 999, Created: models.At(day(time.January, 3, 12))},
			{Category: models.ExpenseElectricity, Amount: 500, Created: models.At(day(time.January, 3, 12))},
		},
		Stock: []models.StockMovement{
			{FeedType: "pellet a", Kind: models.StockPurchase, QuantityKg: 100, UnitPrice: 10},
			{FeedType: "Pellet A", Kind: models.StockPurchase, QuantityKg: 300, UnitPrice: 14},
			{FeedType: "pellet a", Kind: models.StockUsage, QuantityKg: 50, UnitPrice: 99},
		},
	}
}

func TestSummarizeCycle_ClosedCycle(t *testing.T) {
	history := CycleHistory(fullSnapshot(), day(time.March, 1, 8))
	if len(history) != 2 {
		t.Fatalf("expected 2 cycles, got %d", len(history))
	}
	c := history[0]

	if c.Number != 1 || c.Active {
		t.Errorf("unexpected identity: number=%d active=%v", c.Number, c.Active)
	}
	if c.End == nil || !c.End.Equal(day(time.February, 10, 8)) {
		t.Fatalf("unexpected end %v", c.End)
	}
	if c.DurationDays != 40 {
		t.Errorf("expected 40 days, got %d", c.DurationDays)
	}
	if c.InitialPopulation != 1200 {
		t.Errorf("expected initial population 1200, got %d", c.InitialPopulation)
	}
	if c.FinalPopulation != 1100 {
		t.Errorf("expected final population 1100, got %d", c.FinalPopulation)
	}
	if c.Mortality != 50 {
		t.Errorf("expected mortality 50, got %d", c.Mortality)
	}
	approx(t, "feed kg", c.TotalFeedKg, 35)
	approx(t, "feed cost", c.TotalFeedCost, 390)
	approx(t, "harvest kg", c.TotalHarvestKg, 60)
	approx(t, "revenue", c.TotalRevenue, 3000)
	approx(t, "expenses", c.TotalExpenses, 100)
	approx(t, "net profit", c.NetProfit, 2510)
	approx(t, "fcr", c.FCR, 35.0/60.0)
	approx(t, "survival", c.SurvivalRate, 1100.0/1200.0*100)
	if !c.LastInput.Equal(day(time.February, 1, 10)) {
		t.Errorf("expected last input at harvest, got %s", c.LastInput)
	}
	if !c.Precise {
		t.Error("expected precise window")
	}
}

func TestSummarizeCycle_OpenCycle(t *testing.T) {
	now := day(time.March, 1, 8)
	history := CycleHistory(fullSnapshot(), now)
	c := history[1]

	if !c.Active {
		t.Error("expected the open cycle to be active")
	}
	if c.DurationDays != 20 {
		t.Errorf("expected 20 days, got %d", c.DurationDays)
	}
	approx(t, "feed kg", c.TotalFeedKg, 8)
	approx(t, "feed cost", c.TotalFeedCost, 104)
	approx(t, "net profit", c.NetProfit, -104)
	if c.FCR != 0 {
		t.Errorf("expected zero fcr without harvest, got %f", c.FCR)
	}
	if !c.LastInput.Equal(c.Start) {
		t.Errorf("expected last input to fall back to start, got %s", c.LastInput)
	}
}

func TestSummarizeCycle_ZeroHarvestGivesZeroFCR(t *testing.T) {
	snap := models.Snapshot{
		Pond:       testPond(1000),
		Population: []models.PopulationEvent{stocking(day(time.January, 1, 8), 1000)},
		Feed:       []models.FeedEvent{feedAt(day(time.January, 2, 8), 50, "pellet")},
	}

	c, ok := CurrentCycle(snap, day(time.January, 10, 8))
	if !ok {
		t.Fatal("expected a cycle")
	}
	approx(t, "feed kg", c.TotalFeedKg, 50)
	if c.FCR != 0 {
		t.Errorf("expected FCR exactly 0, got %v", c.FCR)
	}
	if c.TotalFeedCost != 0 {
		t.Errorf("feed without purchase records must cost nothing, got %f", c.TotalFeedCost)
	}
}

func TestSummarizeCycle_SurvivalRateNotClamped(t *testing.T) {
	snap := models.Snapshot{
		Pond:       testPond(0),
		Population: []models.PopulationEvent{stocking(day(time.January, 1, 8), 1000)},
		Harvests: []models.HarvestEvent{
			{PondID: pondID, Kg: 200, Count: 1100, PricePerKg: 10, Created: models.At(day(time.March, 1, 8))},
		},
	}

	c, _ := CurrentCycle(snap, day(time.March, 2, 8))
	approx(t, "survival", c.SurvivalRate, 110)
}

func TestSummarizeCycle_SurvivalRateZeroWithoutStock(t *testing.T) {
	snap := models.Snapshot{
		Pond: testPond(0),
		Population: []models.PopulationEvent{
			{PondID: pondID, Kind: models.PopulationStocking, Created: models.At(day(time.January, 1, 8))},
		},
		Harvests: []models.HarvestEvent{
			{PondID: pondID, Kg: 10, Count: 40, Created: models.At(day(time.January, 9, 8))},
		},
	}

	c, _ := CurrentCycle(snap, day(time.January, 10, 8))
	if c.InitialPopulation != 0 || c.SurvivalRate != 0 {
		t.Errorf("expected zero survival, got initial=%d sr=%f", c.InitialPopulation, c.SurvivalRate)
	}
}

func TestSummarizeCycle_MinimumOneDay(t *testing.T) {
	start := day(time.January, 1, 8)
	snap := models.Snapshot{Pond: testPond(10), Population: []models.PopulationEvent{stocking(start, 10)}}

	c, _ := CurrentCycle(snap, start)
	if c.DurationDays != 1 {
		t.Errorf("expected 1 day, got %d", c.DurationDays)
	}

	c, _ = CurrentCycle(snap, start.Add(25*time.Hour))
	if c.DurationDays != 2 {
		t.Errorf("expected partial days to round up to 2, got %d", c.DurationDays)
	}
}

func TestFeedUnitPrices(t *testing.T) {
	prices := FeedUnitPrices(fullSnapshot().Stock)
	approx(t, "pellet a", prices["pellet a"], 13)
	if _, ok := prices["crumble"]; ok {
		t.Error("feed types without purchases must have no price")
	}

	zero := FeedUnitPrices([]models.StockMovement{{FeedType: "x", Kind: models.StockPurchase}})
	if len(zero) != 0 {
		t.Errorf("zero-quantity purchases must be ignored, got %v", zero)
	}
}

func TestCycleMetrics_NonNegativeFCR(t *testing.T) {
	for _, c := range CycleHistory(fullSnapshot(), day(time.March, 1, 8)) {
		if c.FCR < 0 {
			t.Errorf("cycle %d: negative fcr %f", c.Number, c.FCR)
		}
	}
}
