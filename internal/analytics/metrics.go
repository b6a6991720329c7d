package analytics

import (
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/aquafarm/internal/domain/models"
)

// FeedUnitPrices returns the weighted average purchase price per feed type:
// total purchase value divided by total quantity purchased. Usage movements
// do not move the price.
func FeedUnitPrices(movements []models.StockMovement) map[string]float64 {
	qty := make(map[string]decimal.Decimal)
	value := make(map[string]decimal.Decimal)

	for _, m := range movements {
		if m.Kind != models.StockPurchase || m.QuantityKg <= 0 {
			continue
		}
		key := feedKey(m.FeedType)
		q := decimal.NewFromFloat(m.QuantityKg)
		qty[key] = qty[key].Add(q)
		value[key] = value[key].Add(q.Mul(decimal.NewFromFloat(m.UnitPrice)))
	}

	prices := make(map[string]float64, len(qty))
	for key, q := range qty {
		prices[key] = value[key].Div(q).InexactFloat64()
	}
	return prices
}

// SummarizeCycle aggregates the snapshot's events that fall inside the
// boundary's window.
func SummarizeCycle(snap models.Snapshot, b Boundary, now time.Time) models.CycleSummary {
	pondID := snap.Pond.ID
	w := b.Window

	summary := models.CycleSummary{
		PondID:  pondID,
		Number:  b.Number,
		Start:   w.Start.Time,
		Active:  w.Open() && snap.Pond.Population > 0,
		Precise: w.Precise(),
	}

	end := now
	if !w.Open() {
		end = w.End.Time
		summary.End = &end
	}
	summary.DurationDays = durationDays(w.Start.Time, end)

	for _, e := range snap.Population {
		if e.PondID != pondID || !w.Contains(e.Stamp()) {
			continue
		}
		if e.Delta > 0 {
			summary.InitialPopulation += e.Delta
		}
		if e.IsMortality() {
			summary.Mortality -= e.Delta
		}
	}

	prices := FeedUnitPrices(snap.Stock)
	feedCost := decimal.Zero
	for _, e := range snap.Feed {
		if e.PondID != pondID || !w.Contains(e.Stamp()) {
			continue
		}
		summary.TotalFeedKg += e.Kg
		if price, ok := prices[feedKey(e.FeedType)]; ok {
			feedCost = feedCost.Add(decimal.NewFromFloat(e.Kg).Mul(decimal.NewFromFloat(price)))
		}
	}

	revenue := decimal.Zero
	lastInput := w.Start.Time
	var sawHarvest bool
	for _, e := range snap.Harvests {
		if e.PondID != pondID || !w.Contains(e.Stamp()) {
			continue
		}
		summary.TotalHarvestKg += e.Kg
		summary.FinalPopulation += e.Count
		revenue = revenue.Add(decimal.NewFromFloat(e.Kg).Mul(decimal.NewFromFloat(e.PricePerKg)))

		at := e.Stamp().Time
		if !sawHarvest || at.After(lastInput) {
			lastInput = at
			sawHarvest = true
		}
	}
	summary.LastInput = lastInput

	expenses := decimal.Zero
	for _, e := range snap.Expenses {
		if e.PondID != pondID || e.Category == models.ExpenseFeed || !w.Contains(e.Stamp()) {
			continue
		}
		expenses = expenses.Add(decimal.NewFromFloat(e.Amount))
	}

	summary.TotalFeedCost = feedCost.InexactFloat64()
	summary.TotalRevenue = revenue.InexactFloat64()
	summary.TotalExpenses = expenses.InexactFloat64()
	summary.NetProfit = revenue.Sub(feedCost.Add(expenses)).InexactFloat64()
	summary.FCR = ratio(summary.TotalFeedKg, summary.TotalHarvestKg)
	if summary.InitialPopulation > 0 {
		summary.SurvivalRate = float64(summary.FinalPopulation) / float64(summary.InitialPopulation) * 100
	}

	return summary
}

// durationDays rounds the span up to whole days with a floor of one.
func durationDays(start, end time.Time) int {
	days := int(math.Ceil(end.Sub(start).Hours() / 24))
	if days < 1 {
		return 1
	}
	return days
}

func feedKey(feedType string) string {
	return strings.ToLower(strings.TrimSpace(feedType))
}
