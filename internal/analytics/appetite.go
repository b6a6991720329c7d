package analytics

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/mamadbah2/aquafarm/internal/domain/models"
)

const (
	appetiteWindowDays = 3
	appetiteDropPct    = -20.0
)

// AppetiteTrend compares the average daily feed of the last three logged
// days with the three logged days before them. Fewer than six logged days,
// or a prior average of zero, never flags a drop.
func AppetiteTrend(feed []models.FeedEvent) models.AppetiteReport {
	totals := make(map[int]float64)
	for _, e := range feed {
		totals[dayKey(e.Date)] += e.Kg
	}
	if len(totals) < 2*appetiteWindowDays {
		return models.AppetiteReport{}
	}

	days := make([]int, 0, len(totals))
	for d := range totals {
		days = append(days, d)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(days)))

	recent := make([]float64, 0, appetiteWindowDays)
	prior := make([]float64, 0, appetiteWindowDays)
	for i, d := range days[:2*appetiteWindowDays] {
		if i < appetiteWindowDays {
			recent = append(recent, totals[d])
		} else {
			prior = append(prior, totals[d])
		}
	}

	report := models.AppetiteReport{
		RecentAvg: stat.Mean(recent, nil),
		PriorAvg:  stat.Mean(prior, nil),
	}
	report.Diff = report.RecentAvg - report.PriorAvg
	if report.PriorAvg == 0 {
		return report
	}

	change := report.Diff / report.PriorAvg * 100
	report.DropPercent = roundTo(change, 2)
	report.HasDrop = change < appetiteDropPct
	return report
}
