package analytics

import (
	"math"
	"time"

	"github.com/mamadbah2/aquafarm/internal/domain/models"
)

const (
	unknownWeightG   = 10.0
	morningFeedHour  = 5
	eveningFeedHour  = 17
	sufficientPct    = 100.0
	excessPct        = 110.0
	slotShareOfDaily = 0.5
)

// feedRate is the daily ration as a fraction of biomass, stepping down as
// fish grow.
func feedRate(weightG float64) float64 {
	switch {
	case weightG < 10:
		return 0.06
	case weightG < 50:
		return 0.04
	case weightG < 200:
		return 0.03
	default:
		return 0.02
	}
}

// DailyFeedStatus compares the feed logged today with the biomass-based
// ration and tells which of the two daily slots comes next.
func DailyFeedStatus(pond models.Pond, sample *models.BiomassSample, feed []models.FeedEvent, now time.Time) models.FeedStatus {
	weight := averageWeightG(sample, unknownWeightG)
	biomassKg := float64(pond.Population) * weight / 1000
	rate := feedRate(weight)
	target := biomassKg * rate

	var actual float64
	for _, e := range feed {
		if e.PondID == pond.ID && sameDay(e.Date, now) {
			actual += e.Kg
		}
	}

	progress := ratio(actual, target) * 100
	status := models.FeedInsufficient
	switch {
	case progress > excessPct:
		status = models.FeedExcess
	case progress >= sufficientPct:
		status = models.FeedSufficient
	}

	return models.FeedStatus{
		TargetKg:    target,
		ActualKg:    actual,
		RemainingKg: math.Max(0, target-actual),
		ProgressPct: progress,
		FeedRatePct: rate * 100,
		Status:      status,
		Schedule: models.FeedSchedule{
			Slots: []models.FeedSlot{
				{Label: string(models.NextMorning), Time: "05:00", Kg: target * slotShareOfDaily},
				{Label: string(models.NextEvening), Time: "17:00", Kg: target * slotShareOfDaily},
			},
			Next: nextFeed(now, progress),
		},
	}
}

func nextFeed(now time.Time, progress float64) models.NextFeed {
	if progress >= sufficientPct {
		return models.NextComplete
	}
	switch h := now.Hour(); {
	case h < morningFeedHour:
		return models.NextMorning
	case h < eveningFeedHour:
		return models.NextEvening
	default:
		return models.NextTomorrowMorning
	}
}
