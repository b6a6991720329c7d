package analytics

import (
	"time"

	"github.com/mamadbah2/aquafarm/internal/domain/models"
)

// Overview runs every calculation for the snapshot's pond.
func Overview(snap models.Snapshot, now time.Time) models.PondOverview {
	pond := snap.Pond
	sample := LatestSample(ownSamples(snap))
	feed := ownFeed(snap)

	ov := models.PondOverview{
		Pond:        pond,
		Volume:      pond.Volume(),
		Biomass:     EstimateBiomass(pond, sample),
		Status:      UnifiedStatus(pond, sample),
		Feed:        DailyFeedStatus(pond, sample, feed, now),
		Appetite:    AppetiteTrend(feed),
		Harvest:     PredictHarvestDate(sample, now),
		GeneratedAt: now,
	}

	history := CycleHistory(snap, now)
	ov.CycleCount = len(history)
	if len(history) > 0 {
		current := history[len(history)-1]
		ov.CurrentCycle = &current
	}
	return ov
}

// PondSample returns the latest sample belonging to the snapshot's pond.
func PondSample(snap models.Snapshot) *models.BiomassSample {
	return LatestSample(ownSamples(snap))
}

// PondFeed returns the snapshot's feed events for its own pond.
func PondFeed(snap models.Snapshot) []models.FeedEvent {
	return ownFeed(snap)
}

func ownSamples(snap models.Snapshot) []models.BiomassSample {
	out := make([]models.BiomassSample, 0, len(snap.Samples))
	for _, s := range snap.Samples {
		if s.PondID == snap.Pond.ID {
			out = append(out, s)
		}
	}
	return out
}

func ownFeed(snap models.Snapshot) []models.FeedEvent {
	out := make([]models.FeedEvent, 0, len(snap.Feed))
	for _, e := range snap.Feed {
		if e.PondID == snap.Pond.ID {
			out = append(out, e)
		}
	}
	return out
}
