package reporting

import (
	"time"

	"github.com/mamadbah2/aquafarm/internal/domain/models"
)

// inLocation returns a copy of snap with every time read in loc. Calendar
// dates keep their day and instants keep their moment.
func inLocation(snap models.Snapshot, loc *time.Location) models.Snapshot {
	out := models.Snapshot{Pond: snap.Pond}

	out.Population = make([]models.PopulationEvent, len(snap.Population))
	for i, e := range snap.Population {
		e.Date = calendarDay(e.Date, loc)
		e.Created = stampIn(e.Created, loc)
		out.Population[i] = e
	}
	out.Feed = make([]models.FeedEvent, len(snap.Feed))
	for i, e := range snap.Feed {
		e.Date = calendarDay(e.Date, loc)
		e.Created = stampIn(e.Created, loc)
		out.Feed[i] = e
	}
	out.Harvests = make([]models.HarvestEvent, len(snap.Harvests))
	for i, e := range snap.Harvests {
		e.Date = calendarDay(e.Date, loc)
		e.Created = stampIn(e.Created, loc)
		out.Harvests[i] = e
	}
	out.Expenses = make([]models.ExpenseEvent, len(snap.Expenses))
	for i, e := range snap.Expenses {
		e.Date = calendarDay(e.Date, loc)
		e.Created = stampIn(e.Created, loc)
		out.Expenses[i] = e
	}
	out.Samples = make([]models.BiomassSample, len(snap.Samples))
	for i, s := range snap.Samples {
		s.Date = calendarDay(s.Date, loc)
		out.Samples[i] = s
	}
	out.Stock = make([]models.StockMovement, len(snap.Stock))
	for i, m := range snap.Stock {
		m.Date = calendarDay(m.Date, loc)
		out.Stock[i] = m
	}

	return out
}

func calendarDay(t time.Time, loc *time.Location) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

func stampIn(s models.Stamp, loc *time.Location) models.Stamp {
	switch {
	case s.IsZero():
		return s
	case s.Precise:
		return models.At(s.Time.In(loc))
	default:
		return models.Stamp{Time: calendarDay(s.Time, loc)}
	}
}
