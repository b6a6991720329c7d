package analytics

import "github.com/mamadbah2/aquafarm/internal/domain/models"

// Window is the span of one cycle. End is zero for the open cycle.
type Window struct {
	Start models.Stamp
	End   models.Stamp
}

// Open reports whether the window runs up to now.
func (w Window) Open() bool {
	return w.End.IsZero()
}

// Precise reports whether both ends carry full timestamps.
func (w Window) Precise() bool {
	return w.Start.Precise && (w.Open() || w.End.Precise)
}

// Contains places a stamp inside the window. Precise stamps in a precise
// window use the half-open timestamp range [Start, End). Anything else
// compares calendar days inclusively on both ends.
func (w Window) Contains(s models.Stamp) bool {
	if w.Precise() && s.Precise {
		if s.Time.Before(w.Start.Time) {
			return false
		}
		return w.Open() || s.Time.Before(w.End.Time)
	}

	day := dayKey(s.Time)
	if day < dayKey(w.Start.Time) {
		return false
	}
	return w.Open() || day <= dayKey(w.End.Time)
}
