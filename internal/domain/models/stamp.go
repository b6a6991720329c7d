package models

import "time"

// Stamp is the moment an event was recorded. Precise stamps carry a full
// timestamp; date-only stamps come from legacy or imported rows and only
// know the calendar day.
type Stamp struct {
	Time    time.Time `bson:"time" json:"time"`
	Precise bool      `bson:"precise" json:"precise"`
}

// At builds a precise stamp.
func At(t time.Time) Stamp {
	return Stamp{Time: t, Precise: true}
}

// On builds a date-only stamp for the day containing d.
func On(d time.Time) Stamp {
	return Stamp{Time: DateOf(d)}
}

// IsZero reports whether no instant was recorded.
func (s Stamp) IsZero() bool {
	return s.Time.IsZero()
}

// Date returns the calendar day of the stamp.
func (s Stamp) Date() time.Time {
	return DateOf(s.Time)
}

// DateOf truncates t to midnight in its own location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// CalendarDate returns the calendar day of t as midnight UTC, the form event
// dates are stored in.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// resolveStamp prefers the precise creation stamp and falls back to the
// effective date.
func resolveStamp(date time.Time, created Stamp) Stamp {
	if created.Precise && !created.IsZero() {
		return created
	}
	return On(date)
}
