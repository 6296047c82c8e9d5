// Package watch derives the display state of a watchlist entry from its
// watched flag and its single date field. The stored encoding is a boolean
// plus a nullable calendar date: a set date in the future means the movie is
// scheduled, a set date on or before today means it was watched. Every
// consumer goes through Classify so the comparison rules live in one place.
package watch

import "time"

// DayFormat is the wire format for calendar days.
const DayFormat = "2006-01-02"

// Status is the derived watch state of an entry.
type Status string

const (
	StatusToWatch  Status = "to_watch"
	StatusUpcoming Status = "upcoming"
	StatusWatched  Status = "watched"
)

// ParseDay parses a YYYY-MM-DD string as midnight in the given location.
// This is the only construction path for calendar days; parsing date-only
// strings with a full timestamp parser shifts them through UTC and produces
// off-by-one-day results in timezones west of UTC.
func ParseDay(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DayFormat, s, loc)
}

// DayOf normalizes a time to midnight of its calendar day, keeping its
// location.
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DayKey formats a time as its YYYY-MM-DD calendar day.
func DayKey(t time.Time) string {
	return t.Format(DayFormat)
}

// SameDay reports whether two times fall on the same calendar day in their
// respective locations.
func SameDay(a, b time.Time) bool {
	return DayKey(a) == DayKey(b)
}

// Classify returns the status of an entry given its watched flag, its stored
// occurs-on day (YYYY-MM-DD, empty if unset) and a reference day. The
// reference day's location is used to parse occursOn. Comparison is on
// calendar-day granularity: a date equal to today is Watched, strictly after
// today is Upcoming.
//
// A set watched flag with no stored date should be impossible through the
// mutation API; it classifies as to-watch rather than failing, so a bad row
// never breaks a read path.
func Classify(watched bool, occursOn string, today time.Time) Status {
	if !watched {
		return StatusToWatch
	}
	day, err := ParseDay(occursOn, today.Location())
	if err != nil {
		return StatusToWatch
	}
	if day.After(DayOf(today)) {
		return StatusUpcoming
	}
	return StatusWatched
}
