package analytics

import (
	"time"

	"github.com/couchcryptid/nyc-live-events/internal/domain"
)

// Since returns the events whose timestamp lies in [now-d, now].
func Since(events []domain.Event, now time.Time, d time.Duration) []domain.Event {
	from := now.Add(-d)
	var out []domain.Event
	for _, e := range events {
		if !e.Timestamp.Before(from) && !e.Timestamp.After(now) {
			out = append(out, e)
		}
	}
	return out
}

// CountSince counts the events whose timestamp lies in [now-d, now].
func CountSince(events []domain.Event, now time.Time, d time.Duration) int {
	return len(Since(events, now, d))
}

// Day returns local midnight of the calendar day offset days after now's.
func Day(now time.Time, offset int, loc *time.Location) time.Time {
	local := now.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day()+offset, 0, 0, 0, 0, loc)
}

// OnDay returns the events falling on the local calendar day offset days
// from today (0 is today, negative values look back).
func OnDay(events []domain.Event, now time.Time, offset int, loc *time.Location) []domain.Event {
	day := Day(now, offset, loc)
	y, m, d := day.Date()
	var out []domain.Event
	for _, e := range events {
		ey, em, ed := e.Timestamp.In(loc).Date()
		if ey == y && em == m && ed == d {
			out = append(out, e)
		}
	}
	return out
}

// CountOnDay counts the events on the calendar day offset days from today.
func CountOnDay(events []domain.Event, now time.Time, offset int, loc *time.Location) int {
	return len(OnDay(events, now, offset, loc))
}
