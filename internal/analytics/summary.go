package analytics

import (
	"time"

	"github.com/couchcryptid/nyc-live-events/internal/domain"
)

// Summary is the headline statistics block.
type Summary struct {
	Total          int                     `json:"total"`
	BusiestBorough *Count[domain.Borough]  `json:"busiest_borough,omitempty"`
	TopCategory    *Count[domain.Category] `json:"top_category,omitempty"`
	LastHour       int                     `json:"last_hour"`
	Last24Hours    int                     `json:"last_24_hours"`
	PeakHour       *Count[int]             `json:"peak_hour,omitempty"`
	BusiestSlot    *HeatCell               `json:"busiest_slot,omitempty"`
}

// Summarize computes the headline statistics relative to now.
func Summarize(events []domain.Event, now time.Time, loc *time.Location) Summary {
	s := Summary{
		Total:       len(events),
		LastHour:    CountSince(events, now, time.Hour),
		Last24Hours: CountSince(events, now, 24*time.Hour),
	}
	if len(events) == 0 {
		return s
	}
	if top := TopN(ByBorough(events), 1); len(top) == 1 {
		s.BusiestBorough = &top[0]
	}
	if top := TopN(ByCategory(events), 1); len(top) == 1 {
		s.TopCategory = &top[0]
	}
	if h, n, ok := PeakHour(events, loc); ok {
		s.PeakHour = &Count[int]{Key: h, Count: n}
	}
	if cell, ok := BusiestSlot(events, loc); ok {
		s.BusiestSlot = &cell
	}
	return s
}

// TrendPoint is the event count of one hour.
type TrendPoint struct {
	Hour  time.Time `json:"hour"`
	Count int       `json:"count"`
}

// TrendSeries is the hourly activity of one category.
type TrendSeries struct {
	Category domain.Category `json:"category"`
	Total    int             `json:"total"`
	Points   []TrendPoint    `json:"points"`
}

// Trends ranks categories over the whole input, keeps the top n, and counts
// each one per local clock hour over the last hours hours ending with the
// hour containing now. Points are in ascending time order.
func Trends(events []domain.Event, now time.Time, loc *time.Location, hours, n int) []TrendSeries {
	if hours <= 0 {
		return []TrendSeries{}
	}
	top := TopN(CountBy(events, func(e domain.Event) domain.Category { return e.Category }), n)

	current := hourStart(now, loc)
	keys := make([]time.Time, hours)
	slot := make(map[int64]int, hours)
	for i := range keys {
		keys[i] = current.Add(-time.Duration(hours-1-i) * time.Hour)
		slot[keys[i].Unix()] = i
	}

	series := make([]TrendSeries, len(top))
	index := make(map[domain.Category]int, len(top))
	for i, c := range top {
		index[c.Key] = i
		series[i] = TrendSeries{Category: c.Key, Total: c.Count, Points: make([]TrendPoint, hours)}
		for j, k := range keys {
			series[i].Points[j].Hour = k
		}
	}
	for _, e := range events {
		i, ok := index[e.Category]
		if !ok {
			continue
		}
		if j, ok := slot[hourStart(e.Timestamp, loc).Unix()]; ok {
			series[i].Points[j].Count++
		}
	}
	return series
}

func hourStart(t time.Time, loc *time.Location) time.Time {
	l := t.In(loc)
	return time.Date(l.Year(), l.Month(), l.Day(), l.Hour(), 0, 0, 0, loc)
}
