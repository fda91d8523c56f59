// Package analytics reduces event collections to the summaries the dashboard
// renders. Every function is pure and deterministic for a given input and
// reference time; callers recompute whenever either changes.
package analytics

import (
	"slices"
	"time"

	"github.com/couchcryptid/nyc-live-events/internal/domain"
)

// UnknownVenue labels events without a venue in venue rankings.
const UnknownVenue = "Unknown Venue"

// Count is a group key with the number of events in the group.
type Count[K comparable] struct {
	Key   K   `json:"key"`
	Count int `json:"count"`
}

// CountBy groups events by key and counts each group. Groups appear in the
// order their key is first seen.
func CountBy[K comparable](events []domain.Event, key func(domain.Event) K) []Count[K] {
	idx := make(map[K]int)
	var out []Count[K]
	for _, e := range events {
		k := key(e)
		i, ok := idx[k]
		if !ok {
			i = len(out)
			idx[k] = i
			out = append(out, Count[K]{Key: k})
		}
		out[i].Count++
	}
	return out
}

// TopN returns at most n groups ordered by descending count. Ties keep their
// input order. The input is not modified.
func TopN[K comparable](counts []Count[K], n int) []Count[K] {
	if n <= 0 {
		return []Count[K]{}
	}
	sorted := slices.Clone(counts)
	slices.SortStableFunc(sorted, func(a, b Count[K]) int {
		return b.Count - a.Count
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// Total sums the counts.
func Total[K comparable](counts []Count[K]) int {
	n := 0
	for _, c := range counts {
		n += c.Count
	}
	return n
}

// withBaseline returns counts for every key in base, in base order and
// including zeros, followed by any other keys in first-seen order.
func withBaseline[K comparable](base []K, counts []Count[K]) []Count[K] {
	byKey := make(map[K]int, len(counts))
	for _, c := range counts {
		byKey[c.Key] = c.Count
	}
	out := make([]Count[K], 0, len(base)+len(counts))
	inBase := make(map[K]bool, len(base))
	for _, k := range base {
		inBase[k] = true
		out = append(out, Count[K]{Key: k, Count: byKey[k]})
	}
	for _, c := range counts {
		if !inBase[c.Key] {
			out = append(out, c)
		}
	}
	return out
}

// ByCategory counts events per category, listing every category.
func ByCategory(events []domain.Event) []Count[domain.Category] {
	counts := CountBy(events, func(e domain.Event) domain.Category { return e.Category })
	return withBaseline(domain.Categories(), counts)
}

// ByBorough counts events per borough, listing every borough.
func ByBorough(events []domain.Event) []Count[domain.Borough] {
	counts := CountBy(events, func(e domain.Event) domain.Borough { return e.Borough })
	return withBaseline(domain.Boroughs(), counts)
}

// BySource counts events per provenance tag, listing every source.
func BySource(events []domain.Event) []Count[domain.Source] {
	counts := CountBy(events, func(e domain.Event) domain.Source { return e.Source })
	return withBaseline(domain.Sources(), counts)
}

// ByVenue counts events per venue in first-seen order.
func ByVenue(events []domain.Event) []Count[string] {
	return CountBy(events, func(e domain.Event) string {
		if e.Venue == "" {
			return UnknownVenue
		}
		return e.Venue
	})
}

// ByHour counts events per local hour of day. All 24 hours are present.
func ByHour(events []domain.Event, loc *time.Location) [24]int {
	var out [24]int
	for _, e := range events {
		out[e.Timestamp.In(loc).Hour()]++
	}
	return out
}

// PeakHour returns the earliest hour with the highest count. It reports
// false for an empty input.
func PeakHour(events []domain.Event, loc *time.Location) (hour, count int, ok bool) {
	if len(events) == 0 {
		return 0, 0, false
	}
	hours := ByHour(events, loc)
	for h, n := range hours {
		if n > count {
			hour, count = h, n
		}
	}
	return hour, count, true
}
