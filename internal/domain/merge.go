package domain

import (
	"slices"
)

// MergeByID concatenates the collections, keeps the first occurrence of each
// id, and returns the result newest first. Inputs are not modified.
func MergeByID(collections ...[]Event) []Event {
	n := 0
	for _, c := range collections {
		n += len(c)
	}
	seen := make(map[string]struct{}, n)
	out := make([]Event, 0, n)
	for _, c := range collections {
		for _, e := range c {
			if _, dup := seen[e.ID]; dup {
				continue
			}
			seen[e.ID] = struct{}{}
			out = append(out, e)
		}
	}
	SortByTime(out, false)
	return out
}

// SortByTime stably sorts events by timestamp, ascending or newest first.
func SortByTime(events []Event, ascending bool) {
	slices.SortStableFunc(events, func(a, b Event) int {
		c := a.Timestamp.Compare(b.Timestamp)
		if !ascending {
			c = -c
		}
		return c
	})
}

// IsSorted reports whether events are in ascending timestamp order.
func IsSorted(events []Event) bool {
	return slices.IsSortedFunc(events, func(a, b Event) int {
		return a.Timestamp.Compare(b.Timestamp)
	})
}

// IsNewestFirst reports whether events are in descending timestamp order.
func IsNewestFirst(events []Event) bool {
	return slices.IsSortedFunc(events, func(a, b Event) int {
		return b.Timestamp.Compare(a.Timestamp)
	})
}
