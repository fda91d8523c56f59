package analytics

import (
	"slices"

	"github.com/couchcryptid/nyc-live-events/internal/domain"
)

// Filter selects events by category and borough. Empty lists match
// everything.
type Filter struct {
	Categories []domain.Category
	Boroughs   []domain.Borough
}

// Match reports whether e passes the filter.
func (f Filter) Match(e domain.Event) bool {
	if len(f.Categories) > 0 && !slices.Contains(f.Categories, e.Category) {
		return false
	}
	if len(f.Boroughs) > 0 && !slices.Contains(f.Boroughs, e.Borough) {
		return false
	}
	return true
}

// Apply returns the matching events in input order.
func (f Filter) Apply(events []domain.Event) []domain.Event {
	out := make([]domain.Event, 0, len(events))
	for _, e := range events {
		if f.Match(e) {
			out = append(out, e)
		}
	}
	return out
}
