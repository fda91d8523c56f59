package synth

import (
	"time"

	"github.com/couchcryptid/nyc-live-events/internal/domain"
)

// Fixture is a serialized synthetic corpus, as written by cmd/genmock and
// checked by cmd/validate.
type Fixture struct {
	GeneratedAt time.Time      `json:"generated_at"`
	Timezone    string         `json:"timezone"`
	Seed        uint64         `json:"seed"`
	Variant     string         `json:"variant"`
	Hours       int            `json:"hours"`
	Days        int            `json:"days"`
	Historical  []domain.Event `json:"historical"`
	Upcoming    []domain.Event `json:"upcoming"`
}

// BuildFixture generates hours of history and n upcoming events spread over
// days, both relative to now.
func (s *Synthesizer) BuildFixture(now time.Time, hours, n, days int) Fixture {
	return Fixture{
		GeneratedAt: now,
		Timezone:    s.loc.String(),
		Hours:       hours,
		Days:        max(days, 1),
		Historical:  s.Historical(now, hours),
		Upcoming:    s.Upcoming(now, n, days),
	}
}

// All returns historical and upcoming events in one slice.
func (f Fixture) All() []domain.Event {
	out := make([]domain.Event, 0, len(f.Historical)+len(f.Upcoming))
	out = append(out, f.Historical...)
	return append(out, f.Upcoming...)
}
