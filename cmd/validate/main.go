// Command validate checks a genmock fixture for data-model integrity:
// enumerations, borough bounding boxes, ordering and id uniqueness, and
// aggregation consistency.
//
// Usage:
//
//	go run ./cmd/validate -in data/mock/nyc_events.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/couchcryptid/nyc-live-events/internal/analytics"
	"github.com/couchcryptid/nyc-live-events/internal/domain"
	"github.com/couchcryptid/nyc-live-events/internal/synth"
)

// maxErrorsShown caps the detail printed per failing phase.
const maxErrorsShown = 20

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	in := flag.String("in", "", "path to the genmock JSON fixture")
	flag.Parse()

	if *in == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*in); code != 0 {
		os.Exit(code)
	}
}

func run(path string) int {
	fmt.Println("=== NYC Event Fixture Validation ===")
	fmt.Println()

	fixture, err := loadFixture(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load fixture: %v\n", err)
		return 1
	}
	loc := synth.LoadLocation(fixture.Timezone)
	all := fixture.All()

	phases := []*phase{
		validateEnumerations(all),
		validateBounds(all),
		validateOrdering(fixture),
		validateAggregates(all, fixture.GeneratedAt, loc),
	}

	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Events: %d historical, %d upcoming (seed %d, variant %s)\n",
		len(fixture.Historical), len(fixture.Upcoming), fixture.Seed, fixture.Variant)

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			if i == maxErrorsShown {
				fmt.Printf("  ... and %d more\n", len(p.errors)-maxErrorsShown)
				break
			}
			fmt.Printf("  %s\n", e)
		}
	}

	if !allPassed {
		return 1
	}
	return 0
}

func loadFixture(path string) (synth.Fixture, error) {
	var f synth.Fixture
	data, err := os.ReadFile(path)
	if err != nil {
		return f, err
	}
	if err := json.Unmarshal(data, &f); err != nil {
		return f, fmt.Errorf("decode: %w", err)
	}
	return f, nil
}

func validateEnumerations(events []domain.Event) *phase {
	p := &phase{name: "Phase 1: Enumerations"}
	for _, e := range events {
		if !e.Category.Valid() {
			p.errorf("%s: unknown category %q", e.ID, e.Category)
		}
		if !e.Source.Valid() {
			p.errorf("%s: unknown source %q", e.ID, e.Source)
		}
		if !e.Borough.Valid() {
			p.errorf("%s: unknown borough %q", e.ID, e.Borough)
		}
		if e.Title == "" || e.Venue == "" {
			p.errorf("%s: missing title or venue", e.ID)
		}
		if e.Attendees == nil || *e.Attendees < 0 {
			p.errorf("%s: missing or negative attendees", e.ID)
		}
	}
	return p
}

func validateBounds(events []domain.Event) *phase {
	p := &phase{name: "Phase 2: Borough bounding boxes"}
	for _, e := range events {
		c, ok := e.Coordinates()
		if !ok {
			p.errorf("%s: no coordinates", e.ID)
			continue
		}
		if !domain.BoundsOf(e.Borough).Contains(c, 0) {
			p.errorf("%s: (%.4f, %.4f) outside %s", e.ID, c.Lat, c.Lng, e.Borough)
		}
		if want := domain.Geohash(c, domain.GeohashLength); e.Geohash != want {
			p.errorf("%s: geohash %q, want %q", e.ID, e.Geohash, want)
		}
		if e.GeoPrecision == "" {
			p.errorf("%s: missing geo precision", e.ID)
		}
	}
	return p
}

func validateOrdering(f synth.Fixture) *phase {
	p := &phase{name: "Phase 3: Ordering and unique ids"}
	if !domain.IsSorted(f.Historical) {
		p.errorf("historical events not in ascending time order")
	}
	if !domain.IsSorted(f.Upcoming) {
		p.errorf("upcoming events not in ascending time order")
	}

	start := f.GeneratedAt.Add(-time.Duration(f.Hours) * time.Hour)
	for _, e := range f.Historical {
		if e.Timestamp.Before(start) || !e.Timestamp.Before(f.GeneratedAt) {
			p.errorf("%s: historical timestamp %s outside [%s, %s)", e.ID,
				e.Timestamp.Format(time.RFC3339), start.Format(time.RFC3339), f.GeneratedAt.Format(time.RFC3339))
		}
	}

	seen := make(map[string]bool, len(f.Historical)+len(f.Upcoming))
	for _, e := range f.All() {
		if e.ID == "" {
			p.errorf("event with empty id at %s", e.Timestamp.Format(time.RFC3339))
			continue
		}
		if seen[e.ID] {
			p.errorf("duplicate id %s", e.ID)
		}
		seen[e.ID] = true
	}
	return p
}

func validateAggregates(events []domain.Event, now time.Time, loc *time.Location) *phase {
	p := &phase{name: "Phase 4: Aggregation consistency"}
	total := len(events)

	check := func(name string, got int) {
		if got != total {
			p.errorf("%s sums to %d, want %d", name, got, total)
		}
	}
	check("by_category", analytics.Total(analytics.ByCategory(events)))
	check("by_borough", analytics.Total(analytics.ByBorough(events)))
	check("by_source", analytics.Total(analytics.BySource(events)))
	check("by_venue", analytics.Total(analytics.ByVenue(events)))
	check("by_slot", analytics.Total(analytics.BySlot(events, loc)))

	hourSum := 0
	for _, n := range analytics.ByHour(events, loc) {
		hourSum += n
	}
	check("by_hour", hourSum)

	heatSum := 0
	for _, cell := range analytics.Heatmap(events, loc) {
		heatSum += cell.Count
	}
	check("heatmap", heatSum)

	clustered := 0
	for _, c := range analytics.GroupNearby(events, analytics.DefaultGroupThreshold) {
		clustered += len(c.Events)
	}
	check("clusters", clustered)

	if s := analytics.Summarize(events, now, loc); s.Total != total {
		p.errorf("summary total %d, want %d", s.Total, total)
	}
	return p
}
