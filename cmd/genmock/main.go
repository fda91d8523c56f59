// Command genmock synthesizes an NYC event fixture (trailing history plus an
// upcoming window) and prints distribution stats for eyeballing the
// weighting model.
//
// Usage:
//
//	go run ./cmd/genmock \
//	  -out data/mock/nyc_events.json \
//	  -hours 24 -upcoming 200 -days 7 -seed 42 -variant weighted
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"
	_ "time/tzdata"

	"github.com/couchcryptid/nyc-live-events/internal/analytics"
	"github.com/couchcryptid/nyc-live-events/internal/domain"
	"github.com/couchcryptid/nyc-live-events/internal/synth"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "output path for the JSON fixture")
	hours := flag.Int("hours", 24, "trailing hours of history to generate")
	upcoming := flag.Int("upcoming", 0, "number of upcoming events to generate")
	days := flag.Int("days", 7, "days covered by the upcoming window")
	seed := flag.Uint64("seed", 0, "random seed (0 draws one)")
	variant := flag.String("variant", "weighted", "generator variant: weighted or flat")
	coords := flag.String("coords", "bbox", "coordinate mode: bbox or resolve")
	tz := flag.String("tz", synth.DefaultTimezone, "timezone for hours and calendar days")
	at := flag.String("now", "", "reference time (RFC3339); defaults to the current time")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}

	var cfg synth.Config
	switch *variant {
	case "weighted":
		cfg = synth.Config{Seed: *seed}
	case "flat":
		cfg = synth.FlatVariant(*seed)
	default:
		return fmt.Errorf("unknown variant %q", *variant)
	}
	switch *coords {
	case "bbox":
		cfg.Coordinates = synth.SampleBounds
	case "resolve":
		cfg.Coordinates = synth.ResolveAddress
	default:
		return fmt.Errorf("unknown coordinate mode %q", *coords)
	}
	loc, err := time.LoadLocation(*tz)
	if err != nil {
		return fmt.Errorf("load timezone: %w", err)
	}
	cfg.Location = loc

	now := time.Now()
	if *at != "" {
		if now, err = time.Parse(time.RFC3339, *at); err != nil {
			return fmt.Errorf("parse -now: %w", err)
		}
	}

	fixture := synth.New(cfg).BuildFixture(now, *hours, *upcoming, *days)
	fixture.Seed = *seed
	fixture.Variant = *variant

	if err := writeJSON(*out, fixture); err != nil {
		return fmt.Errorf("writing fixture: %w", err)
	}
	log.Printf("wrote fixture: %s (%d historical, %d upcoming)", *out, len(fixture.Historical), len(fixture.Upcoming))

	printStats(fixture.All(), loc)
	return nil
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

func printStats(events []domain.Event, loc *time.Location) {
	fmt.Println("\n=== Distribution ===")
	fmt.Printf("Total: %d\n", len(events))
	if len(events) == 0 {
		return
	}

	fmt.Println("\nBy borough:")
	for _, c := range analytics.ByBorough(events) {
		fmt.Printf("  %-14s %5d  %5.1f%%\n", c.Key, c.Count, percent(c.Count, len(events)))
	}

	fmt.Println("\nBy category:")
	for _, c := range analytics.TopN(analytics.ByCategory(events), len(domain.Categories())) {
		fmt.Printf("  %-16s %5d  %5.1f%%\n", c.Key, c.Count, percent(c.Count, len(events)))
	}

	fmt.Println("\nBy time slot:")
	for _, c := range analytics.BySlot(events, loc) {
		fmt.Printf("  %-10s %5d\n", c.Key, c.Count)
	}

	if h, n, ok := analytics.PeakHour(events, loc); ok {
		fmt.Printf("\nPeak hour: %02d:00 (%d events)\n", h, n)
	}

	fmt.Println("\nTop venues:")
	for _, c := range analytics.TopN(analytics.ByVenue(events), 5) {
		fmt.Printf("  %-32s %d\n", c.Key, c.Count)
	}
}

func percent(n, total int) float64 {
	return 100 * float64(n) / float64(total)
}
