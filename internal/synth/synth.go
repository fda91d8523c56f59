// Package synth generates plausible synthetic NYC event corpora.
//
// Output is random: two calls with the same arguments yield
// different but statistically similar batches. A non-zero Config.Seed pins
// the random stream for fixtures and tests.
package synth

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/couchcryptid/nyc-live-events/internal/domain"
)

// DefaultTimezone is the zone whose calendar days and hours shape generated
// timestamps.
const DefaultTimezone = "America/New_York"

// Events per trailing hour bucket in a historical window.
const (
	MinPerHour = 10
	MaxPerHour = 15
)

// CoordinateMode selects how generated events are positioned.
type CoordinateMode int

const (
	// SampleBounds draws a uniform point inside the borough box.
	SampleBounds CoordinateMode = iota
	// ResolveAddress runs the generated venue and street address through the
	// table resolver, constrained to the borough box.
	ResolveAddress
)

// Config controls a Synthesizer. The zero value is usable.
type Config struct {
	Seed        uint64 // 0 draws a random seed
	Location    *time.Location
	Categories  CategoryPicker // defaults to HourWeighted
	Boroughs    BoroughPicker  // defaults to WeightedBoroughs
	Coordinates CoordinateMode
	FlatTitles  bool // draw titles from one combined pool instead of per category
}

// FlatVariant returns the simpler unweighted generator settings: skewed
// categories, uniform boroughs, and one combined title pool.
func FlatVariant(seed uint64) Config {
	return Config{
		Seed:       seed,
		Categories: FlatSkew,
		Boroughs:   UniformBoroughs,
		FlatTitles: true,
	}
}

// Synthesizer produces batches of synthetic events. It is safe for
// concurrent use.
type Synthesizer struct {
	rng        *domain.LockedRand
	loc        *time.Location
	category   CategoryPicker
	borough    BoroughPicker
	coords     CoordinateMode
	flatTitles bool
	resolver   *domain.Resolver
}

// New builds a Synthesizer from cfg.
func New(cfg Config) *Synthesizer {
	rng := domain.NewRand(cfg.Seed)
	s := &Synthesizer{
		rng:        rng,
		loc:        cfg.Location,
		category:   cfg.Categories,
		borough:    cfg.Boroughs,
		coords:     cfg.Coordinates,
		flatTitles: cfg.FlatTitles,
		resolver:   domain.NewResolver(rng),
	}
	if s.loc == nil {
		s.loc = LoadLocation(DefaultTimezone)
	}
	if s.category == nil {
		s.category = HourWeighted
	}
	if s.borough == nil {
		s.borough = WeightedBoroughs
	}
	return s
}

// LoadLocation loads a named zone, falling back to UTC when the zone
// database lacks it.
func LoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Location returns the zone used for hours and calendar days.
func (s *Synthesizer) Location() *time.Location {
	return s.loc
}

// Historical generates MinPerHour to MaxPerHour events for each of the
// trailing hours before now. Every timestamp lies in [now-hours, now) and
// the batch is sorted ascending.
func (s *Synthesizer) Historical(now time.Time, hours int) []domain.Event {
	if hours <= 0 {
		return []domain.Event{}
	}
	stamps := make([]time.Time, 0, hours*MaxPerHour)
	for h := range hours {
		bucket := now.Add(-time.Duration(h+1) * time.Hour)
		n := MinPerHour + s.rng.IntN(MaxPerHour-MinPerHour+1)
		for range n {
			offset := time.Duration(s.rng.Float64() * float64(time.Hour))
			stamps = append(stamps, bucket.Add(offset))
		}
	}
	return s.Batch(stamps)
}

// Upcoming generates n events, each on a random day within the next days
// days (today included) at a time of day drawn from the evening-heavy
// mixture. The batch is sorted ascending.
func (s *Synthesizer) Upcoming(now time.Time, n, days int) []domain.Event {
	if n <= 0 {
		return []domain.Event{}
	}
	days = max(days, 1)
	local := now.In(s.loc)
	stamps := make([]time.Time, n)
	for i := range stamps {
		offset := s.rng.IntN(days)
		midnight := time.Date(local.Year(), local.Month(), local.Day()+offset, 0, 0, 0, 0, s.loc)
		stamps[i] = midnight.Add(timeOfDay(s.rng))
	}
	return s.Batch(stamps)
}

// Next generates a single event happening at now, for the live feed.
func (s *Synthesizer) Next(now time.Time) domain.Event {
	return s.event(now)
}

// Batch generates one event per timestamp and returns them sorted ascending.
func (s *Synthesizer) Batch(stamps []time.Time) []domain.Event {
	events := make([]domain.Event, len(stamps))
	for i, ts := range stamps {
		events[i] = s.event(ts)
	}
	domain.SortByTime(events, true)
	return events
}

func (s *Synthesizer) event(ts time.Time) domain.Event {
	local := ts.In(s.loc)
	category := s.category(s.rng, local)
	borough := s.borough(s.rng)
	venue := domain.Pick(s.rng, venuesByBorough[borough])
	address := fmt.Sprintf("%d %s, %s, NY",
		1+s.rng.IntN(9999), domain.Pick(s.rng, streetsByBorough[borough]), borough)

	e := domain.Event{
		ID:        s.newID(),
		Title:     s.title(category),
		Category:  category,
		Source:    domain.Pick(s.rng, domain.Sources()),
		Borough:   borough,
		Venue:     venue,
		Timestamp: local,
		Address:   address,
		Attendees: domain.IntPtr(10 + s.rng.IntN(500)),
		Price:     s.price(),
	}

	switch s.coords {
	case ResolveAddress:
		res := s.resolver.ResolveWithin(venue+", "+address, borough)
		return e.WithCoordinates(res.Coordinates, res.Precision)
	default:
		return e.WithCoordinates(domain.BoundsOf(borough).Sample(s.rng), domain.PrecisionBounds)
	}
}

func (s *Synthesizer) title(c domain.Category) string {
	if s.flatTitles {
		return domain.Pick(s.rng, allTitles)
	}
	return domain.Pick(s.rng, titlesByCategory[c])
}

func (s *Synthesizer) price() string {
	if s.rng.Float64() < 0.7 {
		return domain.Pick(s.rng, PriceLadder)
	}
	return Free
}

func (s *Synthesizer) newID() string {
	return "evt-" + uuid.Must(uuid.NewRandomFromReader(s.rng)).String()
}

// Rand exposes the synthesizer's random stream to loaders that share it.
func (s *Synthesizer) Rand() *domain.LockedRand {
	return s.rng
}

// Resolver exposes the synthesizer's address resolver.
func (s *Synthesizer) Resolver() *domain.Resolver {
	return s.resolver
}
