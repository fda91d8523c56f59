package synth

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/nyc-live-events/internal/domain"
)

var now = time.Date(2025, time.November, 28, 15, 30, 0, 0, time.UTC)

func requireInvariants(t *testing.T, events []domain.Event) {
	t.Helper()
	seen := make(map[string]bool, len(events))
	for _, e := range events {
		require.True(t, e.Category.Valid(), "category %q", e.Category)
		require.True(t, e.Source.Valid(), "source %q", e.Source)
		require.True(t, e.Borough.Valid(), "borough %q", e.Borough)
		require.False(t, seen[e.ID], "duplicate id %s", e.ID)
		seen[e.ID] = true

		c, ok := e.Coordinates()
		require.True(t, ok, "event %s has no coordinates", e.ID)
		require.True(t, domain.BoundsOf(e.Borough).Contains(c, 0), "event %s at %v outside %s", e.ID, c, e.Borough)

		require.NotNil(t, e.Attendees)
		require.GreaterOrEqual(t, *e.Attendees, 10)
		require.LessOrEqual(t, *e.Attendees, 509)
		require.NotEmpty(t, e.Title)
		require.NotEmpty(t, e.Venue)
		require.Len(t, e.Geohash, domain.GeohashLength)
	}
	require.True(t, domain.IsSorted(events), "batch not sorted ascending")
}

func TestHistorical_WindowAndVolume(t *testing.T) {
	s := New(Config{Location: time.UTC})

	events := s.Historical(now, 24)

	assert.GreaterOrEqual(t, len(events), 24*MinPerHour)
	assert.LessOrEqual(t, len(events), 24*MaxPerHour)
	for _, e := range events {
		assert.False(t, e.Timestamp.Before(now.Add(-24*time.Hour)), "%s too old", e.Timestamp)
		assert.True(t, e.Timestamp.Before(now), "%s not before now", e.Timestamp)
	}
	requireInvariants(t, events)
}

func TestHistorical_EveryHourPopulated(t *testing.T) {
	s := New(Config{Seed: 9, Location: time.UTC})
	perHour := map[int]int{}
	for _, e := range s.Historical(now, 6) {
		perHour[int((now.Sub(e.Timestamp)-time.Nanosecond)/time.Hour)]++
	}
	require.Len(t, perHour, 6)
	for h, n := range perHour {
		assert.GreaterOrEqual(t, n, MinPerHour, "hour %d", h)
		assert.LessOrEqual(t, n, MaxPerHour, "hour %d", h)
	}
}

func TestHistorical_NonPositiveHours(t *testing.T) {
	s := New(Config{})
	assert.Empty(t, s.Historical(now, 0))
	assert.Empty(t, s.Historical(now, -3))
}

func TestUpcoming(t *testing.T) {
	loc := time.FixedZone("EST", -5*3600)
	s := New(Config{Location: loc})

	events := s.Upcoming(now, 2000, 100)

	require.Len(t, events, 2000)
	requireInvariants(t, events)

	localNow := now.In(loc)
	today := time.Date(localNow.Year(), localNow.Month(), localNow.Day(), 0, 0, 0, 0, loc)
	evening := 0
	for _, e := range events {
		assert.False(t, e.Timestamp.Before(today.Add(6*time.Hour)))
		// Latest possible: day 99, 23h + 3h + 59m.
		assert.True(t, e.Timestamp.Before(today.AddDate(0, 0, 100).Add(3*time.Hour)))
		if h := e.Timestamp.In(loc).Hour(); h >= 18 && h <= 22 {
			evening++
		}
	}
	// The 18-22h band carries 35% of the mass.
	assert.InDelta(t, 0.35, float64(evening)/2000, 0.06)
}

func TestUpcoming_SpreadsAcrossDays(t *testing.T) {
	s := New(Config{Seed: 4, Location: time.UTC})
	days := map[string]bool{}
	for _, e := range s.Upcoming(now, 500, 10) {
		days[e.Timestamp.Format(time.DateOnly)] = true
	}
	// Ten start days, plus spill-over past midnight.
	assert.GreaterOrEqual(t, len(days), 10)
	assert.LessOrEqual(t, len(days), 11)
}

func TestBoroughDistribution(t *testing.T) {
	s := New(Config{Location: time.UTC})
	counts := map[domain.Borough]int{}
	events := s.Upcoming(now, 5000, 30)
	for _, e := range events {
		counts[e.Borough]++
	}
	want := map[domain.Borough]float64{
		domain.Manhattan: 0.30, domain.Brooklyn: 0.25, domain.Queens: 0.20,
		domain.Bronx: 0.15, domain.StatenIsland: 0.10,
	}
	for b, share := range want {
		assert.InDelta(t, share, float64(counts[b])/5000, 0.03, "%s", b)
	}
}

func TestHourWeightedCategories(t *testing.T) {
	s := New(Config{Location: time.UTC})
	late := time.Date(2025, time.November, 28, 22, 0, 0, 0, time.UTC)
	early := time.Date(2025, time.November, 28, 7, 0, 0, 0, time.UTC)

	share := func(ts time.Time, c domain.Category) float64 {
		n := 0
		for range 4000 {
			if s.Next(ts).Category == c {
				n++
			}
		}
		return float64(n) / 4000
	}

	assert.Greater(t, share(late, domain.CategoryNightlife), share(early, domain.CategoryNightlife))
	assert.Greater(t, share(early, domain.CategoryFitness), share(late, domain.CategoryFitness))
}

func TestFlatVariant(t *testing.T) {
	cfg := FlatVariant(0)
	cfg.Location = time.UTC
	s := New(cfg)
	events := s.Upcoming(now, 5000, 30)
	requireInvariants(t, events)

	counts := map[domain.Category]int{}
	boroughs := map[domain.Borough]int{}
	for _, e := range events {
		counts[e.Category]++
		boroughs[e.Borough]++
	}
	// Music gets 15% directly plus 4% from the uniform 40%.
	assert.InDelta(t, 0.19, float64(counts[domain.CategoryMusic])/5000, 0.03)
	// Sports only appears through the uniform 40%.
	assert.InDelta(t, 0.04, float64(counts[domain.CategorySports])/5000, 0.02)
	// The five skewed categories hold 60% plus their 20% uniform share.
	popular := counts[domain.CategoryMusic] + counts[domain.CategoryFood] + counts[domain.CategoryNightlife] +
		counts[domain.CategoryCommunity] + counts[domain.CategoryArts]
	assert.InDelta(t, 0.80, float64(popular)/5000, 0.03)
	for _, b := range domain.Boroughs() {
		assert.InDelta(t, 0.20, float64(boroughs[b])/5000, 0.03, "%s", b)
	}
}

func TestResolveAddressMode(t *testing.T) {
	s := New(Config{Location: time.UTC, Coordinates: ResolveAddress})
	events := s.Upcoming(now, 1000, 7)
	requireInvariants(t, events)

	precisions := map[domain.Precision]int{}
	for _, e := range events {
		precisions[e.GeoPrecision]++
	}
	assert.NotContains(t, precisions, domain.PrecisionBounds)
	assert.Positive(t, precisions[domain.PrecisionLandmark])
}

func TestAttachedMetadata(t *testing.T) {
	s := New(Config{Location: time.UTC})
	free := 0
	const n = 4000
	for range n {
		e := s.Next(now)
		assert.True(t, e.Timestamp.Equal(now))
		if e.Price == Free {
			free++
		} else {
			assert.Contains(t, PriceLadder, e.Price)
		}
	}
	assert.InDelta(t, 0.30, float64(free)/n, 0.03)
}

func TestTitlesComeFromCategoryPool(t *testing.T) {
	s := New(Config{Location: time.UTC})
	for _, e := range s.Upcoming(now, 500, 5) {
		assert.Contains(t, titlesByCategory[e.Category], e.Title)
		assert.Contains(t, venuesByBorough[e.Borough], e.Venue)
	}
}

func TestSeedReproducible(t *testing.T) {
	a := New(Config{Seed: 77, Location: time.UTC}).Historical(now, 3)
	b := New(Config{Seed: 77, Location: time.UTC}).Historical(now, 3)
	assert.Equal(t, a, b)

	c := New(Config{Seed: 78, Location: time.UTC}).Historical(now, 3)
	assert.NotEqual(t, a, c)
}

func TestConcurrentUse(t *testing.T) {
	s := New(Config{Location: time.UTC})
	var wg sync.WaitGroup
	results := make([][]domain.Event, 8)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = s.Historical(now, 2)
		}()
	}
	wg.Wait()

	seen := map[string]bool{}
	for _, batch := range results {
		for _, e := range batch {
			assert.False(t, seen[e.ID])
			seen[e.ID] = true
		}
	}
}

func TestPoolsCoverEnumerations(t *testing.T) {
	for _, c := range domain.Categories() {
		assert.NotEmpty(t, titlesByCategory[c], "%s", c)
	}
	for _, b := range domain.Boroughs() {
		assert.NotEmpty(t, venuesByBorough[b], "%s", b)
		assert.NotEmpty(t, streetsByBorough[b], "%s", b)
	}
}
