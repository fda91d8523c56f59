package ingest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/nyc-live-events/internal/domain"
)

func TestAccessors(t *testing.T) {
	r := Record{
		"title":    "Jazz Night",
		"blank":    "   ",
		"null":     nil,
		"count":    42.0,
		"location": map[string]any{"borough": "Queens", "lat": 40.74},
		"flat":     "not an object",
	}

	tests := []struct {
		name   string
		access Accessor
		want   any
		ok     bool
	}{
		{"top level", Key("title"), "Jazz Night", true},
		{"missing", Key("nope"), nil, false},
		{"null counts as missing", Key("null"), nil, false},
		{"nested", Path("location", "borough"), "Queens", true},
		{"nested missing", Path("location", "address"), nil, false},
		{"through non-object", Path("flat", "borough"), nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.access(r)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestFirstString(t *testing.T) {
	r := Record{"blank": " ", "name": " Show ", "id": 17.0}

	assert.Equal(t, "Show", FirstString(r, "x", Key("blank"), Key("name")))
	assert.Equal(t, "17", FirstString(r, "x", Key("id")))
	assert.Equal(t, "x", FirstString(r, "x", Key("missing"), Key("blank")))
	assert.Equal(t, "x", FirstString(r, "x"))
}

func TestFirstFloat(t *testing.T) {
	r := Record{"bad": "north", "lat": "40.71", "lng": -73.99}

	v, ok := FirstFloat(r, Key("bad"), Key("lat"))
	require.True(t, ok)
	assert.InDelta(t, 40.71, v, 1e-9)

	v, ok = FirstFloat(r, Key("lng"))
	require.True(t, ok)
	assert.InDelta(t, -73.99, v, 1e-9)

	_, ok = FirstFloat(r, Key("bad"))
	assert.False(t, ok)
}

func TestFirstTime(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  time.Time
	}{
		{"rfc3339", "2025-11-28T19:30:00Z", time.Date(2025, 11, 28, 19, 30, 0, 0, time.UTC)},
		{"rfc3339 offset", "2025-11-28T19:30:00-05:00", time.Date(2025, 11, 29, 0, 30, 0, 0, time.UTC)},
		{"date only", "2025-11-28", time.Date(2025, 11, 28, 0, 0, 0, 0, time.UTC)},
		{"long form", "November 28, 2025", time.Date(2025, 11, 28, 0, 0, 0, 0, time.UTC)},
		{"unix millis", float64(time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC).UnixMilli()), time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FirstTime(Record{"ts": tt.value}, Key("ts"))
			require.True(t, ok)
			assert.True(t, tt.want.Equal(got), "got %s", got)
		})
	}

	_, ok := FirstTime(Record{"ts": "next tuesday"}, Key("ts"))
	assert.False(t, ok)
}

func TestFirstTime_NumbersAreMilliseconds(t *testing.T) {
	secs := float64(time.Date(2025, 11, 28, 19, 30, 0, 0, time.UTC).Unix())

	got, ok := FirstTime(Record{"ts": secs}, Key("ts"))
	require.True(t, ok)
	assert.Equal(t, 1970, got.Year(), "a Unix seconds value is read as milliseconds")
}

func TestFirstTime_FallsThrough(t *testing.T) {
	r := Record{"timestamp": "soon", "date": "2025-11-28"}

	got, ok := FirstTime(r, Key("timestamp"), Key("date"), Key("created_at"))

	require.True(t, ok)
	assert.Equal(t, 28, got.Day())
}

func TestNormalizeCategory(t *testing.T) {
	tests := []struct {
		category string
		title    string
		want     domain.Category
	}{
		{"Music", "", domain.CategoryMusic},
		{"arts & theater", "", domain.CategoryArts},
		{"Live Music", "", domain.CategoryMusic},
		{"food truck rally", "", domain.CategoryFood},
		{"Sports Bar Trivia", "", domain.CategorySports},
		{"Outdoor Yoga", "", domain.CategoryCommunity},
		{"", "Rooftop Party at 230 Fifth", domain.CategoryNightlife},
		{"", "Kids Art Workshop", domain.CategoryArts},
		{"misc", "Startup Pitch Night", domain.CategoryTechBiz},
		{"", "Stand-up Showcase", domain.CategoryComedy},
		{"other", "Something Else", domain.CategoryCommunity},
		{"", "", domain.CategoryCommunity},
	}
	for _, tt := range tests {
		t.Run(tt.category+"|"+tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeCategory(tt.category, tt.title))
		})
	}
}

func TestExtractVenue(t *testing.T) {
	tests := []struct {
		title    string
		location string
		want     string
	}{
		{"DJ Set at Output", "74 Wythe Ave, Brooklyn", "Output"},
		{"Dinner AT  Joe's Pub ", "", "Joe's Pub"},
		{"Beat Saber Night", "Lincoln Center, 10 Lincoln Center Plaza", "Lincoln Center"},
		{"Knicks Game", "", "Knicks Game"},
		{"", "", UnknownVenue},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractVenue(tt.title, tt.location))
		})
	}
}

func TestEnhanceLocation(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"131 W 3rd St, New York, NY 10012", "131 W 3rd St, New York, NY 10012"},
		{"Prospect Park, Brooklyn", "Prospect Park, Brooklyn, NY"},
		{"Snug Harbor, Staten Island", "Snug Harbor, Staten Island, NY"},
		{"Central Park", "Central Park, New York, NY"},
		{"The Met, Manhattan", "The Met, Manhattan, NY"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, EnhanceLocation(tt.in))
		})
	}
}
