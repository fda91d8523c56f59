package domain

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- mock geocoder ---

type mockGeocoder struct {
	result  GeocodingResult
	err     error
	calls   int
	lastArg string
}

func (m *mockGeocoder) ForwardGeocode(_ context.Context, address string) (GeocodingResult, error) {
	m.calls++
	m.lastArg = address
	return m.result, m.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func resolvedEvent(id string, b Borough, address string) Event {
	return Event{ID: id, Borough: b, Address: address}.
		WithCoordinates(Centroid(b), PrecisionBorough)
}

// --- tests ---

func TestEnrichWithGeocoding_NilGeocoder(t *testing.T) {
	event := resolvedEvent("evt-1", Manhattan, "4 Pennsylvania Plaza, New York, NY")

	result := EnrichWithGeocoding(context.Background(), event, nil, discardLogger())

	assert.Equal(t, PrecisionBorough, result.GeoPrecision)
}

func TestEnrichWithGeocoding_ForwardGeocode(t *testing.T) {
	geo := &mockGeocoder{
		result: GeocodingResult{
			Lat:              40.7505,
			Lng:              -73.9934,
			FormattedAddress: "4 Pennsylvania Plaza, New York, New York 10001, United States",
			PlaceName:        "4 Pennsylvania Plaza",
			Confidence:       0.95,
		},
	}
	event := resolvedEvent("evt-2", Manhattan, "4 Pennsylvania Plaza, New York, NY")

	result := EnrichWithGeocoding(context.Background(), event, geo, discardLogger())

	c, ok := result.Coordinates()
	require.True(t, ok)
	assert.Equal(t, 40.7505, c.Lat)
	assert.Equal(t, -73.9934, c.Lng)
	assert.Equal(t, PrecisionProvider, result.GeoPrecision)
	assert.Equal(t, Geohash(c, GeohashLength), result.Geohash)
	assert.Equal(t, 1, geo.calls)
	assert.Equal(t, "4 Pennsylvania Plaza, New York, NY", geo.lastArg)
}

func TestEnrichWithGeocoding_Error_GracefulDegradation(t *testing.T) {
	geo := &mockGeocoder{err: errors.New("API timeout")}
	event := resolvedEvent("evt-3", Brooklyn, "620 Atlantic Ave, Brooklyn, NY")

	result := EnrichWithGeocoding(context.Background(), event, geo, discardLogger())

	assert.Equal(t, event, result)
	assert.Equal(t, 1, geo.calls)
}

func TestEnrichWithGeocoding_EmptyResult(t *testing.T) {
	geo := &mockGeocoder{}
	event := resolvedEvent("evt-4", Queens, "somewhere, Queens, NY")

	result := EnrichWithGeocoding(context.Background(), event, geo, discardLogger())

	assert.Equal(t, event, result)
}

func TestEnrichWithGeocoding_OutsideBorough(t *testing.T) {
	// A Bronx result for an event declared in Staten Island is rejected.
	geo := &mockGeocoder{result: GeocodingResult{Lat: 40.8296, Lng: -73.9262, FormattedAddress: "Yankee Stadium"}}
	event := resolvedEvent("evt-5", StatenIsland, "1 E 161st St, Staten Island, NY")

	result := EnrichWithGeocoding(context.Background(), event, geo, discardLogger())

	assert.Equal(t, PrecisionBorough, result.GeoPrecision)
	c, _ := result.Coordinates()
	assert.True(t, BoundsOf(StatenIsland).Contains(c, 0))
}

func TestEnrichWithGeocoding_Skips(t *testing.T) {
	tests := []struct {
		name  string
		event Event
	}{
		{"no address", Event{ID: "a", Borough: Manhattan}},
		{"source coordinates", Event{ID: "b", Borough: Manhattan, Address: "x"}.WithCoordinates(Centroid(Manhattan), PrecisionSource)},
		{"already geocoded", Event{ID: "c", Borough: Manhattan, Address: "x"}.WithCoordinates(Centroid(Manhattan), PrecisionProvider)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			geo := &mockGeocoder{result: GeocodingResult{Lat: 40.75, Lng: -73.99, FormattedAddress: "x"}}
			result := EnrichWithGeocoding(context.Background(), tt.event, geo, discardLogger())
			assert.Equal(t, tt.event, result)
			assert.Equal(t, 0, geo.calls)
		})
	}
}
