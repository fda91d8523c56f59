package domain

import (
	"context"
	"log/slog"
)

// EnrichWithGeocoding replaces table-resolved coordinates with a provider
// result when one is available. Events that already carry source or provider
// coordinates, or have no address, are returned unchanged. Provider errors,
// empty results, and results outside the event's borough leave the event as
// it was (graceful degradation).
func EnrichWithGeocoding(ctx context.Context, event Event, geocoder Geocoder, logger *slog.Logger) Event {
	if geocoder == nil || event.Address == "" {
		return event
	}
	if event.GeoPrecision == PrecisionSource || event.GeoPrecision == PrecisionProvider {
		return event
	}

	result, err := geocoder.ForwardGeocode(ctx, event.Address)
	if err != nil {
		logger.Warn("forward geocoding failed",
			"event_id", event.ID,
			"address", event.Address,
			"error", err,
		)
		return event
	}
	if result.Empty() {
		return event
	}

	c := Coordinates{Lat: result.Lat, Lng: result.Lng}
	if !BoundsOf(event.Borough).Contains(c, 0) {
		logger.Debug("geocoding result outside borough",
			"event_id", event.ID,
			"borough", event.Borough,
			"lat", c.Lat,
			"lng", c.Lng,
		)
		return event
	}
	return event.WithCoordinates(c, PrecisionProvider)
}
