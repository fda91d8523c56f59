// Package export renders events in interchange formats.
package export

import (
	"time"

	geojson "github.com/paulmach/go.geojson"

	"github.com/couchcryptid/nyc-live-events/internal/domain"
)

// FeatureCollection converts events to GeoJSON point features, in input
// order. Events without coordinates are omitted.
func FeatureCollection(events []domain.Event) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, e := range events {
		c, ok := e.Coordinates()
		if !ok {
			continue
		}
		f := geojson.NewPointFeature([]float64{c.Lng, c.Lat})
		f.ID = e.ID
		f.SetProperty("title", e.Title)
		f.SetProperty("category", string(e.Category))
		f.SetProperty("source", string(e.Source))
		f.SetProperty("borough", string(e.Borough))
		f.SetProperty("venue", e.Venue)
		f.SetProperty("timestamp", e.Timestamp.Format(time.RFC3339))
		f.SetProperty("geo_precision", string(e.GeoPrecision))
		if e.Address != "" {
			f.SetProperty("address", e.Address)
		}
		if e.Geohash != "" {
			f.SetProperty("geohash", e.Geohash)
		}
		if e.Attendees != nil {
			f.SetProperty("attendees", *e.Attendees)
		}
		if e.Price != "" {
			f.SetProperty("price", e.Price)
		}
		fc.AddFeature(f)
	}
	return fc
}
