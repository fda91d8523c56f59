package domain

import "context"

// GeocodingResult contains location data returned by a geocoding provider.
type GeocodingResult struct {
	Lat              float64
	Lng              float64
	FormattedAddress string
	PlaceName        string
	Confidence       float64 // 0.0-1.0 provider confidence score
}

// Empty reports whether the provider found nothing.
func (r GeocodingResult) Empty() bool {
	return r.FormattedAddress == "" && r.Lat == 0 && r.Lng == 0
}

// Geocoder resolves addresses through an external provider.
type Geocoder interface {
	// ForwardGeocode converts a free-text NYC address to coordinates.
	ForwardGeocode(ctx context.Context, address string) (GeocodingResult, error)
}
