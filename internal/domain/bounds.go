package domain

// BoundingBox is a rectangular lat/lng range.
type BoundingBox struct {
	MinLat, MaxLat float64
	MinLng, MaxLng float64
}

// Contains reports whether c lies inside the box grown by margin degrees on
// every side.
func (b BoundingBox) Contains(c Coordinates, margin float64) bool {
	return c.Lat >= b.MinLat-margin && c.Lat <= b.MaxLat+margin &&
		c.Lng >= b.MinLng-margin && c.Lng <= b.MaxLng+margin
}

// Clamp moves c to the nearest point inside the box.
func (b BoundingBox) Clamp(c Coordinates) Coordinates {
	return Coordinates{
		Lat: min(max(c.Lat, b.MinLat), b.MaxLat),
		Lng: min(max(c.Lng, b.MinLng), b.MaxLng),
	}
}

// Sample draws a point uniformly inside the box.
func (b BoundingBox) Sample(r Rand) Coordinates {
	return Coordinates{
		Lat: b.MinLat + r.Float64()*(b.MaxLat-b.MinLat),
		Lng: b.MinLng + r.Float64()*(b.MaxLng-b.MinLng),
	}
}

var boroughBounds = map[Borough]BoundingBox{
	Manhattan:    {MinLat: 40.70, MaxLat: 40.85, MinLng: -74.02, MaxLng: -73.93},
	Brooklyn:     {MinLat: 40.57, MaxLat: 40.74, MinLng: -74.05, MaxLng: -73.85},
	Queens:       {MinLat: 40.60, MaxLat: 40.80, MinLng: -73.95, MaxLng: -73.70},
	Bronx:        {MinLat: 40.79, MaxLat: 40.92, MinLng: -73.93, MaxLng: -73.75},
	StatenIsland: {MinLat: 40.50, MaxLat: 40.65, MinLng: -74.25, MaxLng: -74.05},
}

var boroughCentroids = map[Borough]Coordinates{
	Manhattan:    {Lat: 40.7831, Lng: -73.9712},
	Brooklyn:     {Lat: 40.6782, Lng: -73.9442},
	Queens:       {Lat: 40.7282, Lng: -73.7949},
	Bronx:        {Lat: 40.8448, Lng: -73.8648},
	StatenIsland: {Lat: 40.5795, Lng: -74.1502},
}

// NYCBounds covers all five boroughs.
var NYCBounds = BoundingBox{MinLat: 40.50, MaxLat: 40.92, MinLng: -74.25, MaxLng: -73.70}

// BoundsOf returns the sampling box for b. Unknown boroughs get Manhattan's.
func BoundsOf(b Borough) BoundingBox {
	if box, ok := boroughBounds[b]; ok {
		return box
	}
	return boroughBounds[Manhattan]
}

// Centroid returns the fallback center of b. Unknown boroughs get Manhattan's.
func Centroid(b Borough) Coordinates {
	if c, ok := boroughCentroids[b]; ok {
		return c
	}
	return boroughCentroids[Manhattan]
}
