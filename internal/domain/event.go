package domain

import (
	"strings"
	"time"

	geohash "github.com/TomiHiltunen/geohash-golang"
)

// Category is the closed set of event categories.
type Category string

const (
	CategoryMusic     Category = "Music"
	CategoryArts      Category = "Arts & Theater"
	CategoryFood      Category = "Food & Drink"
	CategorySports    Category = "Sports"
	CategoryNightlife Category = "Nightlife"
	CategoryComedy    Category = "Comedy"
	CategoryCommunity Category = "Community"
	CategoryTechBiz   Category = "Tech & Business"
	CategoryFitness   Category = "Fitness"
	CategoryFamily    Category = "Family"
)

var categories = []Category{
	CategoryMusic, CategoryArts, CategoryFood, CategorySports, CategoryNightlife,
	CategoryComedy, CategoryCommunity, CategoryTechBiz, CategoryFitness, CategoryFamily,
}

// Categories returns every category in display order.
func Categories() []Category {
	return append([]Category(nil), categories...)
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, k := range categories {
		if c == k {
			return true
		}
	}
	return false
}

// ParseCategory matches s against the category names, ignoring case and
// surrounding whitespace.
func ParseCategory(s string) (Category, bool) {
	s = strings.TrimSpace(s)
	for _, k := range categories {
		if strings.EqualFold(s, string(k)) {
			return k, true
		}
	}
	return "", false
}

// Source is the decorative provenance tag attached to an event.
type Source string

const (
	SourceInstagram    Source = "Instagram"
	SourceEventbrite   Source = "Eventbrite"
	SourceTicketmaster Source = "Ticketmaster"
	SourceMeetup       Source = "Meetup"
	SourceFacebook     Source = "Facebook Events"
)

var sources = []Source{SourceInstagram, SourceEventbrite, SourceTicketmaster, SourceMeetup, SourceFacebook}

// Sources returns every source.
func Sources() []Source {
	return append([]Source(nil), sources...)
}

func (s Source) Valid() bool {
	for _, k := range sources {
		if s == k {
			return true
		}
	}
	return false
}

// ParseSource matches s against the source names, ignoring case. "Facebook"
// alone is accepted for Facebook Events.
func ParseSource(s string) (Source, bool) {
	s = strings.TrimSpace(s)
	for _, k := range sources {
		if strings.EqualFold(s, string(k)) {
			return k, true
		}
	}
	if strings.EqualFold(s, "facebook") {
		return SourceFacebook, true
	}
	return "", false
}

// Borough is one of the five NYC boroughs.
type Borough string

const (
	Manhattan    Borough = "Manhattan"
	Brooklyn     Borough = "Brooklyn"
	Queens       Borough = "Queens"
	Bronx        Borough = "Bronx"
	StatenIsland Borough = "Staten Island"
)

var boroughs = []Borough{Manhattan, Brooklyn, Queens, Bronx, StatenIsland}

// Boroughs returns every borough.
func Boroughs() []Borough {
	return append([]Borough(nil), boroughs...)
}

func (b Borough) Valid() bool {
	for _, k := range boroughs {
		if b == k {
			return true
		}
	}
	return false
}

// ParseBorough matches s against the borough names, ignoring case.
// "The Bronx" is accepted for Bronx.
func ParseBorough(s string) (Borough, bool) {
	s = strings.TrimSpace(s)
	for _, k := range boroughs {
		if strings.EqualFold(s, string(k)) {
			return k, true
		}
	}
	if strings.EqualFold(s, "the bronx") {
		return Bronx, true
	}
	return "", false
}

// Precision records which tier produced an event's coordinates.
type Precision string

const (
	PrecisionLandmark     Precision = "landmark"
	PrecisionNeighborhood Precision = "neighborhood"
	PrecisionStreet       Precision = "street"
	PrecisionBorough      Precision = "borough"
	PrecisionDefault      Precision = "default"
	PrecisionBounds       Precision = "bbox"
	PrecisionProvider     Precision = "provider"
	PrecisionSource       Precision = "source"
)

// GeohashLength is the number of geohash characters stored on an event
// (roughly 150m cells).
const GeohashLength = 7

// Coordinates is a WGS-84 latitude/longitude pair.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Event is a single NYC event. Values are treated as immutable once built;
// use the With* helpers to derive modified copies.
type Event struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Category  Category  `json:"category"`
	Source    Source    `json:"source"`
	Borough   Borough   `json:"borough"`
	Venue     string    `json:"venue"`
	Timestamp time.Time `json:"timestamp"`

	// Location fields are absent when coordinate resolution fails.
	Address      string    `json:"address,omitempty"`
	Lat          *float64  `json:"lat,omitempty"`
	Lng          *float64  `json:"lng,omitempty"`
	Geohash      string    `json:"geohash,omitempty"`
	GeoPrecision Precision `json:"geo_precision,omitempty"`

	Attendees *int   `json:"attendees,omitempty"`
	Price     string `json:"price,omitempty"`
}

// Coordinates returns the event position and whether it has one.
func (e Event) Coordinates() (Coordinates, bool) {
	if e.Lat == nil || e.Lng == nil {
		return Coordinates{}, false
	}
	return Coordinates{Lat: *e.Lat, Lng: *e.Lng}, true
}

// WithCoordinates returns a copy of e positioned at c.
func (e Event) WithCoordinates(c Coordinates, p Precision) Event {
	lat, lng := c.Lat, c.Lng
	e.Lat = &lat
	e.Lng = &lng
	e.GeoPrecision = p
	e.Geohash = Geohash(c, GeohashLength)
	return e
}

// Geohash encodes c and truncates the hash to n characters.
func Geohash(c Coordinates, n int) string {
	h := geohash.Encode(c.Lat, c.Lng)
	if n > 0 && n < len(h) {
		return h[:n]
	}
	return h
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int { return &v }
