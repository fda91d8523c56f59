package ingest

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/couchcryptid/nyc-live-events/internal/domain"
)

// Field tables for remote API records, in lookup order.
var (
	IDFields        = []Accessor{Key("id"), Key("_id")}
	TitleFields     = []Accessor{Key("title"), Key("name")}
	CategoryFields  = []Accessor{Key("category")}
	BoroughFields   = []Accessor{Key("borough"), Path("location", "borough")}
	TimestampFields = []Accessor{Key("timestamp"), Key("date"), Key("created_at")}
	AddressFields   = []Accessor{Key("address"), Path("location", "address")}
	LatFields       = []Accessor{Key("lat"), Key("latitude"), Path("location", "lat")}
	LngFields       = []Accessor{Key("lng"), Key("longitude"), Path("location", "lng")}
	VenueFields     = []Accessor{Key("venue"), Path("location", "name")}
	SourceFields    = []Accessor{Key("source")}
	AttendeeFields  = []Accessor{Key("attendees")}
	PriceFields     = []Accessor{Key("price")}
)

const untitled = "Untitled Event"

var (
	corpusPrices = []string{"Free", "$15", "$25", "$35", "$50", "$75"}
	seedPrices   = []string{"$15", "$25", "$35", "$50"}
)

// Rand is the random stream a Mapper draws fallbacks from. It doubles as the
// entropy source for generated ids.
type Rand interface {
	domain.Rand
	io.Reader
}

// Mapper builds domain events from raw records. Missing fields get defaults
// and every event leaves with coordinates inside its borough's box.
type Mapper struct {
	resolver *domain.Resolver
	rng      Rand
	loc      *time.Location
	now      func() time.Time
}

// NewMapper returns a Mapper resolving addresses with rng-driven jitter.
// Calendar dates from the corpus are interpreted in loc.
func NewMapper(rng Rand, loc *time.Location) *Mapper {
	if loc == nil {
		loc = time.UTC
	}
	return &Mapper{
		resolver: domain.NewResolver(rng),
		rng:      rng,
		loc:      loc,
		now:      domain.Now,
	}
}

// FromAPI maps one remote API record. It never fails: absent fields fall
// back to the documented defaults.
func (m *Mapper) FromAPI(r Record) domain.Event {
	title := FirstString(r, untitled, TitleFields...)
	address := FirstString(r, "", AddressFields...)

	borough, ok := domain.ParseBorough(FirstString(r, "", BoroughFields...))
	if !ok {
		borough = domain.BoroughFromAddress(address)
	}

	category := domain.CategoryCommunity
	if raw := FirstString(r, "", CategoryFields...); raw != "" {
		category = NormalizeCategory(raw, title)
	}

	ts, ok := FirstTime(r, TimestampFields...)
	if !ok {
		ts = m.now()
	}

	e := domain.Event{
		ID:        FirstString(r, "", IDFields...),
		Title:     title,
		Category:  category,
		Source:    m.source(r),
		Borough:   borough,
		Venue:     FirstString(r, "", VenueFields...),
		Timestamp: ts,
		Address:   address,
		Price:     FirstString(r, "", PriceFields...),
	}
	if e.ID == "" {
		e.ID = "api-" + uuid.Must(uuid.NewRandomFromReader(m.rng)).String()
	}
	if e.Venue == "" {
		e.Venue = ExtractVenue(title, address)
	}
	if n, ok := FirstFloat(r, AttendeeFields...); ok && n >= 0 {
		e.Attendees = domain.IntPtr(int(n))
	}

	lat, latOK := FirstFloat(r, LatFields...)
	lng, lngOK := FirstFloat(r, LngFields...)
	given := domain.Coordinates{Lat: lat, Lng: lng}
	if latOK && lngOK && domain.BoundsOf(borough).Contains(given, 0) {
		return e.WithCoordinates(given, domain.PrecisionSource)
	}
	query := address
	if query == "" {
		query = fmt.Sprintf("%s, %s, NY", e.Venue, borough)
	}
	res := m.resolver.ResolveWithin(query, borough)
	return e.WithCoordinates(res.Coordinates, res.Precision)
}

// FromCorpus maps the i-th record of the public events corpus. Records
// without a location are rejected.
func (m *Mapper) FromCorpus(i int, r Record) (domain.Event, bool) {
	location := FirstString(r, "", Key("location"))
	if location == "" {
		return domain.Event{}, false
	}
	title := FirstString(r, fmt.Sprintf("Event %d", i+1), Key("title"))
	address := EnhanceLocation(location)

	borough, ok := domain.LookupBorough(location)
	if !ok {
		borough = domain.BoroughFromAddress(address)
	}

	e := domain.Event{
		ID:        fmt.Sprintf("gh_evt_%d", i),
		Title:     title,
		Category:  NormalizeCategory(FirstString(r, "", CategoryFields...), title),
		Source:    m.source(r),
		Borough:   borough,
		Venue:     ExtractVenue(title, location),
		Timestamp: m.corpusTime(FirstString(r, "", Key("start_date"))),
		Address:   address,
		Attendees: domain.IntPtr(10 + m.rng.IntN(500)),
		Price:     domain.Pick(m.rng, corpusPrices),
	}
	res := m.resolver.ResolveWithin(address, borough)
	return e.WithCoordinates(res.Coordinates, res.Precision), true
}

// FromSeed maps a record of the embedded seed dataset (id, name, address,
// category, source). Timestamps are spread over the last 24 hours.
func (m *Mapper) FromSeed(r Record) (domain.Event, bool) {
	address := FirstString(r, "", AddressFields...)
	if address == "" {
		return domain.Event{}, false
	}
	title := FirstString(r, untitled, TitleFields...)
	borough := domain.BoroughFromAddress(address)

	price := "Free"
	if m.rng.Float64() < 0.7 {
		price = domain.Pick(m.rng, seedPrices)
	}

	e := domain.Event{
		ID:        FirstString(r, "", IDFields...),
		Title:     title,
		Category:  NormalizeCategory(FirstString(r, "", CategoryFields...), title),
		Source:    m.source(r),
		Borough:   borough,
		Venue:     ExtractVenue(title, ""),
		Timestamp: m.recent(),
		Address:   address,
		Attendees: domain.IntPtr(10 + m.rng.IntN(500)),
		Price:     price,
	}
	if e.ID == "" {
		e.ID = "seed-" + uuid.Must(uuid.NewRandomFromReader(m.rng)).String()
	}
	res := m.resolver.ResolveWithin(address, borough)
	return e.WithCoordinates(res.Coordinates, res.Precision), true
}

// source parses the record's source tag, choosing one at random when absent
// or unknown.
func (m *Mapper) source(r Record) domain.Source {
	if s, ok := domain.ParseSource(FirstString(r, "", SourceFields...)); ok {
		return s
	}
	return domain.Pick(m.rng, domain.Sources())
}

// corpusTime keeps the calendar day of a corpus date and places the event
// between 09:00 and 22:59 local time. Unparsable dates land somewhere in the
// last 24 hours.
func (m *Mapper) corpusTime(date string) time.Time {
	t, ok := FirstTime(Record{"d": date}, Key("d"))
	if !ok {
		return m.recent()
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 9+m.rng.IntN(14), m.rng.IntN(60), 0, 0, m.loc)
}

func (m *Mapper) recent() time.Time {
	ago := time.Duration(m.rng.IntN(24))*time.Hour + time.Duration(m.rng.IntN(60))*time.Minute
	return m.now().Add(-ago)
}
