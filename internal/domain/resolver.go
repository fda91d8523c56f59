package domain

import (
	"regexp"
	"strconv"
	"strings"
)

// Jitter radii in degrees. The applied offset per axis is (u-0.5)*radius.
const (
	PlaceJitter    = 0.003
	BoroughJitter  = 0.02
	FallbackJitter = 0.015
)

type namedPoint struct {
	name string
	at   Coordinates
}

// Tables are ordered; the first substring hit wins.
var landmarks = []namedPoint{
	{"madison square garden", Coordinates{40.7505, -73.9934}},
	{"central park", Coordinates{40.7829, -73.9654}},
	{"times square", Coordinates{40.7580, -73.9855}},
	{"union square", Coordinates{40.7359, -73.9911}},
	{"lincoln center", Coordinates{40.7722, -73.9843}},
	{"washington square park", Coordinates{40.7308, -73.9973}},
	{"bryant park", Coordinates{40.7536, -73.9832}},
	{"the high line", Coordinates{40.7480, -74.0048}},
	{"chelsea market", Coordinates{40.7425, -74.0061}},
	{"rockefeller center", Coordinates{40.7587, -73.9787}},
	{"barclays center", Coordinates{40.6826, -73.9754}},
	{"prospect park", Coordinates{40.6602, -73.9690}},
	{"brooklyn bridge", Coordinates{40.7061, -73.9969}},
	{"coney island", Coordinates{40.5755, -73.9707}},
	{"brooklyn museum", Coordinates{40.6712, -73.9636}},
	{"dumbo", Coordinates{40.7033, -73.9888}},
	{"williamsburg", Coordinates{40.7081, -73.9571}},
	{"park slope", Coordinates{40.6710, -73.9774}},
	{"bushwick", Coordinates{40.6942, -73.9189}},
	{"citi field", Coordinates{40.7571, -73.8458}},
	{"flushing meadows", Coordinates{40.7400, -73.8448}},
	{"astoria", Coordinates{40.7722, -73.9300}},
	{"long island city", Coordinates{40.7447, -73.9485}},
	{"rockaway beach", Coordinates{40.5834, -73.8154}},
	{"yankee stadium", Coordinates{40.8296, -73.9262}},
	{"bronx zoo", Coordinates{40.8506, -73.8769}},
	{"pelham bay park", Coordinates{40.8664, -73.8067}},
	{"st. george theatre", Coordinates{40.6431, -74.0776}},
	{"snug harbor", Coordinates{40.6440, -74.1021}},
	{"staten island zoo", Coordinates{40.6257, -74.1154}},
}

var neighborhoods = []namedPoint{
	{"financial district", Coordinates{40.7074, -74.0113}},
	{"tribeca", Coordinates{40.7163, -74.0086}},
	{"soho", Coordinates{40.7233, -74.0030}},
	{"greenwich village", Coordinates{40.7336, -74.0027}},
	{"east village", Coordinates{40.7265, -73.9815}},
	{"west village", Coordinates{40.7358, -74.0036}},
	{"chelsea", Coordinates{40.7465, -74.0014}},
	{"gramercy", Coordinates{40.7379, -73.9862}},
	{"midtown", Coordinates{40.7549, -73.9840}},
	{"hell's kitchen", Coordinates{40.7638, -73.9918}},
	{"upper east side", Coordinates{40.7736, -73.9566}},
	{"upper west side", Coordinates{40.7870, -73.9754}},
	{"harlem", Coordinates{40.8116, -73.9465}},
	{"morningside heights", Coordinates{40.8089, -73.9613}},
	{"inwood", Coordinates{40.8677, -73.9212}},
	{"downtown brooklyn", Coordinates{40.6942, -73.9866}},
	{"brooklyn heights", Coordinates{40.6958, -73.9936}},
	{"fort greene", Coordinates{40.6910, -73.9744}},
	{"greenpoint", Coordinates{40.7304, -73.9517}},
	{"bedford-stuyvesant", Coordinates{40.6872, -73.9418}},
	{"crown heights", Coordinates{40.6689, -73.9420}},
	{"sunset park", Coordinates{40.6490, -74.0060}},
	{"bay ridge", Coordinates{40.6264, -74.0299}},
	{"flatbush", Coordinates{40.6528, -73.9590}},
	{"flushing", Coordinates{40.7677, -73.8330}},
	{"jamaica", Coordinates{40.6976, -73.8123}},
	{"forest hills", Coordinates{40.7186, -73.8448}},
	{"jackson heights", Coordinates{40.7557, -73.8831}},
	{"south bronx", Coordinates{40.8141, -73.9190}},
	{"fordham", Coordinates{40.8612, -73.8977}},
	{"riverdale", Coordinates{40.8908, -73.9087}},
	{"st. george", Coordinates{40.6431, -74.0776}},
	{"south beach", Coordinates{40.5824, -74.0741}},
}

// streetBands maps a Manhattan cross-street number to the neighborhood whose
// center stands in for it: the first band with street < limit applies.
var streetBands = []struct {
	limit        int
	neighborhood string
}{
	{14, "greenwich village"},
	{34, "chelsea"},
	{59, "midtown"},
	{86, "upper west side"},
	{1 << 30, "upper east side"},
}

var crossStreetPattern = regexp.MustCompile(`(\d+)\s+([nsew]?\s*\d+(?:st|nd|rd|th))`)

// Resolution is the outcome of resolving an address.
type Resolution struct {
	Coordinates
	Precision Precision
	// Match is the table entry or borough that matched, empty for the default.
	Match string
}

// Resolver maps free-text NYC addresses to approximate coordinates by table
// lookup. Results carry random jitter so co-located events do not stack.
type Resolver struct {
	rng Rand
}

// NewResolver returns a Resolver drawing jitter from rng.
func NewResolver(rng Rand) *Resolver {
	return &Resolver{rng: rng}
}

// Resolve always returns coordinates, trying landmarks, neighborhoods,
// Manhattan cross streets, borough names, and finally the Manhattan centroid.
func (r *Resolver) Resolve(address string) Resolution {
	addr := strings.ToLower(address)

	for _, p := range landmarks {
		if strings.Contains(addr, p.name) {
			return r.jittered(p.at, PlaceJitter, PrecisionLandmark, p.name)
		}
	}
	for _, p := range neighborhoods {
		if strings.Contains(addr, p.name) {
			return r.jittered(p.at, PlaceJitter, PrecisionNeighborhood, p.name)
		}
	}
	if name, ok := crossStreetNeighborhood(addr); ok {
		return r.jittered(neighborhoodCenter(name), PlaceJitter, PrecisionStreet, name)
	}
	if b, ok := boroughIn(addr); ok {
		return r.jittered(Centroid(b), BoroughJitter, PrecisionBorough, string(b))
	}
	return r.jittered(Centroid(Manhattan), FallbackJitter, PrecisionDefault, "")
}

// ResolveWithin resolves address but guarantees the result lies inside b's
// bounding box, substituting b's jittered centroid when the address resolves
// elsewhere.
func (r *Resolver) ResolveWithin(address string, b Borough) Resolution {
	res := r.Resolve(address)
	box := BoundsOf(b)
	if box.Contains(res.Coordinates, 0) {
		return res
	}
	fb := r.jittered(Centroid(b), BoroughJitter, PrecisionBorough, string(b))
	fb.Coordinates = box.Clamp(fb.Coordinates)
	return fb
}

func (r *Resolver) jittered(c Coordinates, radius float64, p Precision, match string) Resolution {
	return Resolution{
		Coordinates: Coordinates{
			Lat: c.Lat + (r.rng.Float64()-0.5)*radius,
			Lng: c.Lng + (r.rng.Float64()-0.5)*radius,
		},
		Precision: p,
		Match:     match,
	}
}

// crossStreetNeighborhood applies the street grid only to Manhattan
// addresses; numbered streets in other boroughs do not follow it.
func crossStreetNeighborhood(addr string) (string, bool) {
	if !strings.Contains(addr, "new york, ny") && !strings.Contains(addr, "manhattan") {
		return "", false
	}
	m := crossStreetPattern.FindStringSubmatch(addr)
	if m == nil {
		return "", false
	}
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, m[2])
	n, err := strconv.Atoi(digits)
	if err != nil {
		return "", false
	}
	for _, band := range streetBands {
		if n < band.limit {
			return band.neighborhood, true
		}
	}
	return "", false
}

func neighborhoodCenter(name string) Coordinates {
	for _, p := range neighborhoods {
		if p.name == name {
			return p.at
		}
	}
	return Centroid(Manhattan)
}

// boroughIn returns the first borough whose name appears in addr, which must
// already be lower case.
func boroughIn(addr string) (Borough, bool) {
	for _, b := range boroughs {
		if strings.Contains(addr, strings.ToLower(string(b))) {
			return b, true
		}
	}
	return "", false
}

// BoroughFromAddress infers the borough named by an address. "New York, NY"
// means Manhattan; anything unrecognised defaults to Manhattan.
func BoroughFromAddress(address string) Borough {
	b, _ := LookupBorough(address)
	return b
}

// LookupBorough is BoroughFromAddress that also reports whether the address
// named a borough at all.
func LookupBorough(address string) (Borough, bool) {
	addr := strings.ToLower(address)
	if strings.Contains(addr, "manhattan") || strings.Contains(addr, "new york, ny") {
		return Manhattan, true
	}
	if b, ok := boroughIn(addr); ok {
		return b, true
	}
	return Manhattan, false
}
