// Package domain models NYC event records and the pure logic shared by every
// loader and generator.
//
// # Event Model
//
// An [Event] always carries a [Category], [Source], and [Borough] drawn from
// closed enumerations; loaders normalise anything else before an event is
// built. Coordinates are optional. When present they lie inside the
// [BoundsOf] box of the event's borough, and [Event.GeoPrecision] records
// which tier produced them:
//
//	source        lat/lng supplied by the remote record and inside the borough box
//	provider      external geocoder result (Mapbox), see [EnrichWithGeocoding]
//	landmark      named venue table, jitter ±0.0015°
//	neighborhood  neighborhood center table, jitter ±0.0015°
//	street        Manhattan cross-street band, jitter ±0.0015°
//	borough       borough centroid, jitter ±0.01°
//	default       Manhattan centroid, jitter ±0.0075°
//	bbox          uniform sample inside the borough box (synthetic events)
//
// # Address Resolution
//
// [Resolver] is a table geocoder with no accuracy guarantee. Lookups are
// case-insensitive substring matches, first hit wins:
//
//	1. landmarks        "madison square garden", "barclays center", ...
//	2. neighborhoods    "greenwich village", "astoria", ...
//	3. cross streets    "<num> <n|s|e|w> <num><st|nd|rd|th>" in a Manhattan address:
//	                    <14 Greenwich Village, <34 Chelsea, <59 Midtown,
//	                    <86 Upper West Side, otherwise Upper East Side
//	4. borough names    centroid of the first borough named
//	5. default          Manhattan centroid
//
// Jitter only keeps co-located markers apart. [Resolver.ResolveWithin] adds
// the borough-box guarantee on top.
//
// # Category Weighting
//
// [CategoryWeight] returns a multiplier of at least 1.0 per category and hour;
// peak windows raise it (Nightlife 21-23 x2.0, Music 18-22 x1.5, Fitness
// 6-9 x1.8, ...). [WeightedChoice] turns any weight table into a draw.
//
// # Time and Randomness
//
// The package clock ([SetClock]) and [LockedRand] seeds let tests and the
// fixture generator pin output. Production uses the real clock and a random
// seed.
package domain
