package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedRand returns the same draw every time.
type fixedRand float64

func (f fixedRand) Float64() float64 { return float64(f) }
func (f fixedRand) IntN(n int) int   { return int(float64(f) * float64(n)) }

func near(t *testing.T, want, got Coordinates, tolerance float64) {
	t.Helper()
	assert.LessOrEqual(t, math.Abs(want.Lat-got.Lat), tolerance, "lat %v vs %v", got.Lat, want.Lat)
	assert.LessOrEqual(t, math.Abs(want.Lng-got.Lng), tolerance, "lng %v vs %v", got.Lng, want.Lng)
}

func TestResolve_Tiers(t *testing.T) {
	tests := []struct {
		name      string
		address   string
		want      Coordinates
		tolerance float64
		precision Precision
		match     string
	}{
		{"landmark", "Madison Square Garden", Coordinates{40.7505, -73.9934}, 0.003, PrecisionLandmark, "madison square garden"},
		{"landmark case insensitive", "concert at BARCLAYS CENTER tonight", Coordinates{40.6826, -73.9754}, 0.003, PrecisionLandmark, "barclays center"},
		{"landmark table checked before neighborhoods", "Somewhere in Astoria", Coordinates{40.7722, -73.9300}, 0.003, PrecisionLandmark, "astoria"},
		{"neighborhood", "loft in Greenpoint", Coordinates{40.7304, -73.9517}, 0.003, PrecisionNeighborhood, "greenpoint"},
		{"street band greenwich village", "123 E 10th St, New York, NY", Coordinates{40.7336, -74.0027}, 0.003, PrecisionStreet, "greenwich village"},
		{"street band chelsea", "208 W 23rd St, New York, NY 10011", Coordinates{40.7465, -74.0014}, 0.003, PrecisionStreet, "chelsea"},
		{"street band midtown", "226 W 46th St, New York, NY 10036", Coordinates{40.7549, -73.9840}, 0.003, PrecisionStreet, "midtown"},
		{"street band upper west side", "100 W 72nd St, New York, NY", Coordinates{40.7870, -73.9754}, 0.003, PrecisionStreet, "upper west side"},
		{"street band upper east side", "1 E 96th St, New York, NY", Coordinates{40.7736, -73.9566}, 0.003, PrecisionStreet, "upper east side"},
		{"numbered street outside manhattan", "80 35th St, Brooklyn, NY 11232", Coordinates{40.6782, -73.9442}, 0.02, PrecisionBorough, "Brooklyn"},
		{"borough", "Staten Island", Coordinates{40.5795, -74.1502}, 0.02, PrecisionBorough, "Staten Island"},
		{"default", "nowhere in particular", Coordinates{40.7831, -73.9712}, 0.015, PrecisionDefault, ""},
	}

	r := NewResolver(NewRand(7))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for range 50 {
				res := r.Resolve(tt.address)
				assert.Equal(t, tt.precision, res.Precision)
				assert.Equal(t, tt.match, res.Match)
				near(t, tt.want, res.Coordinates, tt.tolerance)
			}
		})
	}
}

func TestResolve_MidtownNotChosenForTenthStreet(t *testing.T) {
	r := NewResolver(NewRand(1))
	res := r.Resolve("123 E 10th St, New York, NY")
	assert.Equal(t, "greenwich village", res.Match)
	assert.NotEqual(t, "midtown", res.Match)
}

func TestResolve_JitterBounds(t *testing.T) {
	tests := []struct {
		name    string
		address string
		draw    float64
		want    Coordinates
	}{
		{"landmark low", "times square", 0, Coordinates{40.7580 - 0.0015, -73.9855 - 0.0015}},
		{"landmark high", "times square", 0.999999, Coordinates{40.7580 + 0.0015, -73.9855 + 0.0015}},
		{"borough low", "Queens", 0, Coordinates{40.7282 - 0.01, -73.7949 - 0.01}},
		{"default low", "", 0, Coordinates{40.7831 - 0.0075, -73.9712 - 0.0075}},
		{"no jitter at midpoint", "yankee stadium", 0.5, Coordinates{40.8296, -73.9262}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := NewResolver(fixedRand(tt.draw)).Resolve(tt.address)
			near(t, tt.want, res.Coordinates, 1e-5)
		})
	}
}

func TestResolve_JitterVaries(t *testing.T) {
	r := NewResolver(NewRand(3))
	a := r.Resolve("times square")
	b := r.Resolve("times square")
	assert.NotEqual(t, a.Coordinates, b.Coordinates)
}

func TestResolveWithin(t *testing.T) {
	r := NewResolver(NewRand(11))

	t.Run("keeps result inside borough", func(t *testing.T) {
		res := r.ResolveWithin("Yankee Stadium", Bronx)
		assert.Equal(t, PrecisionLandmark, res.Precision)
		assert.True(t, BoundsOf(Bronx).Contains(res.Coordinates, 0))
	})

	t.Run("replaces result outside borough", func(t *testing.T) {
		for range 100 {
			res := r.ResolveWithin("Yankee Stadium", StatenIsland)
			assert.Equal(t, PrecisionBorough, res.Precision)
			assert.Equal(t, "Staten Island", res.Match)
			assert.True(t, BoundsOf(StatenIsland).Contains(res.Coordinates, 0))
			near(t, Centroid(StatenIsland), res.Coordinates, 0.01)
		}
	})

	t.Run("every borough centroid fallback fits its box", func(t *testing.T) {
		for _, b := range Boroughs() {
			for _, draw := range []float64{0, 0.999999} {
				res := NewResolver(fixedRand(draw)).ResolveWithin("unknown place", b)
				require.True(t, BoundsOf(b).Contains(res.Coordinates, 0), "%s draw %v", b, draw)
			}
		}
	})
}

func TestBoroughFromAddress(t *testing.T) {
	tests := []struct {
		address string
		want    Borough
		named   bool
	}{
		{"131 W 3rd St, New York, NY 10012", Manhattan, true},
		{"Lower Manhattan", Manhattan, true},
		{"5th Ave & Union St, Brooklyn, NY 11215", Brooklyn, true},
		{"47-01 111th St, Queens, NY 11368", Queens, true},
		{"1 E 161st St, Bronx, NY 10451", Bronx, true},
		{"1000 Richmond Terrace, Staten Island, NY 10301", StatenIsland, true},
		{"Hoboken, NJ", Manhattan, false},
		{"", Manhattan, false},
	}
	for _, tt := range tests {
		t.Run(tt.address, func(t *testing.T) {
			assert.Equal(t, tt.want, BoroughFromAddress(tt.address))
			_, named := LookupBorough(tt.address)
			assert.Equal(t, tt.named, named)
		})
	}
}

func TestTablesInsideNYC(t *testing.T) {
	for _, p := range append(append([]namedPoint{}, landmarks...), neighborhoods...) {
		assert.True(t, NYCBounds.Contains(p.at, 0), p.name)
	}
	for _, b := range Boroughs() {
		assert.True(t, BoundsOf(b).Contains(Centroid(b), 0), string(b))
	}
}
