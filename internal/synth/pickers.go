package synth

import (
	"time"

	"github.com/couchcryptid/nyc-live-events/internal/domain"
)

// CategoryPicker chooses a category for an event starting at local time t.
type CategoryPicker func(r domain.Rand, t time.Time) domain.Category

// BoroughPicker chooses a borough.
type BoroughPicker func(r domain.Rand) domain.Borough

// HourWeighted draws a category from the hour-of-day weighting model.
func HourWeighted(r domain.Rand, t time.Time) domain.Category {
	c, ok := domain.WeightedChoice(domain.HourWeights(t.Hour()), r.Float64())
	if !ok {
		return domain.CategoryCommunity
	}
	return c
}

// flatSkew gives 60% of the mass to five popular categories; the remaining
// 40% is spread uniformly over all ten.
var flatSkew = []domain.Weighted[domain.Category]{
	{Value: domain.CategoryMusic, Weight: 0.15},
	{Value: domain.CategoryFood, Weight: 0.13},
	{Value: domain.CategoryNightlife, Weight: 0.12},
	{Value: domain.CategoryCommunity, Weight: 0.10},
	{Value: domain.CategoryArts, Weight: 0.10},
}

// FlatSkew ignores the time and uses a fixed skew table.
func FlatSkew(r domain.Rand, _ time.Time) domain.Category {
	u := r.Float64()
	cum := 0.0
	for _, w := range flatSkew {
		cum += w.Weight
		if u < cum {
			return w.Value
		}
	}
	return domain.Pick(r, domain.Categories())
}

var boroughShare = []domain.Weighted[domain.Borough]{
	{Value: domain.Manhattan, Weight: 30},
	{Value: domain.Brooklyn, Weight: 25},
	{Value: domain.Queens, Weight: 20},
	{Value: domain.Bronx, Weight: 15},
	{Value: domain.StatenIsland, Weight: 10},
}

// WeightedBoroughs uses the 30/25/20/15/10 borough distribution.
func WeightedBoroughs(r domain.Rand) domain.Borough {
	b, ok := domain.WeightedChoice(boroughShare, r.Float64())
	if !ok {
		return domain.Manhattan
	}
	return b
}

// UniformBoroughs picks every borough with equal probability.
func UniformBoroughs(r domain.Rand) domain.Borough {
	return domain.Pick(r, domain.Boroughs())
}

type timeBand struct {
	share     float64
	startHour float64
	spanHours float64
}

// dayShape is the time-of-day mixture used for upcoming windows. The late
// band runs past midnight into the next day.
var dayShape = []timeBand{
	{0.10, 6, 3},
	{0.20, 10, 4},
	{0.20, 15, 2},
	{0.35, 18, 4},
	{0.15, 23, 3},
}

// timeOfDay returns an offset from local midnight drawn from dayShape plus
// whole random minutes.
func timeOfDay(r domain.Rand) time.Duration {
	u := r.Float64()
	band := dayShape[len(dayShape)-1]
	cum := 0.0
	for _, b := range dayShape {
		cum += b.share
		if u < cum {
			band = b
			break
		}
	}
	hours := band.startHour + r.Float64()*band.spanHours
	minutes := r.IntN(60)
	return time.Duration(hours*float64(time.Hour)) + time.Duration(minutes)*time.Minute
}
