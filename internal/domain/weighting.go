package domain

// Weighted pairs a value with a non-negative selection weight.
type Weighted[T any] struct {
	Value  T
	Weight float64
}

// WeightedChoice performs inverse-CDF sampling over choices using the
// uniform draw u in [0, 1). It returns the first entry whose cumulative
// weight exceeds u times the total. Negative weights count as zero. The
// second result is false when there is nothing to choose from.
func WeightedChoice[T any](choices []Weighted[T], u float64) (T, bool) {
	var zero T
	total := 0.0
	for _, c := range choices {
		if c.Weight > 0 {
			total += c.Weight
		}
	}
	if total <= 0 {
		return zero, false
	}

	target := u * total
	cum := 0.0
	var last T
	for _, c := range choices {
		if c.Weight <= 0 {
			continue
		}
		cum += c.Weight
		last = c.Value
		if target < cum {
			return c.Value, true
		}
	}
	// u >= 1 or float rounding at the top of the range.
	return last, true
}

// peakWindow is an inclusive hour range; start > end wraps midnight.
type peakWindow struct {
	start, end int
	weight     float64
}

func (w peakWindow) contains(hour int) bool {
	if w.start <= w.end {
		return hour >= w.start && hour <= w.end
	}
	return hour >= w.start || hour <= w.end
}

var peakHours = map[Category][]peakWindow{
	CategoryNightlife: {{21, 23, 2.0}, {0, 2, 1.6}},
	CategoryMusic:     {{18, 22, 1.5}},
	CategoryComedy:    {{19, 22, 1.6}},
	CategoryFood:      {{11, 13, 1.4}, {18, 20, 1.3}},
	CategoryFitness:   {{6, 9, 1.8}},
	CategoryFamily:    {{10, 15, 1.5}},
	CategoryTechBiz:   {{9, 17, 1.3}},
	CategorySports:    {{13, 20, 1.3}},
	CategoryArts:      {{14, 20, 1.3}},
	CategoryCommunity: {{10, 16, 1.2}},
}

// CategoryWeight returns the relative likelihood multiplier for c at the
// given hour of day. The result is 1.0 outside every peak window of c and
// the largest matching window weight inside one.
func CategoryWeight(c Category, hour int) float64 {
	h := ((hour % 24) + 24) % 24
	w := 1.0
	for _, p := range peakHours[c] {
		if p.contains(h) && p.weight > w {
			w = p.weight
		}
	}
	return w
}

// HourWeights returns the weight of every category at hour, in category
// order.
func HourWeights(hour int) []Weighted[Category] {
	out := make([]Weighted[Category], len(categories))
	for i, c := range categories {
		out[i] = Weighted[Category]{Value: c, Weight: CategoryWeight(c, hour)}
	}
	return out
}
