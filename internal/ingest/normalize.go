package ingest

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/couchcryptid/nyc-live-events/internal/domain"
)

// UnknownVenue is used when neither title nor location names a venue.
const UnknownVenue = "Unknown Venue"

type keyword struct {
	re       *regexp.Regexp
	category domain.Category
}

func keywords(c domain.Category, words ...string) []keyword {
	out := make([]keyword, len(words))
	for i, w := range words {
		out[i] = keyword{re: regexp.MustCompile(`\b` + regexp.QuoteMeta(w) + `\b`), category: c}
	}
	return out
}

// categoryKeywords is checked in order; the first hit wins.
var categoryKeywords = concat(
	keywords(domain.CategoryMusic, "music", "concert", "live music", "performance"),
	keywords(domain.CategoryArts, "arts", "theater", "theatre", "art", "gallery", "exhibition", "museum"),
	keywords(domain.CategoryFood, "food", "drink", "dining", "restaurant", "food truck", "culinary"),
	keywords(domain.CategorySports, "sports", "game", "athletic"),
	keywords(domain.CategoryNightlife, "nightlife", "party", "club", "bar"),
	keywords(domain.CategoryComedy, "comedy", "stand-up", "improv"),
	keywords(domain.CategoryCommunity, "community", "festival", "market", "fair", "nature", "outdoor"),
	keywords(domain.CategoryTechBiz, "tech", "business", "startup", "networking", "conference"),
	keywords(domain.CategoryFitness, "fitness", "yoga", "workout", "gym", "wellness"),
	keywords(domain.CategoryFamily, "family", "kids", "children", "education"),
)

func concat(groups ...[]keyword) []keyword {
	var out []keyword
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

func matchKeyword(s string) (domain.Category, bool) {
	s = strings.ToLower(s)
	for _, k := range categoryKeywords {
		if k.re.MatchString(s) {
			return k.category, true
		}
	}
	return "", false
}

// NormalizeCategory maps a free-text category onto the closed category set.
// An exact category name wins, then keywords in the category text, then
// keywords in the title. Anything else is Community.
func NormalizeCategory(category, title string) domain.Category {
	if c, ok := domain.ParseCategory(category); ok {
		return c
	}
	if c, ok := matchKeyword(category); ok {
		return c
	}
	if c, ok := matchKeyword(title); ok {
		return c
	}
	return domain.CategoryCommunity
}

var (
	// venueRe captures the venue in titles like "DJ Set at Output".
	venueRe = regexp.MustCompile(`(?i)\bat\s+(.+)`)

	// streetAddressRe recognises locations that start with a house number,
	// e.g. "131 W 3rd St".
	streetAddressRe = regexp.MustCompile(`\d+\s+\w+`)
)

// ExtractVenue names the venue of an event: the text after "at" in the
// title, else the first comma-separated part of location, else the title.
func ExtractVenue(title, location string) string {
	if m := venueRe.FindStringSubmatch(title); m != nil {
		if v := strings.TrimSpace(m[1]); v != "" {
			return v
		}
	}
	if v := firstPart(location); v != "" {
		return v
	}
	if t := strings.TrimSpace(title); t != "" {
		return t
	}
	return UnknownVenue
}

// EnhanceLocation rewrites a bare place name into an address the resolver
// can place: "<place>, <Borough>, NY", or "<place>, New York, NY" when no
// borough is named. Strings that already contain a street number are
// returned unchanged.
func EnhanceLocation(location string) string {
	location = strings.TrimSpace(location)
	if location == "" || streetAddressRe.MatchString(location) {
		return location
	}
	venue := firstPart(location)
	if b, ok := domain.LookupBorough(location); ok {
		return fmt.Sprintf("%s, %s, NY", venue, b)
	}
	return venue + ", New York, NY"
}

func firstPart(s string) string {
	before, _, _ := strings.Cut(s, ",")
	return strings.TrimSpace(before)
}
