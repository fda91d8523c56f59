package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/nyc-live-events/internal/analytics"
	"github.com/couchcryptid/nyc-live-events/internal/domain"
	"github.com/couchcryptid/nyc-live-events/internal/export"
	"github.com/couchcryptid/nyc-live-events/internal/provider"
)

const (
	topVenues     = 10
	trendHours    = 12
	trendSeries   = 5
	densityCells  = 10
	densityLength = 6
	maxDayOffset  = 366

	defaultUpcomingCount = 100
	maxUpcomingCount     = 2000
	defaultUpcomingDays  = 7
	maxUpcomingDays      = 90
)

var errNoSnapshot = errors.New("event snapshot not loaded yet")

type eventsResponse struct {
	Events      []domain.Event  `json:"events"`
	Origin      provider.Origin `json:"origin"`
	GeneratedAt time.Time       `json:"generated_at"`
	Count       int             `json:"count"`
}

type statsResponse struct {
	Origin      provider.Origin                       `json:"origin"`
	GeneratedAt time.Time                             `json:"generated_at"`
	Summary     analytics.Summary                     `json:"summary"`
	ByCategory  []analytics.Count[domain.Category]    `json:"by_category"`
	ByBorough   []analytics.Count[domain.Borough]     `json:"by_borough"`
	BySource    []analytics.Count[domain.Source]      `json:"by_source"`
	ByHour      [24]int                               `json:"by_hour"`
	BySlot      []analytics.Count[analytics.TimeSlot] `json:"by_slot"`
	TopVenues   []analytics.Count[string]             `json:"top_venues"`
	Heatmap     []analytics.HeatCell                  `json:"heatmap"`
	Trends      []analytics.TrendSeries               `json:"trends"`
	Density     []analytics.Count[string]             `json:"density"`
	DayOffset   int                                   `json:"day_offset"`
	DayCount    int                                   `json:"day_count"`
}

type clustersResponse struct {
	Clusters  []analytics.Cluster `json:"clusters"`
	Threshold float64             `json:"threshold"`
	Count     int                 `json:"count"`
}

type feedResponse struct {
	Events []domain.Event `json:"events"`
	Count  int            `json:"count"`
}

type upcomingResponse struct {
	Events []domain.Event `json:"events"`
	Count  int            `json:"count"`
	Days   int            `json:"days"`
}

// filtered loads the current snapshot and applies the category and borough
// query filters. It writes the error response itself and returns false on
// failure.
func (s *Server) filtered(w http.ResponseWriter, r *http.Request) (*provider.Snapshot, []domain.Event, bool) {
	f, err := parseFilter(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return nil, nil, false
	}
	snap, ok := s.deps.Snapshots.Current()
	if !ok {
		writeError(w, http.StatusServiceUnavailable, errNoSnapshot)
		return nil, nil, false
	}
	return snap, f.Apply(snap.Events), true
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	snap, events, ok := s.filtered(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, eventsResponse{
		Events:      events,
		Origin:      snap.Origin,
		GeneratedAt: snap.GeneratedAt,
		Count:       len(events),
	})
}

func (s *Server) handleGeoJSON(w http.ResponseWriter, r *http.Request) {
	_, events, ok := s.filtered(w, r)
	if !ok {
		return
	}
	data, err := export.FeatureCollection(events).MarshalJSON()
	if err != nil {
		s.logger.Error("encode geojson", "error", err)
		writeError(w, http.StatusInternalServerError, errors.New("encode geojson"))
		return
	}
	w.Header().Set("Content-Type", "application/geo+json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleClusters(w http.ResponseWriter, r *http.Request) {
	threshold := analytics.DefaultGroupThreshold
	if v := r.URL.Query().Get("threshold"); v != "" {
		t, err := strconv.ParseFloat(v, 64)
		if err != nil || t <= 0 || t > 1 {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid threshold %q: must be in (0, 1]", v))
			return
		}
		threshold = t
	}
	_, events, ok := s.filtered(w, r)
	if !ok {
		return
	}
	clusters := analytics.GroupNearby(events, threshold)
	writeJSON(w, http.StatusOK, clustersResponse{Clusters: clusters, Threshold: threshold, Count: len(clusters)})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	offset := 0
	if v := r.URL.Query().Get("day_offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < -maxDayOffset || n > maxDayOffset {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid day_offset %q", v))
			return
		}
		offset = n
	}
	snap, events, ok := s.filtered(w, r)
	if !ok {
		return
	}

	now := domain.Now()
	loc := s.deps.Location
	writeJSON(w, http.StatusOK, statsResponse{
		Origin:      snap.Origin,
		GeneratedAt: snap.GeneratedAt,
		Summary:     analytics.Summarize(events, now, loc),
		ByCategory:  analytics.ByCategory(events),
		ByBorough:   analytics.ByBorough(events),
		BySource:    analytics.BySource(events),
		ByHour:      analytics.ByHour(events, loc),
		BySlot:      analytics.BySlot(events, loc),
		TopVenues:   analytics.TopN(analytics.ByVenue(events), topVenues),
		Heatmap:     analytics.Heatmap(events, loc),
		Trends:      analytics.Trends(events, now, loc, trendHours, trendSeries),
		Density:     analytics.TopN(analytics.CountByCell(events, densityLength), densityCells),
		DayOffset:   offset,
		DayCount:    analytics.CountOnDay(events, now, offset, loc),
	})
}

func (s *Server) handleFeed(w http.ResponseWriter, _ *http.Request) {
	events := s.deps.Feed.Chronological()
	writeJSON(w, http.StatusOK, feedResponse{Events: events, Count: len(events)})
}

// handleUpcoming synthesizes count events starting on one of the next days
// calendar days. days bounds the start day only: late-night events on the
// last day may run into the following morning.
func (s *Server) handleUpcoming(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	count, err := intParam(q, "count", defaultUpcomingCount, 1, maxUpcomingCount)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	days, err := intParam(q, "days", defaultUpcomingDays, 1, maxUpcomingDays)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	events := s.deps.Synth.Upcoming(domain.Now(), count, days)
	writeJSON(w, http.StatusOK, upcomingResponse{Events: events, Count: len(events), Days: days})
}

// parseFilter reads category and borough filters. Each parameter may repeat
// and may hold a comma-separated list.
func parseFilter(q url.Values) (analytics.Filter, error) {
	var f analytics.Filter
	for _, v := range splitParam(q, "category") {
		c, ok := domain.ParseCategory(v)
		if !ok {
			return f, fmt.Errorf("unknown category %q", v)
		}
		f.Categories = append(f.Categories, c)
	}
	for _, v := range splitParam(q, "borough") {
		b, ok := domain.ParseBorough(v)
		if !ok {
			return f, fmt.Errorf("unknown borough %q", v)
		}
		f.Boroughs = append(f.Boroughs, b)
	}
	return f, nil
}

func splitParam(q url.Values, key string) []string {
	var out []string
	for _, raw := range q[key] {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func intParam(q url.Values, key string, def, minimum, maximum int) (int, error) {
	v := q.Get(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < minimum || n > maximum {
		return 0, fmt.Errorf("invalid %s %q: must be between %d and %d", key, v, minimum, maximum)
	}
	return n, nil
}
