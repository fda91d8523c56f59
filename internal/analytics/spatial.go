package analytics

import (
	"math"

	"github.com/couchcryptid/nyc-live-events/internal/domain"
)

// DefaultGroupThreshold is the marker grouping distance in degrees.
const DefaultGroupThreshold = 0.002

// Cluster is a set of events close enough to share one map marker.
type Cluster struct {
	Center domain.Coordinates `json:"center"`
	Events []domain.Event     `json:"events"`
}

// GroupNearby greedily groups positioned events in input order: each event
// joins the first cluster whose anchor (first member) lies within threshold
// degrees on both axes, else it starts a new cluster. Centers are member
// means. Events without coordinates are left out.
func GroupNearby(events []domain.Event, threshold float64) []Cluster {
	clusters := []Cluster{}
	var anchors []domain.Coordinates
	for _, e := range events {
		c, ok := e.Coordinates()
		if !ok {
			continue
		}
		joined := false
		for i, a := range anchors {
			if math.Abs(a.Lat-c.Lat) < threshold && math.Abs(a.Lng-c.Lng) < threshold {
				clusters[i].Events = append(clusters[i].Events, e)
				joined = true
				break
			}
		}
		if !joined {
			anchors = append(anchors, c)
			clusters = append(clusters, Cluster{Events: []domain.Event{e}})
		}
	}
	for i := range clusters {
		var lat, lng float64
		for _, e := range clusters[i].Events {
			c, _ := e.Coordinates()
			lat += c.Lat
			lng += c.Lng
		}
		n := float64(len(clusters[i].Events))
		clusters[i].Center = domain.Coordinates{Lat: lat / n, Lng: lng / n}
	}
	return clusters
}

// CountByCell counts positioned events per geohash cell of the given
// precision (characters), densest first.
func CountByCell(events []domain.Event, precision int) []Count[string] {
	var positioned []domain.Event
	for _, e := range events {
		if _, ok := e.Coordinates(); ok {
			positioned = append(positioned, e)
		}
	}
	counts := CountBy(positioned, func(e domain.Event) string {
		if len(e.Geohash) >= precision && precision > 0 {
			return e.Geohash[:precision]
		}
		c, _ := e.Coordinates()
		return domain.Geohash(c, precision)
	})
	return TopN(counts, len(counts))
}
