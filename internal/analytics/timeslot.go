package analytics

import (
	"time"

	"github.com/couchcryptid/nyc-live-events/internal/domain"
)

// TimeSlot is a coarse part of the day.
type TimeSlot string

const (
	Morning   TimeSlot = "Morning"   // 06:00-11:59
	Afternoon TimeSlot = "Afternoon" // 12:00-16:59
	Evening   TimeSlot = "Evening"   // 17:00-21:59
	Night     TimeSlot = "Night"     // 22:00-05:59
)

// Slots returns the slots in day order.
func Slots() []TimeSlot {
	return []TimeSlot{Morning, Afternoon, Evening, Night}
}

// SlotOf classifies an hour of day. Hours outside 0-23 are reduced mod 24.
func SlotOf(hour int) TimeSlot {
	h := ((hour % 24) + 24) % 24
	switch {
	case h >= 6 && h <= 11:
		return Morning
	case h >= 12 && h <= 16:
		return Afternoon
	case h >= 17 && h <= 21:
		return Evening
	default:
		return Night
	}
}

// HeatCell is one borough and time-slot cell of the activity heatmap.
type HeatCell struct {
	Borough domain.Borough `json:"borough"`
	Slot    TimeSlot       `json:"slot"`
	Count   int            `json:"count"`
}

// Heatmap cross-tabulates events by borough and local time slot. Every
// borough and slot combination is present, borough-major.
func Heatmap(events []domain.Event, loc *time.Location) []HeatCell {
	slots := Slots()
	bs := domain.Boroughs()
	cells := make([]HeatCell, 0, len(bs)*len(slots))
	index := make(map[HeatCell]int, cap(cells))
	for _, b := range bs {
		for _, s := range slots {
			index[HeatCell{Borough: b, Slot: s}] = len(cells)
			cells = append(cells, HeatCell{Borough: b, Slot: s})
		}
	}
	for _, e := range events {
		key := HeatCell{Borough: e.Borough, Slot: SlotOf(e.Timestamp.In(loc).Hour())}
		if i, ok := index[key]; ok {
			cells[i].Count++
		}
	}
	return cells
}

// BusiestSlot returns the first heatmap cell with the highest count, and
// false when there are no events.
func BusiestSlot(events []domain.Event, loc *time.Location) (HeatCell, bool) {
	var best HeatCell
	for _, c := range Heatmap(events, loc) {
		if c.Count > best.Count {
			best = c
		}
	}
	return best, best.Count > 0
}

// BySlot counts events per time slot, listing every slot.
func BySlot(events []domain.Event, loc *time.Location) []Count[TimeSlot] {
	counts := CountBy(events, func(e domain.Event) TimeSlot { return SlotOf(e.Timestamp.In(loc).Hour()) })
	return withBaseline(Slots(), counts)
}
