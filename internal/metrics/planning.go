package metrics

import (
	"slices"

	"conciergerie/internal/core"
)

// PlannedBooking is a booking with its length. Bookings with unusable dates
// have zero nights and InvalidRange set.
type PlannedBooking struct {
	core.Booking
	Nights       int64 `json:"nights"`
	InvalidRange bool  `json:"invalidRange,omitempty"`
}

// PropertyPlanning is one row of the planning: a property and its bookings.
type PropertyPlanning struct {
	Property core.Property    `json:"property"`
	Bookings []PlannedBooking `json:"bookings"`
}

type Planning struct {
	Properties []PropertyPlanning `json:"properties"`
	Timeline   []PlannedBooking   `json:"timeline"`
}

// BuildPlanning orders bookings by start date, keeping input order for
// equal dates, and groups them under their property. Properties keep their
// input order and appear even without bookings.
func BuildPlanning(properties []core.Property, bookings []core.Booking) Planning {
	timeline := make([]PlannedBooking, 0, len(bookings))
	for _, b := range bookings {
		nights, err := Nights(b)
		timeline = append(timeline, PlannedBooking{Booking: b, Nights: nights, InvalidRange: err != nil})
	}
	slices.SortStableFunc(timeline, func(a, b PlannedBooking) int {
		return a.StartDate.Compare(b.StartDate.Time)
	})

	byProperty := make(map[string][]PlannedBooking, len(properties))
	for _, pb := range timeline {
		byProperty[pb.PropertyID] = append(byProperty[pb.PropertyID], pb)
	}
	rows := make([]PropertyPlanning, 0, len(properties))
	for _, p := range properties {
		planned := byProperty[p.ID]
		if planned == nil {
			planned = []PlannedBooking{}
		}
		rows = append(rows, PropertyPlanning{Property: p, Bookings: planned})
	}
	return Planning{Properties: rows, Timeline: timeline}
}
