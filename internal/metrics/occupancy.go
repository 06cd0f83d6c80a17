package metrics

import (
	"math"
	"time"

	"conciergerie/internal/core"
)

// ComputeOccupancy returns the share of available nights in now's month
// taken by confirmed bookings starting that month, as a percentage in
// [0, 100]. Bookings running past the month end count in full, so the raw
// ratio can exceed 100 and is clamped.
func ComputeOccupancy(properties []core.Property, bookings []core.Booking, now time.Time) int {
	available := int64(len(properties) * daysInMonth(now.Year(), now.Month()))
	if available == 0 {
		return 0
	}

	var occupied int64
	for _, b := range bookings {
		if b.Status != core.BookingConfirmed || !inMonth(b.StartDate, now.Year(), now.Month()) {
			continue
		}
		n, err := Nights(b)
		if err != nil {
			continue
		}
		occupied += n
	}

	rate := int(math.Round(100 * float64(occupied) / float64(available)))
	if rate > 100 {
		return 100
	}
	return rate
}
