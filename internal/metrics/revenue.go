package metrics

import (
	"time"

	"conciergerie/internal/core"
)

// Revenue holds lifetime and current-month revenue.
type Revenue struct {
	Total   core.Money `json:"total"`
	Monthly core.Money `json:"monthly"`
}

// ComputeRevenue sums nights × nightlyRate over confirmed bookings. Monthly
// only counts bookings starting in now's calendar month.
func ComputeRevenue(bookings []core.Booking, nightlyRate core.Money, now time.Time) Revenue {
	var r Revenue
	for _, b := range bookings {
		amount := bookingRevenue(b, nightlyRate)
		r.Total = r.Total.Add(amount)
		if inMonth(b.StartDate, now.Year(), now.Month()) {
			r.Monthly = r.Monthly.Add(amount)
		}
	}
	return r
}
