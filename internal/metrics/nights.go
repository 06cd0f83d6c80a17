package metrics

import (
	"errors"
	"fmt"
	"time"

	"conciergerie/internal/core"
)

const day = 24 * time.Hour

// DateRangeError reports a booking whose dates cannot be aggregated.
type DateRangeError struct {
	BookingID string    `json:"bookingId"`
	Start     core.Date `json:"startDate"`
	End       core.Date `json:"endDate"`
	Err       error     `json:"-"`
}

func (e *DateRangeError) Error() string {
	return fmt.Sprintf("booking %s: %s to %s: %v", e.BookingID, e.Start, e.End, e.Err)
}

func (e *DateRangeError) Unwrap() error { return e.Err }

// Nights returns the number of nights covered by b, rounding partial days
// up. A same-day booking has zero nights.
func Nights(b core.Booking) (int64, error) {
	if err := b.ValidRange(); err != nil {
		return 0, &DateRangeError{BookingID: b.ID, Start: b.StartDate, End: b.EndDate, Err: err}
	}
	diff := b.EndDate.Sub(b.StartDate.Time)
	return int64((diff + day - 1) / day), nil
}

// Partition splits bookings into those with usable dates and the rest.
// Order is preserved on both sides.
func Partition(bookings []core.Booking) ([]core.Booking, []*DateRangeError) {
	valid := make([]core.Booking, 0, len(bookings))
	var skipped []*DateRangeError
	for _, b := range bookings {
		_, err := Nights(b)
		var rangeErr *DateRangeError
		if errors.As(err, &rangeErr) {
			skipped = append(skipped, rangeErr)
			continue
		}
		valid = append(valid, b)
	}
	return valid, skipped
}

// bookingRevenue is the revenue of a confirmed booking and zero otherwise.
// Bookings with bad dates earn nothing.
func bookingRevenue(b core.Booking, nightlyRate core.Money) core.Money {
	if b.Status != core.BookingConfirmed {
		return core.Money{}
	}
	n, err := Nights(b)
	if err != nil {
		return core.Money{}
	}
	return nightlyRate.Times(n)
}

func inMonth(d core.Date, year int, month time.Month) bool {
	return d.Year() == year && d.Month() == month
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
