package metrics

import (
	"time"

	"conciergerie/internal/core"
)

// SeriesLength is the number of months in a rolling series.
const SeriesLength = 6

var monthLabels = [12]string{
	"Jan", "Fév", "Mar", "Avr", "Mai", "Juin",
	"Juil", "Août", "Sep", "Oct", "Nov", "Déc",
}

// MonthLabel returns the short French name of m.
func MonthLabel(m time.Month) string {
	return monthLabels[m-1]
}

// SeriesPoint is one month of the rolling series.
type SeriesPoint struct {
	Label        string     `json:"label"`
	Year         int        `json:"year"`
	Month        time.Month `json:"month"`
	BookingCount int        `json:"bookingCount"`
	Revenue      core.Money `json:"revenue"`
}

type yearMonth struct {
	year  int
	month time.Month
}

// BuildMonthlySeries returns the last six calendar months ending with now's
// month, oldest first. BookingCount includes every status; Revenue only
// confirmed bookings. Months are matched on year and month together.
func BuildMonthlySeries(bookings []core.Booking, nightlyRate core.Money, now time.Time) []SeriesPoint {
	points := make([]SeriesPoint, SeriesLength)
	index := make(map[yearMonth]int, SeriesLength)

	first := time.Date(now.Year(), now.Month()-(SeriesLength-1), 1, 0, 0, 0, 0, time.UTC)
	for i := range points {
		m := first.AddDate(0, i, 0)
		points[i] = SeriesPoint{Label: MonthLabel(m.Month()), Year: m.Year(), Month: m.Month()}
		index[yearMonth{m.Year(), m.Month()}] = i
	}

	for _, b := range bookings {
		if b.StartDate.IsZero() {
			continue
		}
		i, ok := index[yearMonth{b.StartDate.Year(), b.StartDate.Month()}]
		if !ok {
			continue
		}
		points[i].BookingCount++
		points[i].Revenue = points[i].Revenue.Add(bookingRevenue(b, nightlyRate))
	}
	return points
}
