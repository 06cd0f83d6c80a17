package metrics

import (
	"math"

	"conciergerie/internal/core"
)

// StatusCounts breaks bookings down by status.
type StatusCounts struct {
	Total            int `json:"total"`
	Confirmed        int `json:"confirmed"`
	Pending          int `json:"pending"`
	Cancelled        int `json:"cancelled"`
	ConfirmationRate int `json:"confirmationRate"`
}

// DocumentStats summarises signature progress.
type DocumentStats struct {
	Total      int `json:"total"`
	Signed     int `json:"signed"`
	Unsigned   int `json:"unsigned"`
	SignedRate int `json:"signedRate"`
}

// PlatformStats are only shown to admins.
type PlatformStats struct {
	Owners                 int `json:"owners"`
	Properties             int `json:"properties"`
	Bookings               int `json:"bookings"`
	AvgBookingsPerProperty int `json:"avgBookingsPerProperty"`
	UnsignedDocuments      int `json:"unsignedDocuments"`
}

// CheckInBoard groups check-ins for the arrivals and departures view.
// A record can be both awaiting and in progress only if its status is
// inconsistent with its timestamps; both lists then show it.
type CheckInBoard struct {
	Awaiting   []core.CheckIn `json:"awaiting"`
	InProgress []core.CheckIn `json:"inProgress"`
	Done       []core.CheckIn `json:"done"`
	Invalid    int            `json:"invalid"`
}

// percent returns round(100*n/d), or 0 when d is 0.
func percent(n, d int) int {
	if d == 0 {
		return 0
	}
	return int(math.Round(100 * float64(n) / float64(d)))
}

// CountStatuses tallies bookings per status and the share confirmed.
func CountStatuses(bookings []core.Booking) StatusCounts {
	c := StatusCounts{Total: len(bookings)}
	for _, b := range bookings {
		switch b.Status {
		case core.BookingConfirmed:
			c.Confirmed++
		case core.BookingPending:
			c.Pending++
		case core.BookingCancelled:
			c.Cancelled++
		}
	}
	c.ConfirmationRate = percent(c.Confirmed, c.Total)
	return c
}

// ComputeDocumentStats counts signed and unsigned documents.
func ComputeDocumentStats(documents []core.Document) DocumentStats {
	s := DocumentStats{Total: len(documents)}
	for _, d := range documents {
		if d.Signed {
			s.Signed++
		}
	}
	s.Unsigned = s.Total - s.Signed
	s.SignedRate = percent(s.Signed, s.Total)
	return s
}

// ComputePlatformStats counts distinct owners and averages bookings per
// property over the whole platform.
func ComputePlatformStats(properties []core.Property, bookings []core.Booking, documents []core.Document) PlatformStats {
	owners := make(map[string]struct{})
	for _, p := range properties {
		owners[p.OwnerID] = struct{}{}
	}
	unsigned := 0
	for _, d := range documents {
		if !d.Signed {
			unsigned++
		}
	}
	avg := 0
	if len(properties) > 0 {
		avg = int(math.Round(float64(len(bookings)) / float64(len(properties))))
	}
	return PlatformStats{
		Owners:                 len(owners),
		Properties:             len(properties),
		Bookings:               len(bookings),
		AvgBookingsPerProperty: avg,
		UnsignedDocuments:      unsigned,
	}
}

// AverageRevenuePerNight spreads total revenue over every property and a
// 30-night month, rounded to the euro.
func AverageRevenuePerNight(total core.Money, propertyCount int) core.Money {
	if propertyCount == 0 {
		return core.Money{}
	}
	euros := total.Euros() / float64(propertyCount) / 30
	return core.Money{Cents: int64(math.Round(euros)) * 100}
}

// UpcomingCheckIns returns up to limit pending check-ins in input order.
func UpcomingCheckIns(checkIns []core.CheckIn, limit int) []core.CheckIn {
	out := make([]core.CheckIn, 0)
	for _, c := range checkIns {
		if limit > 0 && len(out) == limit {
			break
		}
		if c.Status == core.CheckInPending {
			out = append(out, c)
		}
	}
	return out
}

// BuildCheckInBoard sorts check-ins into awaiting arrivals, guests on site
// and completed stays. Records with a checkout but no checkin are counted
// as invalid and left out.
func BuildCheckInBoard(checkIns []core.CheckIn) CheckInBoard {
	board := CheckInBoard{
		Awaiting:   []core.CheckIn{},
		InProgress: []core.CheckIn{},
		Done:       []core.CheckIn{},
	}
	for _, c := range checkIns {
		if c.CheckoutTime != nil && c.CheckinTime == nil {
			board.Invalid++
			continue
		}
		if c.Status == core.CheckInPending && c.CheckoutTime == nil {
			board.Awaiting = append(board.Awaiting, c)
		}
		if c.Status == core.CheckInDone {
			board.Done = append(board.Done, c)
		}
		if c.CheckinTime != nil && c.CheckoutTime == nil {
			board.InProgress = append(board.InProgress, c)
		}
	}
	return board
}

func firstBookings(bookings []core.Booking, n int) []core.Booking {
	if n > 0 && len(bookings) > n {
		bookings = bookings[:n]
	}
	return append([]core.Booking{}, bookings...)
}
