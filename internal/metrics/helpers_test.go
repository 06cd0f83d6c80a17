package metrics

import (
	"time"

	"conciergerie/internal/core"
)

var rate = core.Money{Cents: 15000}

func date(s string) core.Date {
	d, err := core.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func at(s string) time.Time {
	return date(s).Time
}

func tp(s string) *time.Time {
	t, err := time.Parse("2006-01-02T15:04:05", s)
	if err != nil {
		panic(err)
	}
	return &t
}

func booking(id, propertyID, start, end string, status core.BookingStatus) core.Booking {
	return core.Booking{
		ID:         id,
		PropertyID: propertyID,
		ClientID:   "3",
		ClientName: "Marie Voyageur",
		StartDate:  date(start),
		EndDate:    date(end),
		Status:     status,
	}
}

func fixtures() core.Snapshot {
	return core.Snapshot{
		Properties: []core.Property{
			{ID: "p1", OwnerID: "2", Name: "Appartement Marais"},
			{ID: "p2", OwnerID: "2", Name: "Studio Montmartre"},
			{ID: "p3", OwnerID: "4", Name: "Loft Saint-Germain"},
		},
		Bookings: []core.Booking{
			booking("b1", "p1", "2025-12-20", "2025-12-27", core.BookingConfirmed),
			booking("b2", "p2", "2025-12-18", "2025-12-22", core.BookingConfirmed),
			booking("b3", "p1", "2026-01-05", "2026-01-12", core.BookingPending),
			booking("b4", "p3", "2025-11-02", "2025-11-05", core.BookingConfirmed),
		},
		Documents: []core.Document{
			{ID: "d1", BookingID: "b1", FileName: "Contrat.pdf", Signed: true},
			{ID: "d2", BookingID: "b1", FileName: "Guide.pdf"},
			{ID: "d3", BookingID: "b3", FileName: "Contrat.pdf"},
			{ID: "d4", BookingID: "b4", FileName: "Contrat.pdf"},
		},
		CheckIns: []core.CheckIn{
			{ID: "c1", BookingID: "b1", CheckinTime: tp("2025-12-20T15:00:00"), Status: core.CheckInPending},
			{ID: "c2", BookingID: "b2", CheckinTime: tp("2025-12-18T16:30:00"), Status: core.CheckInDone},
			{ID: "c3", BookingID: "b4", Status: core.CheckInPending},
		},
	}
}
