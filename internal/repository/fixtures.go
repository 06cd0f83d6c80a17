package repository

import (
	"time"

	"conciergerie/internal/core"
)

func ts(s string) time.Time {
	t, err := time.Parse("2006-01-02T15:04:05", s)
	if err != nil {
		panic(err)
	}
	return t
}

func tsp(s string) *time.Time {
	t := ts(s)
	return &t
}

// Fixtures returns the demo data set used when no seed file is given.
func Fixtures() Seed {
	return Seed{
		Users: []core.User{
			{ID: "1", Role: core.RoleAdmin, Name: "Admin Conciergerie", Email: "admin@conciergerie.com"},
			{ID: "2", Role: core.RoleOwner, Name: "Jean Propriétaire", Email: "proprietaire@example.com", Phone: "+33 6 12 34 56 78"},
			{ID: "3", Role: core.RoleClient, Name: "Marie Voyageur", Email: "client@example.com"},
			{ID: "4", Role: core.RoleOwner, Name: "Sophie Dupont", Email: "sophie.dupont@example.com", Phone: "+33 6 98 76 54 32"},
		},
		Properties: []core.Property{
			{ID: "p1", OwnerID: "2", Name: "Appartement Marais", Address: "15 Rue de Turenne, 75003 Paris", Description: "Charmant 2 pièces au cœur du Marais"},
			{ID: "p2", OwnerID: "2", Name: "Studio Montmartre", Address: "8 Rue Lepic, 75018 Paris", Description: "Studio cosy avec vue sur Sacré-Cœur"},
			{ID: "p3", OwnerID: "4", Name: "Loft Saint-Germain", Address: "25 Rue de Seine, 75006 Paris", Description: "Loft moderne avec terrasse"},
		},
		Bookings: []core.Booking{
			{ID: "b1", PropertyID: "p1", ClientID: "3", ClientName: "Marie Voyageur", PropertyName: "Appartement Marais", StartDate: core.NewDate(2025, 12, 20), EndDate: core.NewDate(2025, 12, 27), Status: core.BookingConfirmed},
			{ID: "b2", PropertyID: "p2", ClientID: "5", ClientName: "Pierre Durand", PropertyName: "Studio Montmartre", StartDate: core.NewDate(2025, 12, 18), EndDate: core.NewDate(2025, 12, 22), Status: core.BookingConfirmed},
			{ID: "b3", PropertyID: "p1", ClientID: "6", ClientName: "Sophie Martin", PropertyName: "Appartement Marais", StartDate: core.NewDate(2026, 1, 5), EndDate: core.NewDate(2026, 1, 12), Status: core.BookingPending},
		},
		Documents: []core.Document{
			{ID: "d1", BookingID: "b1", FileName: "Contrat_Location_Marais.pdf", FileURL: "#", Signed: true, UploadedAt: ts("2025-12-01T10:30:00")},
			{ID: "d2", BookingID: "b1", FileName: "Guide_Voyageur_Marais.pdf", FileURL: "#", UploadedAt: ts("2025-12-01T10:30:00")},
			{ID: "d3", BookingID: "b3", FileName: "Contrat_Location_Marais.pdf", FileURL: "#", UploadedAt: ts("2025-12-10T15:20:00")},
		},
		CheckIns: []core.CheckIn{
			{ID: "c1", BookingID: "b1", CheckinTime: tsp("2025-12-20T15:00:00"), Status: core.CheckInPending},
			{ID: "c2", BookingID: "b2", CheckinTime: tsp("2025-12-18T16:30:00"), Status: core.CheckInDone},
		},
		Messages: []core.Message{
			{ID: "m1", BookingID: "b1", Type: core.ChannelEmail, TemplateName: "Confirmation de réservation", Content: "Bonjour Marie, votre réservation est confirmée pour l'Appartement Marais du 20 au 27 décembre.", SentAt: ts("2025-12-01T10:30:00")},
			{ID: "m2", BookingID: "b1", Type: core.ChannelSMS, TemplateName: "Rappel check-in", Content: "Rappel : votre check-in est prévu demain à 15h. Code d'accès : 4582", SentAt: ts("2025-12-19T14:00:00")},
			{ID: "m3", BookingID: "b2", Type: core.ChannelWhatsApp, TemplateName: "Instructions check-out", Content: "Merci pour votre séjour ! Check-out avant 11h. Laissez les clés dans la boîte.", SentAt: ts("2025-12-22T08:00:00")},
		},
	}
}
