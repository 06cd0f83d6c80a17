package metrics

import "conciergerie/internal/core"

// Scope identifies who the figures are computed for.
type Scope struct {
	Role       core.Role `json:"role"`
	IdentityID string    `json:"identityId"`
}

// ResolveScope returns the properties and bookings visible to scope.
// Admins see everything, owners see their own properties and the bookings
// made on them. Other roles see nothing.
func ResolveScope(scope Scope, properties []core.Property, bookings []core.Booking) ([]core.Property, []core.Booking) {
	switch scope.Role {
	case core.RoleAdmin:
		return append([]core.Property(nil), properties...), append([]core.Booking(nil), bookings...)
	case core.RoleOwner:
		owned := make(map[string]struct{})
		scopedProps := make([]core.Property, 0)
		for _, p := range properties {
			if p.OwnerID == scope.IdentityID {
				scopedProps = append(scopedProps, p)
				owned[p.ID] = struct{}{}
			}
		}
		scopedBookings := make([]core.Booking, 0)
		for _, b := range bookings {
			if _, ok := owned[b.PropertyID]; ok {
				scopedBookings = append(scopedBookings, b)
			}
		}
		return scopedProps, scopedBookings
	default:
		return []core.Property{}, []core.Booking{}
	}
}

func bookingIDs(bookings []core.Booking) map[string]struct{} {
	ids := make(map[string]struct{}, len(bookings))
	for _, b := range bookings {
		ids[b.ID] = struct{}{}
	}
	return ids
}

// ScopeDocuments keeps the documents attached to one of bookings.
func ScopeDocuments(bookings []core.Booking, documents []core.Document) []core.Document {
	ids := bookingIDs(bookings)
	out := make([]core.Document, 0)
	for _, d := range documents {
		if _, ok := ids[d.BookingID]; ok {
			out = append(out, d)
		}
	}
	return out
}

// ScopeCheckIns keeps the check-ins attached to one of bookings.
func ScopeCheckIns(bookings []core.Booking, checkIns []core.CheckIn) []core.CheckIn {
	ids := bookingIDs(bookings)
	out := make([]core.CheckIn, 0)
	for _, c := range checkIns {
		if _, ok := ids[c.BookingID]; ok {
			out = append(out, c)
		}
	}
	return out
}

// ScopeMessages keeps the messages attached to one of bookings.
func ScopeMessages(bookings []core.Booking, messages []core.Message) []core.Message {
	ids := bookingIDs(bookings)
	out := make([]core.Message, 0)
	for _, m := range messages {
		if _, ok := ids[m.BookingID]; ok {
			out = append(out, m)
		}
	}
	return out
}

// ClientBookings returns the bookings made by clientID.
func ClientBookings(clientID string, bookings []core.Booking) []core.Booking {
	out := make([]core.Booking, 0)
	for _, b := range bookings {
		if b.ClientID == clientID {
			out = append(out, b)
		}
	}
	return out
}
