package metrics

import "conciergerie/internal/core"

// DefaultShareLimit is how many properties the share chart considers.
const DefaultShareLimit = 4

const maxShareLabel = 20

// PropertyShare is the number of confirmed bookings of one property.
type PropertyShare struct {
	PropertyID string `json:"propertyId"`
	Label      string `json:"label"`
	Count      int    `json:"count"`
}

// ComputePropertyShares counts confirmed bookings for the first limit
// properties, in input order, and drops those without any. Counts are not
// normalised.
func ComputePropertyShares(properties []core.Property, bookings []core.Booking, limit int) []PropertyShare {
	if limit <= 0 {
		limit = DefaultShareLimit
	}
	if len(properties) > limit {
		properties = properties[:limit]
	}

	counts := make(map[string]int)
	for _, b := range bookings {
		if b.Status == core.BookingConfirmed {
			counts[b.PropertyID]++
		}
	}

	shares := make([]PropertyShare, 0, len(properties))
	for _, p := range properties {
		n := counts[p.ID]
		if n == 0 {
			continue
		}
		shares = append(shares, PropertyShare{PropertyID: p.ID, Label: shareLabel(p.Name), Count: n})
	}
	return shares
}

func shareLabel(name string) string {
	r := []rune(name)
	if len(r) <= maxShareLabel {
		return name
	}
	return string(r[:maxShareLabel]) + "..."
}
