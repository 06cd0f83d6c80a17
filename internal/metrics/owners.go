package metrics

import "conciergerie/internal/core"

// OwnerSummary is an owner account with the number of properties it holds.
type OwnerSummary struct {
	core.User
	PropertyCount int `json:"propertiesCount"`
}

// ListOwners returns the users with the owner role, in input order, each
// with its property count. Properties of unknown owners are not listed.
func ListOwners(users []core.User, properties []core.Property) []OwnerSummary {
	counts := make(map[string]int, len(properties))
	for _, p := range properties {
		counts[p.OwnerID]++
	}
	out := make([]OwnerSummary, 0)
	for _, u := range users {
		if u.Role != core.RoleOwner {
			continue
		}
		out = append(out, OwnerSummary{User: u, PropertyCount: counts[u.ID]})
	}
	return out
}
