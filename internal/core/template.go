package core

import (
	"errors"
	"strings"
)

// MessageTemplate is a reusable message body with {placeholder} variables.
type MessageTemplate struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Type    Channel `json:"type"`
	Content string  `json:"content"`
}

// Placeholders understood by Render.
const (
	VarClientName   = "client_name"
	VarPropertyName = "property_name"
	VarStartDate    = "start_date"
	VarEndDate      = "end_date"
	VarAccessCode   = "access_code"
)

var ErrTemplateNotFound = errors.New("message template not found")

// DefaultTemplates returns the built-in templates. The slice is fresh on
// every call.
func DefaultTemplates() []MessageTemplate {
	return []MessageTemplate{
		{
			ID:      "t1",
			Name:    "Confirmation de réservation",
			Type:    ChannelEmail,
			Content: "Bonjour {client_name}, votre réservation est confirmée pour {property_name} du {start_date} au {end_date}.",
		},
		{
			ID:      "t2",
			Name:    "Rappel check-in",
			Type:    ChannelSMS,
			Content: "Rappel : votre check-in est prévu demain à 15h. Code d'accès : {access_code}",
		},
		{
			ID:      "t3",
			Name:    "Instructions check-out",
			Type:    ChannelWhatsApp,
			Content: "Merci pour votre séjour ! Check-out avant 11h. Laissez les clés dans la boîte.",
		},
		{
			ID:      "t4",
			Name:    "Bienvenue",
			Type:    ChannelEmail,
			Content: "Bienvenue à {property_name} ! Vous trouverez toutes les informations dans le guide digital.",
		},
	}
}

// FindTemplate looks a template up by id or name.
func FindTemplate(templates []MessageTemplate, key string) (MessageTemplate, error) {
	key = strings.TrimSpace(key)
	for _, t := range templates {
		if t.ID == key || strings.EqualFold(t.Name, key) {
			return t, nil
		}
	}
	return MessageTemplate{}, ErrTemplateNotFound
}

// Render substitutes known variables. Unknown placeholders are left as-is.
func (t MessageTemplate) Render(vars map[string]string) string {
	out := t.Content
	for k, v := range vars {
		out = strings.ReplaceAll(out, "{"+k+"}", v)
	}
	return out
}

// BookingVars builds the variables for a booking, dates in French order.
func BookingVars(b Booking) map[string]string {
	return map[string]string{
		VarClientName:   b.ClientName,
		VarPropertyName: b.PropertyName,
		VarStartDate:    b.StartDate.Format("02/01/2006"),
		VarEndDate:      b.EndDate.Format("02/01/2006"),
	}
}
