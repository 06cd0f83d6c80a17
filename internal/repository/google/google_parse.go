package google

import (
	"fmt"
	"strings"
	"time"

	"conciergerie/internal/core"
)

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"02/01/2006 15:04:05",
}

// table is a values matrix with its header row resolved.
type table struct {
	headers []string
	rows    [][]string
}

func newTable(values [][]interface{}, required ...string) (table, error) {
	if len(values) == 0 {
		return table{}, nil
	}
	t := table{headers: toStrings(values[0])}
	var missing []string
	for _, h := range required {
		if indexOf(t.headers, h) == -1 {
			missing = append(missing, h)
		}
	}
	if len(missing) > 0 {
		return table{}, fmt.Errorf("unexpected header: missing %s; got headers=%v", strings.Join(missing, ","), t.headers)
	}
	for _, row := range values[1:] {
		r := toStrings(row)
		if blank(r) {
			continue
		}
		t.rows = append(t.rows, r)
	}
	return t, nil
}

func (t table) get(row []string, header string) string {
	return safeGet(row, indexOf(t.headers, header))
}

func parseUsers(values [][]interface{}) ([]core.User, error) {
	t, err := newTable(values, "id", "role", "name")
	if err != nil {
		return nil, err
	}
	out := make([]core.User, 0, len(t.rows))
	for i, r := range t.rows {
		role, err := core.ParseRole(t.get(r, "role"))
		if err != nil {
			return nil, fmt.Errorf("users row %d: %w", i+2, err)
		}
		out = append(out, core.User{
			ID:    t.get(r, "id"),
			Role:  role,
			Name:  t.get(r, "name"),
			Email: t.get(r, "email"),
			Phone: t.get(r, "phone"),
		})
	}
	return out, nil
}

func parseProperties(values [][]interface{}) ([]core.Property, error) {
	t, err := newTable(values, "id", "ownerId", "name")
	if err != nil {
		return nil, err
	}
	out := make([]core.Property, 0, len(t.rows))
	for _, r := range t.rows {
		out = append(out, core.Property{
			ID:          t.get(r, "id"),
			OwnerID:     t.get(r, "ownerId"),
			Name:        t.get(r, "name"),
			Address:     t.get(r, "address"),
			Description: t.get(r, "description"),
		})
	}
	return out, nil
}

// parseBookings keeps bookings whose end precedes their start; the
// dashboard reports those itself.
func parseBookings(values [][]interface{}) ([]core.Booking, error) {
	t, err := newTable(values, "id", "propertyId", "startDate", "endDate", "status")
	if err != nil {
		return nil, err
	}
	out := make([]core.Booking, 0, len(t.rows))
	for i, r := range t.rows {
		start, err := parseDate(t.get(r, "startDate"))
		if err != nil {
			return nil, fmt.Errorf("bookings row %d: start date: %w", i+2, err)
		}
		end, err := parseDate(t.get(r, "endDate"))
		if err != nil {
			return nil, fmt.Errorf("bookings row %d: end date: %w", i+2, err)
		}
		status := core.BookingStatus(strings.ToLower(t.get(r, "status")))
		if !status.Valid() {
			return nil, fmt.Errorf("bookings row %d: %w: %q", i+2, core.ErrInvalidStatus, status)
		}
		out = append(out, core.Booking{
			ID:           t.get(r, "id"),
			PropertyID:   t.get(r, "propertyId"),
			ClientID:     t.get(r, "clientId"),
			ClientName:   t.get(r, "clientName"),
			PropertyName: t.get(r, "propertyName"),
			StartDate:    start,
			EndDate:      end,
			Status:       status,
		})
	}
	return out, nil
}

func parseDocuments(values [][]interface{}) ([]core.Document, error) {
	t, err := newTable(values, "id", "bookingId", "fileName")
	if err != nil {
		return nil, err
	}
	out := make([]core.Document, 0, len(t.rows))
	for i, r := range t.rows {
		uploaded, err := parseTime(t.get(r, "uploadedAt"))
		if err != nil {
			return nil, fmt.Errorf("documents row %d: %w", i+2, err)
		}
		d := core.Document{
			ID:        t.get(r, "id"),
			BookingID: t.get(r, "bookingId"),
			FileName:  t.get(r, "fileName"),
			FileURL:   t.get(r, "fileUrl"),
			Signed:    parseBool(t.get(r, "signed")),
		}
		if uploaded != nil {
			d.UploadedAt = *uploaded
		}
		out = append(out, d)
	}
	return out, nil
}

func parseCheckIns(values [][]interface{}) ([]core.CheckIn, error) {
	t, err := newTable(values, "id", "bookingId", "status")
	if err != nil {
		return nil, err
	}
	out := make([]core.CheckIn, 0, len(t.rows))
	for i, r := range t.rows {
		in, err := parseTime(t.get(r, "checkinTime"))
		if err != nil {
			return nil, fmt.Errorf("check-ins row %d: checkin: %w", i+2, err)
		}
		outTime, err := parseTime(t.get(r, "checkoutTime"))
		if err != nil {
			return nil, fmt.Errorf("check-ins row %d: checkout: %w", i+2, err)
		}
		status := core.CheckInStatus(strings.ToLower(t.get(r, "status")))
		if !status.Valid() {
			return nil, fmt.Errorf("check-ins row %d: %w: %q", i+2, core.ErrInvalidStatus, status)
		}
		out = append(out, core.CheckIn{
			ID:           t.get(r, "id"),
			BookingID:    t.get(r, "bookingId"),
			CheckinTime:  in,
			CheckoutTime: outTime,
			Status:       status,
		})
	}
	return out, nil
}

func parseMessages(values [][]interface{}) ([]core.Message, error) {
	t, err := newTable(values, "id", "bookingId", "type", "content")
	if err != nil {
		return nil, err
	}
	out := make([]core.Message, 0, len(t.rows))
	for i, r := range t.rows {
		sent, err := parseTime(t.get(r, "sentAt"))
		if err != nil {
			return nil, fmt.Errorf("messages row %d: %w", i+2, err)
		}
		m := core.Message{
			ID:           t.get(r, "id"),
			BookingID:    t.get(r, "bookingId"),
			Type:         core.Channel(t.get(r, "type")),
			TemplateName: t.get(r, "templateName"),
			Content:      t.get(r, "content"),
		}
		if sent != nil {
			m.SentAt = *sent
		}
		out = append(out, m)
	}
	return out, nil
}

// parseDate accepts ISO dates and the French dd/mm/yyyy form.
func parseDate(s string) (core.Date, error) {
	if d, err := core.ParseDate(s); err == nil {
		return d, nil
	}
	t, err := time.Parse("02/01/2006", strings.TrimSpace(s))
	if err != nil {
		return core.Date{}, fmt.Errorf("invalid date %q", s)
	}
	return core.Date{Time: t}, nil
}

// parseTime returns nil for an empty cell.
func parseTime(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("invalid timestamp %q", s)
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "vrai", "oui", "yes", "1", "x":
		return true
	default:
		return false
	}
}

func toStrings(in []interface{}) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out
}

// indexOf matches headers case-insensitively.
func indexOf(arr []string, target string) int {
	for i, v := range arr {
		if strings.EqualFold(v, target) {
			return i
		}
	}
	return -1
}

func safeGet(arr []string, idx int) string {
	if idx < 0 || idx >= len(arr) {
		return ""
	}
	return arr[idx]
}

func blank(row []string) bool {
	for _, v := range row {
		if v != "" {
			return false
		}
	}
	return true
}
