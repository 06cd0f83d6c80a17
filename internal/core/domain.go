package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	RoleAdmin  Role = "admin"
	RoleOwner  Role = "owner"
	RoleClient Role = "client"
)

const (
	BookingConfirmed BookingStatus = "confirmed"
	BookingPending   BookingStatus = "pending"
	BookingCancelled BookingStatus = "cancelled"
)

const (
	CheckInPending CheckInStatus = "pending"
	CheckInDone    CheckInStatus = "done"
)

const (
	ChannelSMS      Channel = "SMS"
	ChannelEmail    Channel = "Email"
	ChannelWhatsApp Channel = "WhatsApp"
)

// DateLayout is the wire format of booking dates.
const DateLayout = "2006-01-02"

type (
	Role          string
	BookingStatus string
	CheckInStatus string
	Channel       string

	Date struct {
		time.Time
	}

	User struct {
		ID    string `json:"id"`
		Role  Role   `json:"role"`
		Name  string `json:"name"`
		Email string `json:"email"`
		Phone string `json:"phone,omitempty"`
	}

	Property struct {
		ID          string `json:"id"`
		OwnerID     string `json:"ownerId"`
		Name        string `json:"name"`
		Address     string `json:"address"`
		Description string `json:"description"`
	}

	// Booking keeps ClientName and PropertyName as they were when the
	// booking was made.
	Booking struct {
		ID           string        `json:"id"`
		PropertyID   string        `json:"propertyId"`
		ClientID     string        `json:"clientId"`
		ClientName   string        `json:"clientName"`
		PropertyName string        `json:"propertyName"`
		StartDate    Date          `json:"startDate"`
		EndDate      Date          `json:"endDate"`
		Status       BookingStatus `json:"status"`
	}

	Document struct {
		ID         string    `json:"id"`
		BookingID  string    `json:"bookingId"`
		FileName   string    `json:"fileName"`
		FileURL    string    `json:"fileUrl"`
		Signed     bool      `json:"signed"`
		UploadedAt time.Time `json:"uploadedAt"`
	}

	CheckIn struct {
		ID           string        `json:"id"`
		BookingID    string        `json:"bookingId"`
		CheckinTime  *time.Time    `json:"checkinTime"`
		CheckoutTime *time.Time    `json:"checkoutTime"`
		Status       CheckInStatus `json:"status"`
	}

	Message struct {
		ID           string    `json:"id"`
		BookingID    string    `json:"bookingId"`
		Type         Channel   `json:"type"`
		TemplateName string    `json:"templateName"`
		Content      string    `json:"content"`
		SentAt       time.Time `json:"sentAt"`
	}
)

var (
	ErrInvalidRole            = errors.New("invalid role")
	ErrInvalidStatus          = errors.New("invalid status")
	ErrInvalidChannel         = errors.New("invalid message channel")
	ErrInvalidDateRange       = errors.New("end date precedes start date")
	ErrEmptyID                = errors.New("empty id")
	ErrEmptyName              = errors.New("empty name")
	ErrEmptyReference         = errors.New("empty reference")
	ErrCheckoutWithoutCheckin = errors.New("checkout recorded without checkin")
)

// ParseRole accepts any casing and surrounding whitespace.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, s)
	}
	return r, nil
}

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleOwner, RoleClient:
		return true
	default:
		return false
	}
}

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingConfirmed, BookingPending, BookingCancelled:
		return true
	default:
		return false
	}
}

func (s CheckInStatus) Valid() bool {
	return s == CheckInPending || s == CheckInDone
}

func (c Channel) Valid() bool {
	switch c {
	case ChannelSMS, ChannelEmail, ChannelWhatsApp:
		return true
	default:
		return false
	}
}

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) Validate() error {
	if d.IsZero() {
		return errors.New("date cannot be zero")
	}
	return nil
}

func (u User) Validate() error {
	if strings.TrimSpace(u.ID) == "" {
		return ErrEmptyID
	}
	if !u.Role.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidRole, u.Role)
	}
	if strings.TrimSpace(u.Name) == "" {
		return ErrEmptyName
	}
	return nil
}

func (p Property) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return ErrEmptyID
	}
	if strings.TrimSpace(p.OwnerID) == "" {
		return fmt.Errorf("owner: %w", ErrEmptyReference)
	}
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	return nil
}

// ValidRange reports whether the booking's dates are set and ordered.
// Same-day bookings are valid.
func (b Booking) ValidRange() error {
	if err := b.StartDate.Validate(); err != nil {
		return fmt.Errorf("invalid start date: %w", err)
	}
	if err := b.EndDate.Validate(); err != nil {
		return fmt.Errorf("invalid end date: %w", err)
	}
	if b.EndDate.Before(b.StartDate.Time) {
		return ErrInvalidDateRange
	}
	return nil
}

func (b Booking) Validate() error {
	if strings.TrimSpace(b.ID) == "" {
		return ErrEmptyID
	}
	if strings.TrimSpace(b.PropertyID) == "" {
		return fmt.Errorf("property: %w", ErrEmptyReference)
	}
	if strings.TrimSpace(b.ClientID) == "" {
		return fmt.Errorf("client: %w", ErrEmptyReference)
	}
	if !b.Status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, b.Status)
	}
	return b.ValidRange()
}

func (d Document) Validate() error {
	if strings.TrimSpace(d.ID) == "" {
		return ErrEmptyID
	}
	if strings.TrimSpace(d.BookingID) == "" {
		return fmt.Errorf("booking: %w", ErrEmptyReference)
	}
	if strings.TrimSpace(d.FileName) == "" {
		return ErrEmptyName
	}
	return nil
}

func (c CheckIn) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return ErrEmptyID
	}
	if strings.TrimSpace(c.BookingID) == "" {
		return fmt.Errorf("booking: %w", ErrEmptyReference)
	}
	if !c.Status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, c.Status)
	}
	if c.CheckoutTime != nil && c.CheckinTime == nil {
		return ErrCheckoutWithoutCheckin
	}
	return nil
}

func (m Message) Validate() error {
	if strings.TrimSpace(m.ID) == "" {
		return ErrEmptyID
	}
	if strings.TrimSpace(m.BookingID) == "" {
		return fmt.Errorf("booking: %w", ErrEmptyReference)
	}
	if !m.Type.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidChannel, m.Type)
	}
	if strings.TrimSpace(m.Content) == "" {
		return errors.New("empty message content")
	}
	return nil
}
