package amqp

import (
	"encoding/json"
	"errors"
	"time"
)

// BookingEvent names what happened to a booking.
type BookingEvent string

const (
	EventBookingCreated BookingEvent = "booking.created"
)

var ErrInvalidEvent = errors.New("invalid booking event")

// BookingEventMessage carries only the booking id; consumers read the
// booking itself from the repository.
type BookingEventMessage struct {
	BookingID string       `json:"bookingId"`
	Event     BookingEvent `json:"event"`
	Timestamp time.Time    `json:"timestamp"`
}

func NewBookingEventMessage(bookingID string, event BookingEvent, now time.Time) *BookingEventMessage {
	return &BookingEventMessage{
		BookingID: bookingID,
		Event:     event,
		Timestamp: now,
	}
}

func (m *BookingEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// BookingEventMessageFromJSON decodes and checks a message body.
func BookingEventMessageFromJSON(data []byte) (*BookingEventMessage, error) {
	var msg BookingEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if msg.BookingID == "" || msg.Event == "" {
		return nil, ErrInvalidEvent
	}
	return &msg, nil
}
