package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"conciergerie/internal/amqp"
	"conciergerie/internal/core"
	"conciergerie/internal/log"
	"conciergerie/internal/repository"
)

// EventPublisher is the part of the AMQP client the services need.
type EventPublisher interface {
	PublishBookingEvent(ctx context.Context, msg *amqp.BookingEventMessage) error
}

// CreateBookingRequest is the payload accepted for a new booking.
type CreateBookingRequest struct {
	PropertyID string `json:"propertyId" validate:"required"`
	ClientID   string `json:"clientId" validate:"required"`
	ClientName string `json:"clientName" validate:"required,max=120"`
	StartDate  string `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate    string `json:"endDate" validate:"required,datetime=2006-01-02,notbefore=StartDate"`
	Status     string `json:"status" validate:"omitempty,oneof=confirmed pending cancelled"`
}

// BookingService stores bookings and announces them on the message bus.
type BookingService struct {
	properties repository.PropertyReader
	bookings   repository.BookingWriter
	publisher  EventPublisher
	validate   *validator.Validate
	logger     *log.Logger
	structured *log.StructuredLogger
	now        func() time.Time
}

func NewBookingService(properties repository.PropertyReader, bookings repository.BookingWriter, publisher EventPublisher, logger *log.Logger) *BookingService {
	if logger == nil {
		logger = log.Discard()
	}
	return &BookingService{
		properties: properties,
		bookings:   bookings,
		publisher:  publisher,
		validate:   newValidator(),
		logger:     logger.WithComponent(log.ComponentBooking),
		structured: log.NewStructuredLogger(logger),
		now:        time.Now,
	}
}

// Create validates req, copies the property name onto the booking, stores
// it and publishes a booking.created event. A failed publish is logged but
// does not fail the call since the booking is already stored.
func (s *BookingService) Create(ctx context.Context, req CreateBookingRequest) (core.Booking, error) {
	if err := validateStruct(s.validate, req); err != nil {
		return core.Booking{}, err
	}

	property, err := s.properties.GetProperty(ctx, req.PropertyID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return core.Booking{}, &ValidationError{Fields: map[string]string{"propertyId": "unknown property"}}
		}
		return core.Booking{}, fmt.Errorf("load property: %w", err)
	}

	start, _ := core.ParseDate(req.StartDate)
	end, _ := core.ParseDate(req.EndDate)
	status := core.BookingStatus(req.Status)
	if status == "" {
		status = core.BookingPending
	}

	b := core.Booking{
		ID:           uuid.NewString(),
		PropertyID:   property.ID,
		ClientID:     strings.TrimSpace(req.ClientID),
		ClientName:   strings.TrimSpace(req.ClientName),
		PropertyName: property.Name,
		StartDate:    start,
		EndDate:      end,
		Status:       status,
	}
	if err := s.bookings.CreateBooking(ctx, b); err != nil {
		return core.Booking{}, fmt.Errorf("save booking: %w", err)
	}
	s.structured.LogBookingCreated(ctx, b.ID, b.PropertyID, string(b.Status))

	if err := s.publish(ctx, b.ID, amqp.EventBookingCreated); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish booking event",
			log.FieldBookingID, b.ID, log.FieldError, err.Error())
	}
	return b, nil
}

func (s *BookingService) publish(ctx context.Context, bookingID string, event amqp.BookingEvent) error {
	if s.publisher == nil {
		s.logger.DebugContext(ctx, "No event publisher configured, skipping", log.FieldBookingID, bookingID)
		return nil
	}
	return s.publisher.PublishBookingEvent(ctx, amqp.NewBookingEventMessage(bookingID, event, s.now()))
}
