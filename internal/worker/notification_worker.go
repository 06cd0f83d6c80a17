package worker

import (
	"context"
	"fmt"

	"conciergerie/internal/amqp"
	"conciergerie/internal/core"
	"conciergerie/internal/log"
	"conciergerie/internal/repository"
)

// ConfirmationTemplate is the template sent for every confirmed booking.
const ConfirmationTemplate = "t1"

// Sender records a templated message at most once per booking.
type Sender interface {
	Template(key string) (core.MessageTemplate, error)
	SendOnce(ctx context.Context, bookingID, templateKey string) (core.Message, bool, error)
}

type bookingMessageReader interface {
	repository.BookingReader
	repository.MessageReader
}

// NotificationWorker turns booking events into confirmation messages.
type NotificationWorker struct {
	store     bookingMessageReader
	sender    Sender
	batchSize int
	logger    *log.Logger
}

func NewNotificationWorker(store bookingMessageReader, sender Sender, batchSize int, logger *log.Logger) *NotificationWorker {
	if batchSize <= 0 {
		batchSize = 50
	}
	if logger == nil {
		logger = log.Discard()
	}
	return &NotificationWorker{
		store:     store,
		sender:    sender,
		batchSize: batchSize,
		logger:    logger.WithComponent(log.ComponentWorker),
	}
}

// HandleBookingEvent processes a single booking event from AMQP. Pending
// and cancelled bookings get no confirmation. Redelivery is harmless.
func (w *NotificationWorker) HandleBookingEvent(ctx context.Context, msg *amqp.BookingEventMessage) error {
	w.logger.InfoContext(ctx, "Processing booking event",
		log.FieldBookingID, msg.BookingID,
		"event", string(msg.Event))

	if msg.Event != amqp.EventBookingCreated {
		w.logger.WarnContext(ctx, "Ignoring unknown booking event",
			log.FieldBookingID, msg.BookingID,
			"event", string(msg.Event))
		return nil
	}

	b, err := w.store.GetBooking(ctx, msg.BookingID)
	if err != nil {
		return fmt.Errorf("get booking: %w", err)
	}
	_, err = w.confirm(ctx, b)
	return err
}

// StartupCheck sends missing confirmations for bookings stored while the
// worker was down. At most batchSize*5 sends are attempted per run; the
// rest are picked up by the next run.
func (w *NotificationWorker) StartupCheck(ctx context.Context) error {
	tpl, err := w.sender.Template(ConfirmationTemplate)
	if err != nil {
		return fmt.Errorf("confirmation template: %w", err)
	}
	bookings, err := w.store.ListBookings(ctx)
	if err != nil {
		return fmt.Errorf("list bookings for startup check: %w", err)
	}
	messages, err := w.store.ListMessages(ctx)
	if err != nil {
		return fmt.Errorf("list messages for startup check: %w", err)
	}
	confirmed := make(map[string]struct{}, len(messages))
	for _, m := range messages {
		if m.TemplateName == tpl.Name {
			confirmed[m.BookingID] = struct{}{}
		}
	}

	limit := w.batchSize * 5
	attempted, sent, failed, deferred := 0, 0, 0, 0
	for _, b := range bookings {
		if b.Status != core.BookingConfirmed {
			continue
		}
		if _, ok := confirmed[b.ID]; ok {
			continue
		}
		if attempted >= limit {
			deferred++
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		attempted++
		created, err := w.confirm(ctx, b)
		if err != nil {
			w.logger.ErrorContext(ctx, "Failed to confirm booking during startup",
				log.FieldBookingID, b.ID, log.FieldError, err.Error())
			failed++
			continue
		}
		if created {
			sent++
		}
	}

	w.logger.InfoContext(ctx, "Startup check completed",
		"attempted", attempted,
		"sent", sent,
		"errors", failed,
		"deferred", deferred)
	return nil
}

func (w *NotificationWorker) confirm(ctx context.Context, b core.Booking) (bool, error) {
	if b.Status != core.BookingConfirmed {
		w.logger.DebugContext(ctx, "Booking not confirmed, no message sent",
			log.FieldBookingID, b.ID, log.FieldStatus, string(b.Status))
		return false, nil
	}
	m, created, err := w.sender.SendOnce(ctx, b.ID, ConfirmationTemplate)
	if err != nil {
		return false, fmt.Errorf("send confirmation: %w", err)
	}
	if created {
		w.logger.InfoContext(ctx, "Confirmation sent",
			log.FieldBookingID, b.ID, log.FieldChannel, string(m.Type))
	}
	return created, nil
}
