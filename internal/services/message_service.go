package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"conciergerie/internal/core"
	"conciergerie/internal/log"
	"conciergerie/internal/repository"
)

// SendMessageRequest asks for a template to be rendered for a booking.
type SendMessageRequest struct {
	BookingID  string `json:"bookingId" validate:"required"`
	Template   string `json:"template" validate:"required"`
	AccessCode string `json:"accessCode" validate:"omitempty,numeric,max=12"`
}

type bookingMessageStore interface {
	repository.BookingReader
	repository.MessageReader
	repository.MessageWriter
}

// MessageService renders templates into the message log.
type MessageService struct {
	store     bookingMessageStore
	templates []core.MessageTemplate
	validate  *validator.Validate
	logger    *log.Logger
	now       func() time.Time

	// onceMu serialises SendOnce so the check and the append are atomic
	// within the process.
	onceMu sync.Mutex
}

func NewMessageService(store bookingMessageStore, templates []core.MessageTemplate, logger *log.Logger) *MessageService {
	if len(templates) == 0 {
		templates = core.DefaultTemplates()
	}
	if logger == nil {
		logger = log.Discard()
	}
	return &MessageService{
		store:     store,
		templates: templates,
		validate:  newValidator(),
		logger:    logger.WithComponent(log.ComponentMessage),
		now:       time.Now,
	}
}

// Templates returns a copy of the configured templates.
func (s *MessageService) Templates() []core.MessageTemplate {
	return append([]core.MessageTemplate(nil), s.templates...)
}

// Template looks a configured template up by id or name.
func (s *MessageService) Template(key string) (core.MessageTemplate, error) {
	return core.FindTemplate(s.templates, key)
}

// Send renders req.Template for the booking and appends the result.
func (s *MessageService) Send(ctx context.Context, req SendMessageRequest) (core.Message, error) {
	if err := validateStruct(s.validate, req); err != nil {
		return core.Message{}, err
	}
	tpl, err := core.FindTemplate(s.templates, req.Template)
	if err != nil {
		return core.Message{}, &ValidationError{Fields: map[string]string{"template": "unknown template"}}
	}
	b, err := s.store.GetBooking(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return core.Message{}, &ValidationError{Fields: map[string]string{"bookingId": "unknown booking"}}
		}
		return core.Message{}, fmt.Errorf("load booking: %w", err)
	}

	vars := core.BookingVars(b)
	if req.AccessCode != "" {
		vars[core.VarAccessCode] = req.AccessCode
	}
	return s.append(ctx, b, tpl, vars)
}

// SendOnce appends the rendered template unless the booking already has a
// message from it. Redelivered events rely on this.
func (s *MessageService) SendOnce(ctx context.Context, bookingID, templateKey string) (core.Message, bool, error) {
	tpl, err := core.FindTemplate(s.templates, templateKey)
	if err != nil {
		return core.Message{}, false, err
	}
	b, err := s.store.GetBooking(ctx, bookingID)
	if err != nil {
		return core.Message{}, false, fmt.Errorf("load booking: %w", err)
	}

	s.onceMu.Lock()
	defer s.onceMu.Unlock()
	existing, err := s.store.ListMessages(ctx)
	if err != nil {
		return core.Message{}, false, fmt.Errorf("list messages: %w", err)
	}
	for _, m := range existing {
		if m.BookingID == bookingID && m.TemplateName == tpl.Name {
			return m, false, nil
		}
	}
	m, err := s.append(ctx, b, tpl, core.BookingVars(b))
	if err != nil {
		return core.Message{}, false, err
	}
	return m, true, nil
}

func (s *MessageService) append(ctx context.Context, b core.Booking, tpl core.MessageTemplate, vars map[string]string) (core.Message, error) {
	m := core.Message{
		ID:           uuid.NewString(),
		BookingID:    b.ID,
		Type:         tpl.Type,
		TemplateName: tpl.Name,
		Content:      tpl.Render(vars),
		SentAt:       s.now().UTC(),
	}
	if err := s.store.AppendMessage(ctx, m); err != nil {
		return core.Message{}, fmt.Errorf("append message: %w", err)
	}
	s.logger.InfoContext(ctx, "Message recorded",
		log.FieldBookingID, b.ID,
		log.FieldChannel, string(m.Type),
		log.FieldTemplate, tpl.Name,
		log.FieldOperation, log.OpAppend)
	return m, nil
}
