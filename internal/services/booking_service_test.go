package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conciergerie/internal/amqp"
	"conciergerie/internal/core"
	"conciergerie/internal/repository"
	"conciergerie/internal/repository/memory"
)

type recordingPublisher struct {
	mu   sync.Mutex
	msgs []*amqp.BookingEventMessage
	err  error
}

func (p *recordingPublisher) PublishBookingEvent(_ context.Context, msg *amqp.BookingEventMessage) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.msgs = append(p.msgs, msg)
	return p.err
}

func validRequest() CreateBookingRequest {
	return CreateBookingRequest{
		PropertyID: "p2",
		ClientID:   "7",
		ClientName: "Luc Bernard",
		StartDate:  "2026-02-10",
		EndDate:    "2026-02-14",
		Status:     "confirmed",
	}
}

func TestBookingServiceCreate(t *testing.T) {
	store := memory.New(repository.Fixtures())
	pub := &recordingPublisher{}
	svc := NewBookingService(store, store, pub, nil)
	svc.now = func() time.Time { return time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC) }

	b, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, b.ID)
	assert.Equal(t, "Studio Montmartre", b.PropertyName)
	assert.Equal(t, core.BookingConfirmed, b.Status)
	assert.Equal(t, core.NewDate(2026, 2, 10), b.StartDate)

	stored, err := store.GetBooking(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, b, stored)

	require.Len(t, pub.msgs, 1)
	assert.Equal(t, b.ID, pub.msgs[0].BookingID)
	assert.Equal(t, amqp.EventBookingCreated, pub.msgs[0].Event)
	assert.Equal(t, svc.now(), pub.msgs[0].Timestamp)
}

func TestBookingServiceDefaultsToPending(t *testing.T) {
	store := memory.New(repository.Fixtures())
	svc := NewBookingService(store, store, nil, nil)

	req := validRequest()
	req.Status = ""
	b, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, core.BookingPending, b.Status)
}

func TestBookingServicePublishFailureKeepsBooking(t *testing.T) {
	store := memory.New(repository.Fixtures())
	pub := &recordingPublisher{err: amqp.ErrCircuitOpen}
	svc := NewBookingService(store, store, pub, nil)

	b, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	_, err = store.GetBooking(context.Background(), b.ID)
	assert.NoError(t, err)
}

func TestBookingServiceValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CreateBookingRequest)
		field  string
	}{
		{"missing property", func(r *CreateBookingRequest) { r.PropertyID = "" }, "propertyId"},
		{"missing client", func(r *CreateBookingRequest) { r.ClientID = "" }, "clientId"},
		{"missing name", func(r *CreateBookingRequest) { r.ClientName = "" }, "clientName"},
		{"bad start", func(r *CreateBookingRequest) { r.StartDate = "10/02/2026" }, "startDate"},
		{"end before start", func(r *CreateBookingRequest) { r.EndDate = "2026-02-09" }, "endDate"},
		{"bad status", func(r *CreateBookingRequest) { r.Status = "archived" }, "status"},
		{"unknown property", func(r *CreateBookingRequest) { r.PropertyID = "p9" }, "propertyId"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memory.New(repository.Fixtures())
			pub := &recordingPublisher{}
			svc := NewBookingService(store, store, pub, nil)

			req := validRequest()
			tt.mutate(&req)
			_, err := svc.Create(context.Background(), req)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrValidation))

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tt.field)
			assert.Empty(t, pub.msgs)
		})
	}
}

func TestBookingServiceSameDayBooking(t *testing.T) {
	store := memory.New(repository.Fixtures())
	svc := NewBookingService(store, store, nil, nil)

	req := validRequest()
	req.EndDate = req.StartDate
	_, err := svc.Create(context.Background(), req)
	assert.NoError(t, err)
}

func TestValidationErrorMessageIsSorted(t *testing.T) {
	err := &ValidationError{Fields: map[string]string{"status": "x", "clientId": "y"}}
	assert.Equal(t, "validation failed: clientId: y; status: x", err.Error())
}
