package repository

import (
	"context"
	"errors"

	"conciergerie/internal/core"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate id")
	ErrReadOnly  = errors.New("repository is read-only")
)

// Ports for the entity stores.
type (
	UserReader interface {
		ListUsers(ctx context.Context) ([]core.User, error)
	}

	PropertyReader interface {
		ListProperties(ctx context.Context) ([]core.Property, error)
		GetProperty(ctx context.Context, id string) (core.Property, error)
	}

	BookingReader interface {
		ListBookings(ctx context.Context) ([]core.Booking, error)
		GetBooking(ctx context.Context, id string) (core.Booking, error)
	}

	BookingWriter interface {
		CreateBooking(ctx context.Context, b core.Booking) error
	}

	DocumentReader interface {
		ListDocuments(ctx context.Context) ([]core.Document, error)
	}

	CheckInReader interface {
		ListCheckIns(ctx context.Context) ([]core.CheckIn, error)
	}

	MessageReader interface {
		ListMessages(ctx context.Context) ([]core.Message, error)
	}

	// MessageWriter appends to the message log. Messages are never updated.
	MessageWriter interface {
		AppendMessage(ctx context.Context, m core.Message) error
	}

	// SnapshotReader is what the dashboard needs to compute an overview.
	SnapshotReader interface {
		PropertyReader
		BookingReader
		DocumentReader
		CheckInReader
	}

	Repository interface {
		SnapshotReader
		UserReader
		BookingWriter
		MessageReader
		MessageWriter
	}
)
