package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"conciergerie/internal/core"
	"conciergerie/internal/log"
	"conciergerie/internal/repository"
)

type SQLiteRepository struct {
	db      *sql.DB
	queries *Queries
	logger  *log.Logger
}

var _ repository.Repository = (*SQLiteRepository)(nil)

// NewSQLiteRepository opens dbPath, creating its directory, and applies
// pending migrations.
func NewSQLiteRepository(dbPath string, logger *log.Logger) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// SQLite serialises writers anyway.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	if logger == nil {
		logger = log.Discard()
	}
	return &SQLiteRepository{
		db:      db,
		queries: New(db),
		logger:  logger.WithComponent(log.ComponentStorage),
	}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *SQLiteRepository) ListUsers(ctx context.Context) ([]core.User, error) {
	users, err := r.queries.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (r *SQLiteRepository) ListProperties(ctx context.Context) ([]core.Property, error) {
	props, err := r.queries.ListProperties(ctx)
	if err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	return props, nil
}

func (r *SQLiteRepository) GetProperty(ctx context.Context, id string) (core.Property, error) {
	p, err := r.queries.GetProperty(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Property{}, fmt.Errorf("property %s: %w", id, repository.ErrNotFound)
	}
	if err != nil {
		return core.Property{}, fmt.Errorf("get property %s: %w", id, err)
	}
	return p, nil
}

func (r *SQLiteRepository) ListBookings(ctx context.Context) ([]core.Booking, error) {
	bookings, err := r.queries.ListBookings(ctx)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return bookings, nil
}

func (r *SQLiteRepository) GetBooking(ctx context.Context, id string) (core.Booking, error) {
	b, err := r.queries.GetBooking(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Booking{}, fmt.Errorf("booking %s: %w", id, repository.ErrNotFound)
	}
	if err != nil {
		return core.Booking{}, fmt.Errorf("get booking %s: %w", id, err)
	}
	return b, nil
}

func (r *SQLiteRepository) CreateBooking(ctx context.Context, b core.Booking) error {
	if err := b.Validate(); err != nil {
		return err
	}
	if err := r.queries.CreateBooking(ctx, b); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("booking %s: %w", b.ID, repository.ErrDuplicate)
		}
		return fmt.Errorf("create booking: %w", err)
	}
	r.logger.InfoContext(ctx, "Booking saved to SQLite",
		log.FieldBookingID, b.ID,
		log.FieldPropertyID, b.PropertyID,
		log.FieldStatus, string(b.Status))
	return nil
}

func (r *SQLiteRepository) ListDocuments(ctx context.Context) ([]core.Document, error) {
	docs, err := r.queries.ListDocuments(ctx)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return docs, nil
}

func (r *SQLiteRepository) ListCheckIns(ctx context.Context) ([]core.CheckIn, error) {
	checkIns, err := r.queries.ListCheckIns(ctx)
	if err != nil {
		return nil, fmt.Errorf("list check-ins: %w", err)
	}
	return checkIns, nil
}

func (r *SQLiteRepository) ListMessages(ctx context.Context) ([]core.Message, error) {
	msgs, err := r.queries.ListMessages(ctx)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return msgs, nil
}

func (r *SQLiteRepository) AppendMessage(ctx context.Context, m core.Message) error {
	if err := m.Validate(); err != nil {
		return err
	}
	if err := r.queries.CreateMessage(ctx, m); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("message %s: %w", m.ID, repository.ErrDuplicate)
		}
		return fmt.Errorf("append message: %w", err)
	}
	return nil
}

// IsEmpty reports whether no property has been stored yet.
func (r *SQLiteRepository) IsEmpty(ctx context.Context) (bool, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM properties`).Scan(&n); err != nil {
		return false, fmt.Errorf("count properties: %w", err)
	}
	return n == 0, nil
}

// Import writes every entity of seed in one transaction. Invalid records
// abort the whole import.
func (r *SQLiteRepository) Import(ctx context.Context, seed repository.Seed) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback()
	q := r.queries.WithTx(tx)

	for _, u := range seed.Users {
		if err := u.Validate(); err != nil {
			return fmt.Errorf("user %s: %w", u.ID, err)
		}
		if err := q.CreateUser(ctx, u); err != nil {
			return fmt.Errorf("import user %s: %w", u.ID, err)
		}
	}
	for _, p := range seed.Properties {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("property %s: %w", p.ID, err)
		}
		if err := q.CreateProperty(ctx, p); err != nil {
			return fmt.Errorf("import property %s: %w", p.ID, err)
		}
	}
	for _, b := range seed.Bookings {
		if err := b.Validate(); err != nil {
			return fmt.Errorf("booking %s: %w", b.ID, err)
		}
		if err := q.CreateBooking(ctx, b); err != nil {
			return fmt.Errorf("import booking %s: %w", b.ID, err)
		}
	}
	for _, d := range seed.Documents {
		if err := d.Validate(); err != nil {
			return fmt.Errorf("document %s: %w", d.ID, err)
		}
		if err := q.CreateDocument(ctx, d); err != nil {
			return fmt.Errorf("import document %s: %w", d.ID, err)
		}
	}
	for _, c := range seed.CheckIns {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("check-in %s: %w", c.ID, err)
		}
		if err := q.CreateCheckIn(ctx, c); err != nil {
			return fmt.Errorf("import check-in %s: %w", c.ID, err)
		}
	}
	for _, m := range seed.Messages {
		if err := m.Validate(); err != nil {
			return fmt.Errorf("message %s: %w", m.ID, err)
		}
		if err := q.CreateMessage(ctx, m); err != nil {
			return fmt.Errorf("import message %s: %w", m.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit import: %w", err)
	}
	r.logger.InfoContext(ctx, "Seed imported",
		"users", len(seed.Users),
		"properties", len(seed.Properties),
		"bookings", len(seed.Bookings),
		"documents", len(seed.Documents),
		"check_ins", len(seed.CheckIns),
		"messages", len(seed.Messages))
	return nil
}

func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "PRIMARY KEY")
}
