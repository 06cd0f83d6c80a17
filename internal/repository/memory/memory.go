package memory

import (
	"context"
	"fmt"
	"sync"

	"conciergerie/internal/core"
	"conciergerie/internal/repository"
)

// Store keeps every collection in memory. Reads return copies.
type Store struct {
	mu         sync.RWMutex
	users      []core.User
	properties []core.Property
	bookings   []core.Booking
	documents  []core.Document
	checkIns   []core.CheckIn
	messages   []core.Message
}

var _ repository.Repository = (*Store)(nil)

func New(seed repository.Seed) *Store {
	return &Store{
		users:      append([]core.User(nil), seed.Users...),
		properties: append([]core.Property(nil), seed.Properties...),
		bookings:   append([]core.Booking(nil), seed.Bookings...),
		documents:  append([]core.Document(nil), seed.Documents...),
		checkIns:   append([]core.CheckIn(nil), seed.CheckIns...),
		messages:   append([]core.Message(nil), seed.Messages...),
	}
}

// NewFromFile loads a JSON seed. An empty path yields the built-in fixtures.
func NewFromFile(path string) (*Store, error) {
	if path == "" {
		return New(repository.Fixtures()), nil
	}
	seed, err := repository.ReadSeedFile(path)
	if err != nil {
		return nil, err
	}
	return New(seed), nil
}

func (s *Store) ListUsers(_ context.Context) ([]core.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]core.User{}, s.users...), nil
}

func (s *Store) ListProperties(_ context.Context) ([]core.Property, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]core.Property{}, s.properties...), nil
}

func (s *Store) GetProperty(_ context.Context, id string) (core.Property, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.properties {
		if p.ID == id {
			return p, nil
		}
	}
	return core.Property{}, fmt.Errorf("property %s: %w", id, repository.ErrNotFound)
}

func (s *Store) ListBookings(_ context.Context) ([]core.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]core.Booking{}, s.bookings...), nil
}

func (s *Store) GetBooking(_ context.Context, id string) (core.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, b := range s.bookings {
		if b.ID == id {
			return b, nil
		}
	}
	return core.Booking{}, fmt.Errorf("booking %s: %w", id, repository.ErrNotFound)
}

// CreateBooking validates b and appends it.
func (s *Store) CreateBooking(_ context.Context, b core.Booking) error {
	if err := b.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.bookings {
		if existing.ID == b.ID {
			return fmt.Errorf("booking %s: %w", b.ID, repository.ErrDuplicate)
		}
	}
	s.bookings = append(s.bookings, b)
	return nil
}

func (s *Store) ListDocuments(_ context.Context) ([]core.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]core.Document{}, s.documents...), nil
}

func (s *Store) ListCheckIns(_ context.Context) ([]core.CheckIn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]core.CheckIn{}, s.checkIns...), nil
}

func (s *Store) ListMessages(_ context.Context) ([]core.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]core.Message{}, s.messages...), nil
}

func (s *Store) AppendMessage(_ context.Context, m core.Message) error {
	if err := m.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, m)
	return nil
}
