package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conciergerie/internal/core"
	"conciergerie/internal/repository"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "data", "test.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestImportAndList(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	empty, err := repo.IsEmpty(ctx)
	require.NoError(t, err)
	assert.True(t, empty)

	seed := repository.Fixtures()
	require.NoError(t, repo.Import(ctx, seed))

	empty, err = repo.IsEmpty(ctx)
	require.NoError(t, err)
	assert.False(t, empty)

	users, err := repo.ListUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, seed.Users, users)

	props, err := repo.ListProperties(ctx)
	require.NoError(t, err)
	assert.Equal(t, seed.Properties, props)

	bookings, err := repo.ListBookings(ctx)
	require.NoError(t, err)
	assert.Equal(t, seed.Bookings, bookings)

	docs, err := repo.ListDocuments(ctx)
	require.NoError(t, err)
	assert.Equal(t, seed.Documents, docs)

	checkIns, err := repo.ListCheckIns(ctx)
	require.NoError(t, err)
	require.Len(t, checkIns, 2)
	require.NotNil(t, checkIns[0].CheckinTime)
	assert.True(t, seed.CheckIns[0].CheckinTime.Equal(*checkIns[0].CheckinTime))
	assert.Nil(t, checkIns[0].CheckoutTime)

	msgs, err := repo.ListMessages(ctx)
	require.NoError(t, err)
	assert.Equal(t, seed.Messages, msgs)

	snap, err := repository.LoadSnapshot(ctx, repo)
	require.NoError(t, err)
	assert.Len(t, snap.Bookings, 3)
}

func TestImportIsAtomic(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	seed := repository.Fixtures()
	seed.Messages = append(seed.Messages, core.Message{ID: "bad", BookingID: "b1", Type: "Fax", Content: "x"})
	require.Error(t, repo.Import(ctx, seed))

	empty, err := repo.IsEmpty(ctx)
	require.NoError(t, err)
	assert.True(t, empty)
}

func TestCreateAndGetBooking(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	require.NoError(t, repo.Import(ctx, repository.Seed{Properties: repository.Fixtures().Properties}))

	b := core.Booking{
		ID:           "b9",
		PropertyID:   "p1",
		ClientID:     "3",
		ClientName:   "Marie Voyageur",
		PropertyName: "Appartement Marais",
		StartDate:    core.NewDate(2026, 3, 1),
		EndDate:      core.NewDate(2026, 3, 1),
		Status:       core.BookingPending,
	}
	require.NoError(t, repo.CreateBooking(ctx, b))

	got, err := repo.GetBooking(ctx, "b9")
	require.NoError(t, err)
	assert.Equal(t, b, got)

	assert.ErrorIs(t, repo.CreateBooking(ctx, b), repository.ErrDuplicate)

	_, err = repo.GetBooking(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	p, err := repo.GetProperty(ctx, "p2")
	require.NoError(t, err)
	assert.Equal(t, "Studio Montmartre", p.Name)
	_, err = repo.GetProperty(ctx, "p9")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	bad := b
	bad.ID = "b10"
	bad.StartDate = core.NewDate(2026, 3, 5)
	assert.ErrorIs(t, repo.CreateBooking(ctx, bad), core.ErrInvalidDateRange)
}

func TestAppendMessage(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	m := core.Message{
		ID:           "m1",
		BookingID:    "b1",
		Type:         core.ChannelWhatsApp,
		TemplateName: "Bienvenue",
		Content:      "Bienvenue à Appartement Marais !",
		SentAt:       time.Date(2025, 12, 20, 9, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.AppendMessage(ctx, m))
	assert.ErrorIs(t, repo.AppendMessage(ctx, m), repository.ErrDuplicate)

	msgs, err := repo.ListMessages(ctx)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, m, msgs[0])
}

func TestImportRejectsInvalidUser(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	seed := repository.Fixtures()
	seed.Users = append(seed.Users, core.User{ID: "9", Role: "landlord", Name: "Nobody"})
	require.ErrorIs(t, repo.Import(ctx, seed), core.ErrInvalidRole)

	users, err := repo.ListUsers(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestMigrationsAreIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "twice.db")
	require.NoError(t, RunMigrations(path))
	require.NoError(t, RunMigrations(path))
}
