package backend

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conciergerie/internal/config"
)

func TestFromAppConfig(t *testing.T) {
	_, err := FromAppConfig(nil)
	assert.Error(t, err)

	_, err = FromAppConfig(&config.Config{DataBackend: "postgres"})
	assert.Error(t, err)

	cfg, err := FromAppConfig(&config.Config{DataBackend: "sqlite", SQLiteDBPath: "x.db", SeedFile: "seed.json"})
	require.NoError(t, err)
	assert.Equal(t, SQLiteBackend, cfg.Type)
	assert.Equal(t, "x.db", cfg.SQLiteDBPath)
	assert.Equal(t, "seed.json", cfg.SeedFile)
}

func TestConfigValidate(t *testing.T) {
	assert.Error(t, Config{Type: "nope"}.Validate())
	assert.Error(t, Config{Type: SQLiteBackend}.Validate())
	assert.Error(t, Config{Type: SheetsBackend}.Validate())
	assert.NoError(t, Config{Type: MemoryBackend}.Validate())
	assert.Equal(t, []string{"sqlite", "sheets", "memory"}, GetBackendTypeStrings())
}

func TestCreateMemoryBackend(t *testing.T) {
	res, err := NewFactory(nil).CreateBackend(context.Background(), Config{Type: MemoryBackend})
	require.NoError(t, err)
	defer res.Close()

	props, err := res.Repository.ListProperties(context.Background())
	require.NoError(t, err)
	assert.Len(t, props, 3)
	assert.Nil(t, res.Publisher)
}

func TestCreateMemoryBackendFromSeedFile(t *testing.T) {
	seed := filepath.Join(t.TempDir(), "seed.json")
	require.NoError(t, os.WriteFile(seed, []byte(`{"properties":[{"id":"x1","ownerId":"9","name":"Maison"}]}`), 0o644))

	res, err := NewFactory(nil).CreateBackend(context.Background(), Config{Type: MemoryBackend, SeedFile: seed})
	require.NoError(t, err)

	props, err := res.Repository.ListProperties(context.Background())
	require.NoError(t, err)
	require.Len(t, props, 1)
	assert.Equal(t, "Maison", props[0].Name)
}

func TestCreateSQLiteBackendSeedsOnce(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "data", "test.db")
	factory := NewFactory(nil)

	res, err := factory.CreateBackend(ctx, Config{Type: SQLiteBackend, SQLiteDBPath: dbPath})
	require.NoError(t, err)
	bookings, err := res.Repository.ListBookings(ctx)
	require.NoError(t, err)
	assert.Len(t, bookings, 3)
	require.NoError(t, res.Close())

	// Reopening must not import the fixtures a second time.
	res, err = factory.CreateBackend(ctx, Config{Type: SQLiteBackend, SQLiteDBPath: dbPath})
	require.NoError(t, err)
	defer res.Close()
	bookings, err = res.Repository.ListBookings(ctx)
	require.NoError(t, err)
	assert.Len(t, bookings, 3)

	pinger, ok := res.Repository.(Pinger)
	require.True(t, ok)
	assert.NoError(t, pinger.Ping(ctx))
}

func TestCreateSheetsBackendRequiresSpreadsheet(t *testing.T) {
	_, err := NewFactory(nil).CreateBackend(context.Background(), Config{Type: SheetsBackend})
	assert.Error(t, err)
}
