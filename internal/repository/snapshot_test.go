package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conciergerie/internal/core"
	"conciergerie/internal/repository"
	"conciergerie/internal/repository/memory"
)

type failingDocuments struct {
	repository.SnapshotReader
}

func (failingDocuments) ListDocuments(context.Context) ([]core.Document, error) {
	return nil, errors.New("sheet unavailable")
}

func TestLoadSnapshot(t *testing.T) {
	store := memory.New(repository.Fixtures())
	snap, err := repository.LoadSnapshot(context.Background(), store)
	require.NoError(t, err)

	assert.Len(t, snap.Properties, 3)
	assert.Len(t, snap.Bookings, 3)
	assert.Len(t, snap.Documents, 3)
	assert.Len(t, snap.CheckIns, 2)
}

func TestLoadSnapshotFails(t *testing.T) {
	reader := failingDocuments{SnapshotReader: memory.New(repository.Fixtures())}
	_, err := repository.LoadSnapshot(context.Background(), reader)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list documents")
}
