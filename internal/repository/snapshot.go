package repository

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"conciergerie/internal/core"
)

// LoadSnapshot reads the four collections concurrently. The first failure
// cancels the other reads.
func LoadSnapshot(ctx context.Context, r SnapshotReader) (core.Snapshot, error) {
	var snap core.Snapshot
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		props, err := r.ListProperties(ctx)
		if err != nil {
			return fmt.Errorf("list properties: %w", err)
		}
		snap.Properties = props
		return nil
	})
	g.Go(func() error {
		bookings, err := r.ListBookings(ctx)
		if err != nil {
			return fmt.Errorf("list bookings: %w", err)
		}
		snap.Bookings = bookings
		return nil
	})
	g.Go(func() error {
		docs, err := r.ListDocuments(ctx)
		if err != nil {
			return fmt.Errorf("list documents: %w", err)
		}
		snap.Documents = docs
		return nil
	})
	g.Go(func() error {
		checkIns, err := r.ListCheckIns(ctx)
		if err != nil {
			return fmt.Errorf("list check-ins: %w", err)
		}
		snap.CheckIns = checkIns
		return nil
	})

	if err := g.Wait(); err != nil {
		return core.Snapshot{}, err
	}
	return snap, nil
}
