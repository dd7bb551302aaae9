package snapshot

import (
	"context"
)

// Store persists the serialized cache snapshot. Implementations hold exactly
// one record: the latest snapshot.
// This abstraction allows swapping between file storage (on-device)
// and Redis (kiosk/shared deployments) without changing the cache.
type Store interface {
	// Read returns the last written snapshot. Returns ErrNotFound if no
	// snapshot has been written.
	Read(ctx context.Context) ([]byte, error)

	// Write replaces the stored snapshot.
	Write(ctx context.Context, data []byte) error

	// Clear removes the stored snapshot. Clearing an empty store is not
	// an error.
	Clear(ctx context.Context) error

	// Close releases any underlying resources.
	Close() error
}

// StoreError is a snapshot storage error condition.
type StoreError string

func (e StoreError) Error() string { return string(e) }

const (
	// ErrNotFound indicates no snapshot has been persisted yet.
	ErrNotFound StoreError = "snapshot not found"
)
