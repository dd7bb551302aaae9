package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"boutique-datastore/internal/model"
)

// SnapshotVersion is the schema version of the persisted snapshot. Restore
// rejects any other version so shape changes can migrate explicitly.
const SnapshotVersion = 1

type snapshotError string

func (e snapshotError) Error() string { return string(e) }

// ErrSnapshotVersion indicates a persisted snapshot with a different schema
// version.
const ErrSnapshotVersion snapshotError = "snapshot schema version mismatch"

// snapshotPayload is the serialized form of the cache. Loading flags and
// dirty counters are deliberately absent: they reset on restore.
type snapshotPayload struct {
	Version        int                      `json:"version"`
	Products       []model.Product          `json:"products"`
	Categories     []model.Category         `json:"categories"`
	Orders         []model.Order            `json:"orders"`
	Customers      []model.Customer         `json:"customers"`
	DashboardStats *model.DashboardStats    `json:"dashboardStats,omitempty"`
	LastUpdated    map[Collection]time.Time `json:"lastUpdated"`
}

// Persist writes the current cache state to the snapshot store. A store
// created without one persists nothing.
func (s *Store) Persist(ctx context.Context) error {
	if s.snapshots == nil {
		return nil
	}

	// Copy under the lock: in-place patches may land while encoding runs.
	s.mu.Lock()
	payload := snapshotPayload{
		Version:     SnapshotVersion,
		Products:    append([]model.Product(nil), s.products...),
		Categories:  append([]model.Category(nil), s.categories...),
		Orders:      append([]model.Order(nil), s.orders...),
		Customers:   append([]model.Customer(nil), s.customers...),
		LastUpdated: make(map[Collection]time.Time, len(s.lastUpdated)),
	}
	if s.stats != nil {
		stats := *s.stats
		payload.DashboardStats = &stats
	}
	for c, t := range s.lastUpdated {
		payload.LastUpdated[c] = t
	}
	s.mu.Unlock()

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := s.snapshots.Write(ctx, data); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}

// Restore loads a previously persisted snapshot into the cache. Collections
// and freshness timestamps round-trip exactly; loading flags and dirty
// counters come back cleared. Returns snapshot.ErrNotFound when nothing was
// persisted.
func (s *Store) Restore(ctx context.Context) error {
	if s.snapshots == nil {
		return nil
	}

	data, err := s.snapshots.Read(ctx)
	if err != nil {
		return err
	}

	var payload snapshotPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("failed to decode snapshot: %w", err)
	}
	if payload.Version != SnapshotVersion {
		return fmt.Errorf("%w: got %d, want %d", ErrSnapshotVersion, payload.Version, SnapshotVersion)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.products = payload.Products
	if s.products == nil {
		s.products = []model.Product{}
	}
	s.categories = payload.Categories
	if s.categories == nil {
		s.categories = []model.Category{}
	}
	s.orders = payload.Orders
	if s.orders == nil {
		s.orders = []model.Order{}
	}
	s.customers = payload.Customers
	if s.customers == nil {
		s.customers = []model.Customer{}
	}
	s.stats = payload.DashboardStats

	s.lastUpdated = payload.LastUpdated
	if s.lastUpdated == nil {
		s.lastUpdated = make(map[Collection]time.Time)
	}
	s.loading = make(map[Collection]bool)
	s.dirty = make(map[Collection]int)
	return nil
}
