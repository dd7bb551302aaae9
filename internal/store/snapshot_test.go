package store

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"boutique-datastore/internal/model"
	"boutique-datastore/internal/snapshot"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memSnapshotStore is an in-memory snapshot.Store double.
type memSnapshotStore struct {
	data []byte
}

func (m *memSnapshotStore) Read(ctx context.Context) ([]byte, error) {
	if m.data == nil {
		return nil, snapshot.ErrNotFound
	}
	return m.data, nil
}

func (m *memSnapshotStore) Write(ctx context.Context, data []byte) error {
	m.data = append([]byte(nil), data...)
	return nil
}

func (m *memSnapshotStore) Clear(ctx context.Context) error {
	m.data = nil
	return nil
}

func (m *memSnapshotStore) Close() error { return nil }

func TestSnapshotRoundTrip(t *testing.T) {
	svc := newFakeService()
	svc.products = sampleProducts()
	svc.orders = []model.Order{{ID: "o1", CustomerName: "Awa", TotalAmount: 45, Status: model.OrderStatusDelivered}}
	snapStore := &memSnapshotStore{}
	clock := newTestClock()
	st := New(svc, snapStore, zerolog.Nop(), Options{Now: clock.Now})

	st.PreloadAll(context.Background())
	require.NoError(t, st.Persist(context.Background()))

	// Simulate a reload into a fresh store sharing the same clock.
	reloaded := New(newFakeService(), snapStore, zerolog.Nop(), Options{Now: clock.Now})
	require.NoError(t, reloaded.Restore(context.Background()))

	assert.Equal(t, st.ProductList(), reloaded.ProductList())
	assert.Equal(t, st.OrderList(), reloaded.OrderList())
	assert.Equal(t, st.CategoryList(), reloaded.CategoryList())
	assert.Equal(t, st.CustomerList(), reloaded.CustomerList())
	require.NotNil(t, reloaded.Stats())
	assert.Equal(t, *st.Stats(), *reloaded.Stats())

	for _, c := range []Collection{Products, Categories, Orders, Customers, DashboardStats} {
		assert.True(t, st.LastUpdated(c).Equal(reloaded.LastUpdated(c)), "lastUpdated %s", c)
		assert.False(t, reloaded.IsLoading(c), "loading flags reset on restore")
	}

	// Restored freshness is honored: no refetch inside the window.
	reloadedSvc := newFakeService()
	fresh := New(reloadedSvc, snapStore, zerolog.Nop(), Options{Now: clock.Now})
	require.NoError(t, fresh.Restore(context.Background()))
	fresh.FetchProducts(context.Background(), false)
	assert.Equal(t, 0, reloadedSvc.callCount("products"))
}

func TestRestoreNoSnapshot(t *testing.T) {
	st := New(newFakeService(), &memSnapshotStore{}, zerolog.Nop(), Options{})
	err := st.Restore(context.Background())
	assert.ErrorIs(t, err, snapshot.ErrNotFound)
	assert.Empty(t, st.ProductList())
}

func TestRestoreVersionMismatch(t *testing.T) {
	snapStore := &memSnapshotStore{}
	payload := map[string]any{"version": 99, "products": []model.Product{{ID: "p1"}}}
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	require.NoError(t, snapStore.Write(context.Background(), data))

	st := New(newFakeService(), snapStore, zerolog.Nop(), Options{})
	err = st.Restore(context.Background())
	require.ErrorIs(t, err, ErrSnapshotVersion)
	assert.Empty(t, st.ProductList(), "mismatched snapshot must not populate the cache")
}

func TestPersistWithoutSnapshotStore(t *testing.T) {
	st := New(newFakeService(), nil, zerolog.Nop(), Options{})
	assert.NoError(t, st.Persist(context.Background()))
	assert.NoError(t, st.Restore(context.Background()))
}

func TestSnapshotExcludesLoadingFlags(t *testing.T) {
	svc := newFakeService()
	svc.products = sampleProducts()
	svc.block = make(chan struct{})
	snapStore := &memSnapshotStore{}
	st := New(svc, snapStore, zerolog.Nop(), Options{})

	done := make(chan struct{})
	go func() {
		defer close(done)
		st.FetchProducts(context.Background(), true)
	}()

	require.Eventually(t, func() bool {
		return st.IsLoading(Products)
	}, time.Second, time.Millisecond)

	// Persist while a fetch is in flight, then restore elsewhere.
	require.NoError(t, st.Persist(context.Background()))

	reloaded := New(newFakeService(), snapStore, zerolog.Nop(), Options{})
	require.NoError(t, reloaded.Restore(context.Background()))
	assert.False(t, reloaded.IsLoading(Products))

	close(svc.block)
	<-done
}
