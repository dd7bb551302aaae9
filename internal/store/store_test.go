package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"boutique-datastore/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeService is an in-memory DataService double that counts calls.
type fakeService struct {
	mu         sync.Mutex
	calls      map[string]int
	products   []model.Product
	categories []model.Category
	orders     []model.Order
	customers  []model.Customer
	err        error
	block      chan struct{} // when set, Get* calls wait until closed
}

func newFakeService() *fakeService {
	return &fakeService{calls: map[string]int{}}
}

func (f *fakeService) record(name string) (chan struct{}, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
	return f.block, f.err
}

func (f *fakeService) callCount(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeService) GetProducts(ctx context.Context, useCache bool) ([]model.Product, error) {
	block, err := f.record("products")
	if block != nil {
		<-block
	}
	if err != nil {
		return nil, err
	}
	return f.products, nil
}

func (f *fakeService) GetCategories(ctx context.Context, useCache bool) ([]model.Category, error) {
	block, err := f.record("categories")
	if block != nil {
		<-block
	}
	if err != nil {
		return nil, err
	}
	return f.categories, nil
}

func (f *fakeService) GetOrders(ctx context.Context, useCache bool) ([]model.Order, error) {
	block, err := f.record("orders")
	if block != nil {
		<-block
	}
	if err != nil {
		return nil, err
	}
	return f.orders, nil
}

func (f *fakeService) GetCustomers(ctx context.Context, useCache bool) ([]model.Customer, error) {
	block, err := f.record("customers")
	if block != nil {
		<-block
	}
	if err != nil {
		return nil, err
	}
	return f.customers, nil
}

func (f *fakeService) PreloadAll(ctx context.Context) error {
	_, err := f.record("preload")
	return err
}

func (f *fakeService) Close() error { return nil }

// testClock is an adjustable clock for freshness-window tests.
type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func newTestClock() *testClock {
	return &testClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newTestStore(t *testing.T, svc *fakeService) (*Store, *testClock) {
	t.Helper()
	clock := newTestClock()
	st := New(svc, nil, zerolog.Nop(), Options{Now: clock.Now})
	return st, clock
}

func sampleProducts() []model.Product {
	return []model.Product{
		{ID: "p1", Name: "Robe d'été", OriginalPrice: 45, CategoryID: "c1", Stock: 3, Status: model.ProductStatusActive, IsVisible: true},
		{ID: "p2", Name: "Sac cabas", OriginalPrice: 80, CategoryID: "c1", Stock: 0, Status: model.ProductStatusOutOfStock, IsVisible: true},
	}
}

func TestFetchProductsPopulatesAndStamps(t *testing.T) {
	svc := newFakeService()
	svc.products = sampleProducts()
	st, clock := newTestStore(t, svc)

	st.FetchProducts(context.Background(), false)

	require.Len(t, st.ProductList(), 2)
	assert.Equal(t, 1, svc.callCount("products"))
	assert.Equal(t, clock.Now(), st.LastUpdated(Products))
	assert.False(t, st.IsLoading(Products))
}

func TestFetchProductsFreshIsNoOp(t *testing.T) {
	svc := newFakeService()
	svc.products = sampleProducts()
	st, clock := newTestStore(t, svc)

	st.FetchProducts(context.Background(), false)
	clock.Advance(time.Minute)
	st.FetchProducts(context.Background(), false)

	assert.Equal(t, 1, svc.callCount("products"), "fresh populated collection must not refetch")
}

func TestFetchProductsStaleRefetches(t *testing.T) {
	svc := newFakeService()
	svc.products = sampleProducts()
	st, clock := newTestStore(t, svc)

	st.FetchProducts(context.Background(), false)
	clock.Advance(DefaultMaxAge + time.Second)
	st.FetchProducts(context.Background(), false)

	assert.Equal(t, 2, svc.callCount("products"))
}

func TestFetchProductsForceAlwaysFetches(t *testing.T) {
	svc := newFakeService()
	svc.products = sampleProducts()
	st, _ := newTestStore(t, svc)

	st.FetchProducts(context.Background(), false)
	st.FetchProducts(context.Background(), true)
	st.FetchProducts(context.Background(), true)

	assert.Equal(t, 3, svc.callCount("products"))
}

func TestFetchProductsEmptyCollectionRefetchesEvenIfStamped(t *testing.T) {
	svc := newFakeService()
	st, _ := newTestStore(t, svc)

	// First fetch returns an empty result, stamping the timestamp.
	st.FetchProducts(context.Background(), false)
	require.Empty(t, st.ProductList())

	// An empty collection is never treated as fresh.
	st.FetchProducts(context.Background(), false)
	assert.Equal(t, 2, svc.callCount("products"))
}

func TestFetchSingleFlight(t *testing.T) {
	svc := newFakeService()
	svc.products = sampleProducts()
	svc.block = make(chan struct{})
	st, _ := newTestStore(t, svc)

	done := make(chan struct{})
	go func() {
		defer close(done)
		st.FetchProducts(context.Background(), true)
	}()

	require.Eventually(t, func() bool {
		return st.IsLoading(Products)
	}, time.Second, time.Millisecond)

	// Second call while the first is in flight must be a no-op.
	st.FetchProducts(context.Background(), true)

	close(svc.block)
	<-done

	assert.Equal(t, 1, svc.callCount("products"))
	require.Len(t, st.ProductList(), 2)
}

func TestFetchFailureKeepsCollectionAndTimestamp(t *testing.T) {
	svc := newFakeService()
	svc.products = sampleProducts()
	st, clock := newTestStore(t, svc)

	st.FetchProducts(context.Background(), false)
	before := st.ProductList()
	stamped := st.LastUpdated(Products)

	clock.Advance(DefaultMaxAge + time.Second)
	svc.err = assert.AnError
	st.FetchProducts(context.Background(), false)

	assert.Equal(t, before, st.ProductList())
	assert.Equal(t, stamped, st.LastUpdated(Products), "failed fetch must not refresh the timestamp")
	assert.False(t, st.IsLoading(Products))

	// Timestamp untouched means the next call retries.
	svc.err = nil
	st.FetchProducts(context.Background(), false)
	assert.Equal(t, 3, svc.callCount("products"))
}

func TestFetchFailureOnColdStoreStaysEmpty(t *testing.T) {
	svc := newFakeService()
	svc.err = assert.AnError
	st, _ := newTestStore(t, svc)

	st.FetchCustomers(context.Background(), false)

	assert.Empty(t, st.CustomerList())
	assert.True(t, st.LastUpdated(Customers).IsZero())
}

func TestPreloadAllPopulatesEverything(t *testing.T) {
	svc := newFakeService()
	svc.products = sampleProducts()
	svc.categories = []model.Category{{ID: "c1", Name: "Femme", Slug: "femme", IsVisible: true}}
	svc.orders = []model.Order{{ID: "o1", CustomerName: "Awa", TotalAmount: 45, Status: model.OrderStatusPending}}
	svc.customers = []model.Customer{{ID: "u1", Name: "Awa", Status: model.CustomerStatusActive}}
	st, clock := newTestStore(t, svc)

	st.PreloadAll(context.Background())

	require.Len(t, st.ProductList(), 2)
	require.Len(t, st.CategoryList(), 1)
	require.Len(t, st.OrderList(), 1)
	require.Len(t, st.CustomerList(), 1)
	require.NotNil(t, st.Stats())
	assert.Equal(t, 1, svc.callCount("preload"))

	for _, c := range []Collection{Products, Categories, Orders, Customers, DashboardStats} {
		assert.Equal(t, clock.Now(), st.LastUpdated(c), "collection %s", c)
	}
}

func TestPreloadAllSkippedWhileFetchInFlight(t *testing.T) {
	svc := newFakeService()
	svc.products = sampleProducts()
	svc.block = make(chan struct{})
	st, _ := newTestStore(t, svc)

	done := make(chan struct{})
	go func() {
		defer close(done)
		st.FetchProducts(context.Background(), true)
	}()

	require.Eventually(t, func() bool {
		return st.IsLoading(Products)
	}, time.Second, time.Millisecond)

	st.PreloadAll(context.Background())
	assert.Equal(t, 0, svc.callCount("preload"), "preload must be a no-op while a fetch is in flight")

	close(svc.block)
	<-done
}

func TestRefreshPartialFailure(t *testing.T) {
	svc := newFakeService()
	svc.products = sampleProducts()
	st, _ := newTestStore(t, svc)

	st.Refresh(context.Background(), true)
	require.Len(t, st.ProductList(), 2)

	// A failing pass leaves every collection at its previous value.
	svc.err = assert.AnError
	st.Refresh(context.Background(), true)
	assert.Len(t, st.ProductList(), 2)
}

func TestProductListEditsDoNotReachCache(t *testing.T) {
	svc := newFakeService()
	svc.products = sampleProducts()
	st, _ := newTestStore(t, svc)

	st.FetchProducts(context.Background(), false)

	got := st.ProductList()
	got[0].Name = "edited locally"

	fresh := st.ProductList()
	require.Len(t, fresh, 2)
	assert.Equal(t, "Robe d'été", fresh[0].Name)
}

func TestIsFresh(t *testing.T) {
	svc := newFakeService()
	svc.products = sampleProducts()
	st, clock := newTestStore(t, svc)

	assert.False(t, st.IsFresh(Products), "never-fetched collection is not fresh")

	st.FetchProducts(context.Background(), false)
	assert.True(t, st.IsFresh(Products))

	clock.Advance(DefaultMaxAge + time.Second)
	assert.False(t, st.IsFresh(Products))
}
