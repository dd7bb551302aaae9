// Package store implements the storefront's client data cache: four entity
// collections plus a derived dashboard aggregate, refreshed from a backend
// data service within a freshness window, locally mutable through optimistic
// edits, and persisted as a versioned snapshot.
package store

import (
	"sync"
	"time"

	"boutique-datastore/internal/backend"
	"boutique-datastore/internal/model"
	"boutique-datastore/internal/snapshot"

	"github.com/rs/zerolog"
)

// DefaultMaxAge is the freshness window applied when none is configured.
const DefaultMaxAge = 5 * time.Minute

// Collection names one of the cached data sets.
type Collection string

const (
	Products       Collection = "products"
	Categories     Collection = "categories"
	Orders         Collection = "orders"
	Customers      Collection = "customers"
	DashboardStats Collection = "dashboard_stats"
)

// entityCollections are the four backend-sourced collections. DashboardStats
// is derived locally and deliberately excluded.
var entityCollections = []Collection{Products, Categories, Orders, Customers}

// Options tunes a Store. Zero values select the defaults.
type Options struct {
	// MaxAge is the freshness window per collection.
	MaxAge time.Duration

	// Now supplies the clock. time.Now values carry a monotonic reading,
	// which keeps freshness checks immune to wall-clock adjustment.
	Now func() time.Time
}

// Store is the client data cache. All exported methods are safe for
// concurrent use. Collection getters return element copies, so a caller may
// edit or reslice its result freely; nested slices (Images, Tags,
// OrderItems) still share backing arrays with the cache and are read-only.
type Store struct {
	mu        sync.Mutex
	backend   backend.DataService
	snapshots snapshot.Store
	log       zerolog.Logger
	now       func() time.Time
	maxAge    time.Duration

	products   []model.Product
	categories []model.Category
	orders     []model.Order
	customers  []model.Customer
	stats      *model.DashboardStats

	lastUpdated map[Collection]time.Time
	loading     map[Collection]bool
	// dirty counts optimistic edits not yet confirmed by a fetch; a
	// completing fetch silently discards them (last fetch wins).
	dirty map[Collection]int
}

// New creates an empty store backed by the given data service. snapshots may
// be nil, in which case Persist and Restore are no-ops.
func New(svc backend.DataService, snapshots snapshot.Store, logger zerolog.Logger, opts Options) *Store {
	maxAge := opts.MaxAge
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &Store{
		backend:     svc,
		snapshots:   snapshots,
		log:         logger,
		now:         now,
		maxAge:      maxAge,
		products:    []model.Product{},
		categories:  []model.Category{},
		orders:      []model.Order{},
		customers:   []model.Customer{},
		lastUpdated: make(map[Collection]time.Time),
		loading:     make(map[Collection]bool),
		dirty:       make(map[Collection]int),
	}
}

// ProductList returns a copy of the cached product collection.
func (s *Store) ProductList() []model.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Product(nil), s.products...)
}

// CategoryList returns a copy of the cached category collection.
func (s *Store) CategoryList() []model.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Category(nil), s.categories...)
}

// OrderList returns a copy of the cached order collection.
func (s *Store) OrderList() []model.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Order(nil), s.orders...)
}

// CustomerList returns a copy of the cached customer collection.
func (s *Store) CustomerList() []model.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Customer(nil), s.customers...)
}

// Stats returns a copy of the last computed dashboard stats, or nil if they
// have never been computed.
func (s *Store) Stats() *model.DashboardStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stats == nil {
		return nil
	}
	stats := *s.stats
	return &stats
}

// LastUpdated returns when the collection last completed a successful fetch.
// The zero time means never.
func (s *Store) LastUpdated(c Collection) time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUpdated[c]
}

// IsLoading reports whether a fetch for the collection is in flight.
func (s *Store) IsLoading(c Collection) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading[c]
}

// IsFresh reports whether the collection is inside its freshness window.
func (s *Store) IsFresh(c Collection) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.freshLocked(c)
}

func (s *Store) freshLocked(c Collection) bool {
	last, ok := s.lastUpdated[c]
	if !ok {
		return false
	}
	return s.now().Sub(last) < s.maxAge
}
