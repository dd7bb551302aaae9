package store

import (
	"context"
	"sync"

	"boutique-datastore/internal/model"
)

// begin atomically applies the fetch guards for a collection: skip when a
// fetch is already in flight, or when the collection is populated and still
// fresh and the caller did not force. Returns true with the loading flag set
// when the fetch should proceed.
func (s *Store) begin(c Collection, force bool, populated func() bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loading[c] {
		return false
	}
	if !force && populated() && s.freshLocked(c) {
		return false
	}
	s.loading[c] = true
	return true
}

// finish clears the loading flag and, on success, replaces the collection
// and stamps its freshness timestamp. On failure the previous collection and
// timestamp are kept so the next call retries instead of trusting stale data.
// Errors are swallowed here; the diagnostic log is the only signal.
func (s *Store) finish(c Collection, err error, replace func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loading[c] = false
	if err != nil {
		s.log.Error().Err(err).Str("collection", string(c)).Msg("fetch failed, keeping cached data")
		return
	}

	if n := s.dirty[c]; n > 0 {
		s.log.Debug().Int("edits", n).Str("collection", string(c)).Msg("fetch overwrote unconfirmed local edits")
		s.dirty[c] = 0
	}
	replace()
	s.lastUpdated[c] = s.now()
}

// FetchProducts refreshes the product collection unless it is fresh,
// populated and unforced, or a product fetch is already in flight.
func (s *Store) FetchProducts(ctx context.Context, force bool) {
	if !s.begin(Products, force, func() bool { return len(s.products) > 0 }) {
		return
	}
	items, err := s.backend.GetProducts(ctx, !force)
	s.finish(Products, err, func() {
		if items == nil {
			items = []model.Product{}
		}
		s.products = items
	})
}

// FetchCategories refreshes the category collection. Guards as FetchProducts.
func (s *Store) FetchCategories(ctx context.Context, force bool) {
	if !s.begin(Categories, force, func() bool { return len(s.categories) > 0 }) {
		return
	}
	items, err := s.backend.GetCategories(ctx, !force)
	s.finish(Categories, err, func() {
		if items == nil {
			items = []model.Category{}
		}
		s.categories = items
	})
}

// FetchOrders refreshes the order collection. Guards as FetchProducts.
func (s *Store) FetchOrders(ctx context.Context, force bool) {
	if !s.begin(Orders, force, func() bool { return len(s.orders) > 0 }) {
		return
	}
	items, err := s.backend.GetOrders(ctx, !force)
	s.finish(Orders, err, func() {
		if items == nil {
			items = []model.Order{}
		}
		s.orders = items
	})
}

// FetchCustomers refreshes the customer collection. Guards as FetchProducts.
func (s *Store) FetchCustomers(ctx context.Context, force bool) {
	if !s.begin(Customers, force, func() bool { return len(s.customers) > 0 }) {
		return
	}
	items, err := s.backend.GetCustomers(ctx, !force)
	s.finish(Customers, err, func() {
		if items == nil {
			items = []model.Customer{}
		}
		s.customers = items
	})
}

// FetchDashboardStats recomputes the dashboard aggregate from whatever the
// orders, products and customers collections currently hold. It never fetches
// those collections itself, so the result is exactly as stale as they are.
func (s *Store) FetchDashboardStats(ctx context.Context, force bool) {
	if !s.begin(DashboardStats, force, func() bool { return s.stats != nil }) {
		return
	}
	s.finish(DashboardStats, nil, func() {
		stats := model.ComputeDashboardStats(s.orders, s.products, s.customers)
		s.stats = &stats
	})
}

// PreloadAll warms the whole cache: a no-op when any entity fetch is in
// flight, otherwise it awaits the backend's own warm-up and then forces all
// five fetches concurrently. Individual failures are logged and tolerated.
func (s *Store) PreloadAll(ctx context.Context) {
	s.mu.Lock()
	for _, c := range entityCollections {
		if s.loading[c] {
			s.mu.Unlock()
			s.log.Debug().Str("collection", string(c)).Msg("preload skipped, fetch in flight")
			return
		}
	}
	s.mu.Unlock()

	if err := s.backend.PreloadAll(ctx); err != nil {
		s.log.Warn().Err(err).Msg("backend warm-up failed")
	}
	s.Refresh(ctx, true)
}

// Refresh triggers all five fetches concurrently with the given force flag
// and waits for them. Unlike PreloadAll it carries no in-flight guard and may
// overlap with itself; the per-collection guards keep duplicate work out.
// Completion order across collections is undefined.
func (s *Store) Refresh(ctx context.Context, force bool) {
	var wg sync.WaitGroup
	for _, fetch := range []func(context.Context, bool){
		s.FetchProducts,
		s.FetchCategories,
		s.FetchOrders,
		s.FetchCustomers,
		s.FetchDashboardStats,
	} {
		wg.Add(1)
		go func(fn func(context.Context, bool)) {
			defer wg.Done()
			fn(ctx, force)
		}(fetch)
	}
	wg.Wait()
}
