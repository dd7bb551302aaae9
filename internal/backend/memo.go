package backend

import (
	"sync"
	"time"
)

// DefaultMemoTTL bounds how long a read memo entry may answer for the origin.
const DefaultMemoTTL = 30 * time.Second

// memoEntry is a memoized read result with expiration.
type memoEntry struct {
	value     any
	expiresAt time.Time
}

func (e *memoEntry) isExpired() bool {
	return time.Now().After(e.expiresAt)
}

// memo is the short-TTL read memo shared by the backend implementations.
// It backs the useCache flag of the DataService contract.
type memo struct {
	mu      sync.RWMutex
	entries map[string]*memoEntry
	ttl     time.Duration
}

func newMemo(ttl time.Duration) *memo {
	if ttl <= 0 {
		ttl = DefaultMemoTTL
	}
	return &memo{
		entries: make(map[string]*memoEntry),
		ttl:     ttl,
	}
}

// get returns the memoized value for key if present and unexpired.
func (m *memo) get(key string) (any, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, exists := m.entries[key]
	if !exists || entry.isExpired() {
		return nil, false
	}
	return entry.value, true
}

// set memoizes a value under key for the configured TTL.
func (m *memo) set(key string, value any) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key] = &memoEntry{
		value:     value,
		expiresAt: time.Now().Add(m.ttl),
	}
}

// clear drops all memoized values.
func (m *memo) clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = make(map[string]*memoEntry)
}

// getSlice returns a copy of the memoized slice under key, if present and
// unexpired. Entries are copied on both set and get, so a memoized answer
// never shares a backing array with a caller; edits a caller makes to its
// result cannot become future memo answers.
func getSlice[T any](m *memo, key string) ([]T, bool) {
	v, ok := m.get(key)
	if !ok {
		return nil, false
	}
	items, ok := v.([]T)
	if !ok {
		return nil, false
	}
	return append([]T(nil), items...), true
}

// setSlice memoizes a copy of items under key.
func setSlice[T any](m *memo, key string, items []T) {
	m.set(key, append([]T(nil), items...))
}

// Memo keys, one per entity collection.
const (
	memoKeyProducts   = "products"
	memoKeyCategories = "categories"
	memoKeyOrders     = "orders"
	memoKeyCustomers  = "customers"
)
