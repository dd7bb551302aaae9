package backend

import (
	"context"

	"boutique-datastore/internal/model"
)

// DataService is the backend data service the client cache consumes. The
// surrounding application wires it to the hosted database platform; in this
// module it is implemented by SQLite, MySQL and REST variants.
//
// useCache allows the service to answer from its own short-lived read memo;
// passing false always goes back to the origin.
type DataService interface {
	// GetProducts returns the full product collection.
	GetProducts(ctx context.Context, useCache bool) ([]model.Product, error)

	// GetCategories returns the full category collection.
	GetCategories(ctx context.Context, useCache bool) ([]model.Category, error)

	// GetOrders returns the full order collection, items included.
	GetOrders(ctx context.Context, useCache bool) ([]model.Order, error)

	// GetCustomers returns the full customer collection.
	GetCustomers(ctx context.Context, useCache bool) ([]model.Customer, error)

	// PreloadAll warms the service's internal read memo. Callers await it
	// but do not consume its result.
	PreloadAll(ctx context.Context) error

	// Close releases the underlying connection.
	Close() error
}

// ServiceError is a backend-level error condition.
type ServiceError string

func (e ServiceError) Error() string { return string(e) }

const (
	// ErrUnavailable indicates the origin could not be reached.
	ErrUnavailable ServiceError = "backend unavailable"
)
