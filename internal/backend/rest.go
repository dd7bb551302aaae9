package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"boutique-datastore/internal/model"

	"github.com/rs/zerolog"
)

// RESTConfig holds connection settings for the hosted platform's REST API.
type RESTConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	MemoTTL time.Duration
}

// RESTService implements DataService against the hosted database platform's
// REST API. Collections are exposed as list endpoints under /rest/v1.
type RESTService struct {
	client *http.Client
	cfg    RESTConfig
	memo   *memo
	log    zerolog.Logger
}

// APIError is an error payload returned by the hosted platform.
type APIError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend error %d code: %s, description: %s", e.StatusCode, e.Code, e.Message)
}

// NewRESTService creates a REST data service.
func NewRESTService(cfg RESTConfig, logger zerolog.Logger) *RESTService {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &RESTService{
		client: &http.Client{Timeout: timeout},
		cfg:    cfg,
		memo:   newMemo(cfg.MemoTTL),
		log:    logger,
	}
}

// GetProducts returns the full product collection.
func (s *RESTService) GetProducts(ctx context.Context, useCache bool) ([]model.Product, error) {
	if useCache {
		if v, ok := getSlice[model.Product](s.memo, memoKeyProducts); ok {
			return v, nil
		}
	}

	var products []model.Product
	if err := s.list(ctx, "products", &products); err != nil {
		return nil, err
	}

	setSlice(s.memo, memoKeyProducts, products)
	return products, nil
}

// GetCategories returns the full category collection.
func (s *RESTService) GetCategories(ctx context.Context, useCache bool) ([]model.Category, error) {
	if useCache {
		if v, ok := getSlice[model.Category](s.memo, memoKeyCategories); ok {
			return v, nil
		}
	}

	var categories []model.Category
	if err := s.list(ctx, "categories", &categories); err != nil {
		return nil, err
	}

	setSlice(s.memo, memoKeyCategories, categories)
	return categories, nil
}

// GetOrders returns the full order collection. The platform embeds line
// items in the order rows.
func (s *RESTService) GetOrders(ctx context.Context, useCache bool) ([]model.Order, error) {
	if useCache {
		if v, ok := getSlice[model.Order](s.memo, memoKeyOrders); ok {
			return v, nil
		}
	}

	var orders []model.Order
	if err := s.list(ctx, "orders?select=*,order_items(*)", &orders); err != nil {
		return nil, err
	}

	setSlice(s.memo, memoKeyOrders, orders)
	return orders, nil
}

// GetCustomers returns the full customer collection.
func (s *RESTService) GetCustomers(ctx context.Context, useCache bool) ([]model.Customer, error) {
	if useCache {
		if v, ok := getSlice[model.Customer](s.memo, memoKeyCustomers); ok {
			return v, nil
		}
	}

	var customers []model.Customer
	if err := s.list(ctx, "customers", &customers); err != nil {
		return nil, err
	}

	setSlice(s.memo, memoKeyCustomers, customers)
	return customers, nil
}

// PreloadAll warms the read memo by loading every collection from the origin.
func (s *RESTService) PreloadAll(ctx context.Context) error {
	if _, err := s.GetProducts(ctx, false); err != nil {
		return fmt.Errorf("failed to preload products: %w", err)
	}
	if _, err := s.GetCategories(ctx, false); err != nil {
		return fmt.Errorf("failed to preload categories: %w", err)
	}
	if _, err := s.GetOrders(ctx, false); err != nil {
		return fmt.Errorf("failed to preload orders: %w", err)
	}
	if _, err := s.GetCustomers(ctx, false); err != nil {
		return fmt.Errorf("failed to preload customers: %w", err)
	}
	return nil
}

// Close drops the read memo. The underlying http.Client needs no teardown.
func (s *RESTService) Close() error {
	s.memo.clear()
	return nil
}

// list performs a GET against a collection endpoint and decodes the result.
func (s *RESTService) list(ctx context.Context, resource string, out any) error {
	url := fmt.Sprintf("%s/rest/v1/%s", s.cfg.BaseURL, resource)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request for %s: %w", resource, err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("apikey", s.cfg.APIKey)
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)

	res, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrUnavailable, resource, err)
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			s.log.Warn().Err(err).Str("resource", resource).Msg("failed to close response body")
		}
	}()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("failed to read response for %s: %w", resource, err)
	}

	if res.StatusCode != http.StatusOK {
		var apiErr APIError
		if err := json.Unmarshal(body, &apiErr); err != nil {
			return fmt.Errorf("unexpected status %d for %s: %s", res.StatusCode, resource, string(body))
		}
		apiErr.StatusCode = res.StatusCode
		return &apiErr
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response for %s: %w", resource, err)
	}
	return nil
}
