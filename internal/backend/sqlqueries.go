package backend

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"boutique-datastore/internal/model"

	"github.com/rs/zerolog"
)

// sqlService holds the query logic shared by the SQLite and MySQL data
// services. Both engines accept ? placeholders and the same schema.
type sqlService struct {
	db   *sql.DB
	memo *memo
	log  zerolog.Logger
}

// GetProducts returns the full product collection.
func (s *sqlService) GetProducts(ctx context.Context, useCache bool) ([]model.Product, error) {
	if useCache {
		if v, ok := getSlice[model.Product](s.memo, memoKeyProducts); ok {
			return v, nil
		}
	}

	query := `SELECT id, name, images, original_price, discounted_price, category_id,
		stock, status, is_visible, tags FROM products`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		var (
			p               model.Product
			images, tags    string
			discountedPrice sql.NullFloat64
			isVisible       int
		)
		if err := rows.Scan(&p.ID, &p.Name, &images, &p.OriginalPrice, &discountedPrice,
			&p.CategoryID, &p.Stock, &p.Status, &isVisible, &tags); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		if err := json.Unmarshal([]byte(images), &p.Images); err != nil {
			return nil, fmt.Errorf("failed to decode images for product %s: %w", p.ID, err)
		}
		if err := json.Unmarshal([]byte(tags), &p.Tags); err != nil {
			return nil, fmt.Errorf("failed to decode tags for product %s: %w", p.ID, err)
		}
		if discountedPrice.Valid {
			p.DiscountedPrice = &discountedPrice.Float64
		}
		p.IsVisible = isVisible != 0
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read products: %w", err)
	}

	setSlice(s.memo, memoKeyProducts, products)
	return products, nil
}

// GetCategories returns the full category collection.
func (s *sqlService) GetCategories(ctx context.Context, useCache bool) ([]model.Category, error) {
	if useCache {
		if v, ok := getSlice[model.Category](s.memo, memoKeyCategories); ok {
			return v, nil
		}
	}

	query := `SELECT id, name, slug, description, image, is_visible, parent_id FROM categories`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	categories := []model.Category{}
	for rows.Next() {
		var (
			c                          model.Category
			description, image, parent sql.NullString
			isVisible                  int
		)
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &description, &image, &isVisible, &parent); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		if description.Valid {
			c.Description = &description.String
		}
		if image.Valid {
			c.Image = &image.String
		}
		if parent.Valid {
			c.ParentID = &parent.String
		}
		c.IsVisible = isVisible != 0
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read categories: %w", err)
	}

	setSlice(s.memo, memoKeyCategories, categories)
	return categories, nil
}

// GetOrders returns the full order collection with line items attached.
func (s *sqlService) GetOrders(ctx context.Context, useCache bool) ([]model.Order, error) {
	if useCache {
		if v, ok := getSlice[model.Order](s.memo, memoKeyOrders); ok {
			return v, nil
		}
	}

	query := `SELECT id, order_number, customer_name, total_amount, status, created_at
		FROM orders ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	orders := []model.Order{}
	index := map[string]int{}
	for rows.Next() {
		var (
			o           model.Order
			orderNumber sql.NullString
			createdAt   sql.NullTime
		)
		if err := rows.Scan(&o.ID, &orderNumber, &o.CustomerName, &o.TotalAmount, &o.Status, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		if orderNumber.Valid {
			o.OrderNumber = &orderNumber.String
		}
		if createdAt.Valid {
			o.CreatedAt = &createdAt.Time
		}
		o.OrderItems = []model.OrderItem{}
		index[o.ID] = len(orders)
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read orders: %w", err)
	}

	if err := s.attachOrderItems(ctx, orders, index); err != nil {
		return nil, err
	}

	setSlice(s.memo, memoKeyOrders, orders)
	return orders, nil
}

// attachOrderItems loads all line items and assigns them to their orders.
func (s *sqlService) attachOrderItems(ctx context.Context, orders []model.Order, index map[string]int) error {
	if len(orders) == 0 {
		return nil
	}

	query := `SELECT order_id, product_id, name, quantity, price FROM order_items`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			orderID string
			item    model.OrderItem
		)
		if err := rows.Scan(&orderID, &item.ProductID, &item.Name, &item.Quantity, &item.Price); err != nil {
			return fmt.Errorf("failed to scan order item: %w", err)
		}
		if i, ok := index[orderID]; ok {
			orders[i].OrderItems = append(orders[i].OrderItems, item)
		}
	}
	return rows.Err()
}

// GetCustomers returns the full customer collection.
func (s *sqlService) GetCustomers(ctx context.Context, useCache bool) ([]model.Customer, error) {
	if useCache {
		if v, ok := getSlice[model.Customer](s.memo, memoKeyCustomers); ok {
			return v, nil
		}
	}

	query := `SELECT id, name, email, phone, status, total_spent, orders_count FROM customers`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query customers: %w", err)
	}
	defer rows.Close()

	customers := []model.Customer{}
	for rows.Next() {
		var (
			c            model.Customer
			email, phone sql.NullString
			totalSpent   sql.NullFloat64
			ordersCount  sql.NullInt64
		)
		if err := rows.Scan(&c.ID, &c.Name, &email, &phone, &c.Status, &totalSpent, &ordersCount); err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		if email.Valid {
			c.Email = &email.String
		}
		if phone.Valid {
			c.Phone = &phone.String
		}
		if totalSpent.Valid {
			c.TotalSpent = &totalSpent.Float64
		}
		if ordersCount.Valid {
			n := int(ordersCount.Int64)
			c.OrdersCount = &n
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read customers: %w", err)
	}

	setSlice(s.memo, memoKeyCustomers, customers)
	return customers, nil
}

// PreloadAll warms the read memo by loading every collection from the origin.
func (s *sqlService) PreloadAll(ctx context.Context) error {
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

// Close closes the database connection.
func (s *sqlService) Close() error {
	s.memo.clear()
	return s.db.Close()
}
