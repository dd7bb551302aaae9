package store

import (
	"boutique-datastore/internal/model"
	"boutique-datastore/pkg/uid"
)

// Optimistic mutators. These touch local state only: no network call, no
// freshness stamp. A later-completing fetch replaces the whole collection,
// so unconfirmed edits are discarded if the server disagrees.

// AddProduct prepends a product to the collection. Invalid products are
// rejected and the collection is left unchanged.
func (s *Store) AddProduct(p model.Product) error {
	if p.ID == "" {
		p.ID = uid.New()
	}
	if err := p.Validate(); err != nil {
		s.log.Warn().Err(err).Str("product_id", p.ID).Msg("rejected invalid product")
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = append([]model.Product{p}, s.products...)
	s.dirty[Products]++
	return nil
}

// UpdateProduct merges the patch into the product with the given id. Unknown
// ids are ignored.
func (s *Store) UpdateProduct(id string, patch model.ProductPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].ID == id {
			patch.Apply(&s.products[i])
			s.dirty[Products]++
			return
		}
	}
}

// RemoveProduct drops the product with the given id, if present.
func (s *Store) RemoveProduct(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			s.dirty[Products]++
			return
		}
	}
}

// AddCategory prepends a category to the collection. Invalid categories are
// rejected and the collection is left unchanged.
func (s *Store) AddCategory(c model.Category) error {
	if c.ID == "" {
		c.ID = uid.New()
	}
	if err := c.Validate(); err != nil {
		s.log.Warn().Err(err).Str("category_id", c.ID).Msg("rejected invalid category")
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories = append([]model.Category{c}, s.categories...)
	s.dirty[Categories]++
	return nil
}

// UpdateCategory merges the patch into the category with the given id.
// Unknown ids are ignored.
func (s *Store) UpdateCategory(id string, patch model.CategoryPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.categories {
		if s.categories[i].ID == id {
			patch.Apply(&s.categories[i])
			s.dirty[Categories]++
			return
		}
	}
}

// RemoveCategory drops the category with the given id, if present.
func (s *Store) RemoveCategory(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.categories {
		if s.categories[i].ID == id {
			s.categories = append(s.categories[:i], s.categories[i+1:]...)
			s.dirty[Categories]++
			return
		}
	}
}

// AddOrder prepends an order to the collection, stamping id, order number
// and creation time when absent, as the storefront does at submission.
// Invalid orders are rejected and the collection is left unchanged.
func (s *Store) AddOrder(o model.Order) error {
	if o.ID == "" {
		o.ID = uid.New()
	}
	if o.OrderNumber == nil {
		n := uid.OrderNumber()
		o.OrderNumber = &n
	}
	if o.CreatedAt == nil {
		t := s.now()
		o.CreatedAt = &t
	}
	if err := o.Validate(); err != nil {
		s.log.Warn().Err(err).Str("order_id", o.ID).Msg("rejected invalid order")
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = append([]model.Order{o}, s.orders...)
	s.dirty[Orders]++
	return nil
}

// UpdateOrder merges the patch into the order with the given id. Unknown ids
// are ignored.
func (s *Store) UpdateOrder(id string, patch model.OrderPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.orders {
		if s.orders[i].ID == id {
			patch.Apply(&s.orders[i])
			s.dirty[Orders]++
			return
		}
	}
}

// RemoveOrder drops the order with the given id, if present.
func (s *Store) RemoveOrder(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.orders {
		if s.orders[i].ID == id {
			s.orders = append(s.orders[:i], s.orders[i+1:]...)
			s.dirty[Orders]++
			return
		}
	}
}

// AddCustomer prepends a customer to the collection. Invalid customers are
// rejected and the collection is left unchanged.
func (s *Store) AddCustomer(c model.Customer) error {
	if c.ID == "" {
		c.ID = uid.New()
	}
	if err := c.Validate(); err != nil {
		s.log.Warn().Err(err).Str("customer_id", c.ID).Msg("rejected invalid customer")
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers = append([]model.Customer{c}, s.customers...)
	s.dirty[Customers]++
	return nil
}

// UpdateCustomer merges the patch into the customer with the given id.
// Unknown ids are ignored.
func (s *Store) UpdateCustomer(id string, patch model.CustomerPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.customers {
		if s.customers[i].ID == id {
			patch.Apply(&s.customers[i])
			s.dirty[Customers]++
			return
		}
	}
}

// RemoveCustomer drops the customer with the given id, if present.
func (s *Store) RemoveCustomer(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.customers {
		if s.customers[i].ID == id {
			s.customers = append(s.customers[:i], s.customers[i+1:]...)
			s.dirty[Customers]++
			return
		}
	}
}
