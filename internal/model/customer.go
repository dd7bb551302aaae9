package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// CustomerStatus describes whether a customer account is active.
type CustomerStatus string

const (
	CustomerStatusActive   CustomerStatus = "active"
	CustomerStatusInactive CustomerStatus = "inactive"
)

// Customer represents a storefront customer. TotalSpent and OrdersCount are
// denormalized aggregates maintained by the backend, not by this cache.
type Customer struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Email       *string        `json:"email,omitempty"`
	Phone       *string        `json:"phone,omitempty"`
	Status      CustomerStatus `json:"status"`
	TotalSpent  *float64       `json:"total_spent,omitempty"`
	OrdersCount *int           `json:"orders_count,omitempty"`
}

// Validate checks the customer fields before it is accepted locally.
func (c Customer) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.ID, validation.Required),
		validation.Field(&c.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&c.Email, is.Email),
		validation.Field(&c.Status, validation.Required, validation.In(
			CustomerStatusActive, CustomerStatusInactive)),
	)
}

// CustomerPatch holds a partial customer update. Nil fields are left untouched.
type CustomerPatch struct {
	Name        *string         `json:"name,omitempty"`
	Email       *string         `json:"email,omitempty"`
	Phone       *string         `json:"phone,omitempty"`
	Status      *CustomerStatus `json:"status,omitempty"`
	TotalSpent  *float64        `json:"total_spent,omitempty"`
	OrdersCount *int            `json:"orders_count,omitempty"`
}

// Apply merges the non-nil patch fields into the customer.
func (cp CustomerPatch) Apply(c *Customer) {
	if cp.Name != nil {
		c.Name = *cp.Name
	}
	if cp.Email != nil {
		c.Email = cp.Email
	}
	if cp.Phone != nil {
		c.Phone = cp.Phone
	}
	if cp.Status != nil {
		c.Status = *cp.Status
	}
	if cp.TotalSpent != nil {
		c.TotalSpent = cp.TotalSpent
	}
	if cp.OrdersCount != nil {
		c.OrdersCount = cp.OrdersCount
	}
}
