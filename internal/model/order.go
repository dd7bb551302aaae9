package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// OrderStatus describes the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// OrderItem is a single line of an order.
type OrderItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// Order represents a customer order. OrderNumber and CreatedAt are stamped
// by the storefront at submission time and may be absent on drafts.
type Order struct {
	ID           string      `json:"id"`
	OrderNumber  *string     `json:"order_number,omitempty"`
	CustomerName string      `json:"customer_name"`
	TotalAmount  float64     `json:"total_amount"`
	Status       OrderStatus `json:"status"`
	CreatedAt    *time.Time  `json:"created_at,omitempty"`
	OrderItems   []OrderItem `json:"order_items"`
}

// Validate checks the order fields before it is accepted locally.
// Line subtotals are deliberately not reconciled against TotalAmount.
func (o Order) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.ID, validation.Required),
		validation.Field(&o.CustomerName, validation.Required, validation.Length(1, 255)),
		validation.Field(&o.TotalAmount, validation.Min(0.0)),
		validation.Field(&o.Status, validation.Required, validation.In(
			OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing,
			OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled)),
	)
}

// OrderPatch holds a partial order update. Nil fields are left untouched.
type OrderPatch struct {
	OrderNumber  *string      `json:"order_number,omitempty"`
	CustomerName *string      `json:"customer_name,omitempty"`
	TotalAmount  *float64     `json:"total_amount,omitempty"`
	Status       *OrderStatus `json:"status,omitempty"`
	OrderItems   *[]OrderItem `json:"order_items,omitempty"`
}

// Apply merges the non-nil patch fields into the order.
func (op OrderPatch) Apply(o *Order) {
	if op.OrderNumber != nil {
		o.OrderNumber = op.OrderNumber
	}
	if op.CustomerName != nil {
		o.CustomerName = *op.CustomerName
	}
	if op.TotalAmount != nil {
		o.TotalAmount = *op.TotalAmount
	}
	if op.Status != nil {
		o.Status = *op.Status
	}
	if op.OrderItems != nil {
		o.OrderItems = *op.OrderItems
	}
}
