package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductValidate(t *testing.T) {
	valid := Product{ID: "p1", Name: "Robe", OriginalPrice: 45, CategoryID: "c1", Status: ProductStatusActive}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name    string
		mutate  func(*Product)
	}{
		{"missing id", func(p *Product) { p.ID = "" }},
		{"missing name", func(p *Product) { p.Name = "" }},
		{"negative price", func(p *Product) { p.OriginalPrice = -1 }},
		{"negative stock", func(p *Product) { p.Stock = -1 }},
		{"unknown status", func(p *Product) { p.Status = "archived" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)
			assert.Error(t, p.Validate())
		})
	}
}

func TestCustomerValidateEmail(t *testing.T) {
	good := "awa@example.com"
	bad := "not-an-email"

	c := Customer{ID: "u1", Name: "Awa", Status: CustomerStatusActive}
	assert.NoError(t, c.Validate(), "email is optional")

	c.Email = &good
	assert.NoError(t, c.Validate())

	c.Email = &bad
	assert.Error(t, c.Validate())
}

func TestOrderPatchApply(t *testing.T) {
	o := Order{ID: "o1", CustomerName: "Awa", TotalAmount: 45, Status: OrderStatusPending}

	shipped := OrderStatusShipped
	OrderPatch{Status: &shipped}.Apply(&o)

	assert.Equal(t, OrderStatusShipped, o.Status)
	assert.Equal(t, "Awa", o.CustomerName)
	assert.Equal(t, 45.0, o.TotalAmount)
}

func TestCategoryPatchApplyClearsNothing(t *testing.T) {
	desc := "Vêtements femme"
	c := Category{ID: "c1", Name: "Femme", Slug: "femme", Description: &desc, IsVisible: true}

	hidden := false
	CategoryPatch{IsVisible: &hidden}.Apply(&c)

	assert.False(t, c.IsVisible)
	require.NotNil(t, c.Description)
	assert.Equal(t, desc, *c.Description)
}

func TestComputeDashboardStats(t *testing.T) {
	orders := []Order{
		{ID: "o1", Status: OrderStatusDelivered, TotalAmount: 100},
		{ID: "o2", Status: OrderStatusPending, TotalAmount: 50},
		{ID: "o3", Status: OrderStatusProcessing, TotalAmount: 30},
		{ID: "o4", Status: OrderStatusShipped, TotalAmount: 20},
		{ID: "o5", Status: OrderStatusCancelled, TotalAmount: 99},
	}
	products := []Product{{ID: "p1"}, {ID: "p2"}}
	customers := []Customer{{ID: "u1"}}

	stats := ComputeDashboardStats(orders, products, customers)

	assert.Equal(t, 5, stats.TotalOrders)
	assert.Equal(t, 2, stats.TotalProducts)
	assert.Equal(t, 1, stats.TotalCustomers)
	assert.Equal(t, 100.0, stats.TotalRevenue)
	assert.Equal(t, 1, stats.PendingOrders)
	assert.Equal(t, 2, stats.ActiveOrders)
	assert.Equal(t, 1, stats.CompletedOrders)
}

func TestComputeDashboardStatsEmpty(t *testing.T) {
	stats := ComputeDashboardStats(nil, nil, nil)
	assert.Zero(t, stats.TotalOrders)
	assert.Zero(t, stats.TotalRevenue)
}
