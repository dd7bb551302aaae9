package model

// DashboardStats is the derived aggregate shown on the admin dashboard.
// It is always computed from the in-memory collections, never fetched, so
// it can lag the backend by as much as the collections themselves.
type DashboardStats struct {
	TotalOrders     int     `json:"totalOrders"`
	TotalProducts   int     `json:"totalProducts"`
	TotalCustomers  int     `json:"totalCustomers"`
	TotalRevenue    float64 `json:"totalRevenue"`
	PendingOrders   int     `json:"pendingOrders"`
	ActiveOrders    int     `json:"activeOrders"`
	CompletedOrders int     `json:"completedOrders"`
}

// ComputeDashboardStats derives dashboard aggregates from the given
// collections. Revenue counts delivered orders only; active covers orders
// being processed or shipped.
func ComputeDashboardStats(orders []Order, products []Product, customers []Customer) DashboardStats {
	stats := DashboardStats{
		TotalOrders:    len(orders),
		TotalProducts:  len(products),
		TotalCustomers: len(customers),
	}

	for _, o := range orders {
		switch o.Status {
		case OrderStatusPending:
			stats.PendingOrders++
		case OrderStatusProcessing, OrderStatusShipped:
			stats.ActiveOrders++
		case OrderStatusDelivered:
			stats.CompletedOrders++
			stats.TotalRevenue += o.TotalAmount
		}
	}

	return stats
}
