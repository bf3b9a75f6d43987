package dashboard

import (
	"github.com/quickjuice/backend/internal/service/models/juice"
	"github.com/quickjuice/backend/internal/service/models/order"
)

// Stats holds the aggregate counters shown on the admin dashboard.
type Stats struct {
	TotalOrders       int64 `json:"totalOrders"`
	TotalRevenueCents int64 `json:"totalRevenueCents"`
	TotalJuices       int64 `json:"totalJuices"`
	LowStockCount     int   `json:"lowStockCount"`
}

// Dashboard is the admin dashboard payload.
type Dashboard struct {
	Stats          Stats         `json:"stats"`
	RecentOrders   []order.Order `json:"recentOrders"`
	LowStockJuices []juice.Juice `json:"lowStockJuices"`
}
