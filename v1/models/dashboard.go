package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardStats holds the headline figures of the operations dashboard
type DashboardStats struct {
	TotalShipments  int64           `json:"total_shipments"`
	ActiveShipments int64           `json:"active_shipments"`
	TotalProducts   int64           `json:"total_products"`
	TotalEmployees  int64           `json:"total_employees"`
	TotalWarehouses int64           `json:"total_warehouses"`
	TotalContainers int64           `json:"total_containers"`
	TotalRevenue    decimal.Decimal `json:"total_revenue"`
	GeneratedAt     time.Time       `json:"generated_at"`
}

// WarehouseOccupancy is stored quantity relative to a warehouse's capacity
type WarehouseOccupancy struct {
	Code             string  `json:"code"`
	Name             string  `json:"name"`
	City             string  `json:"city"`
	Capacity         int64   `json:"capacity"`
	StoredQuantity   int64   `json:"stored_quantity"`
	OccupancyPercent float64 `json:"occupancy_percent"`
	NearCapacity     bool    `json:"near_capacity"`
}

// InventoryOverviewItem is a stock line annotated for the overview panel
type InventoryOverviewItem struct {
	InventoryItem
	LowStock    bool    `json:"low_stock"`
	FillPercent float64 `json:"fill_percent"`
}

// PaymentSummary totals payments sharing a status and currency
type PaymentSummary struct {
	PaymentStatus string          `json:"payment_status"`
	Currency      string          `json:"currency"`
	Count         int64           `json:"count"`
	Total         decimal.Decimal `json:"total"`
}
