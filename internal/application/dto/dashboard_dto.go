package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	TotalUnits       int64           `json:"total_units"`
	LowStockCount    int             `json:"low_stock_count"` // quantity <= min_stock
	InventoryValue   decimal.Decimal `json:"inventory_value"` // Σ purchase_price × quantity
	PotentialRevenue decimal.Decimal `json:"potential_revenue"`
	SKUCount         int             `json:"sku_count"`
	DocumentCount    int             `json:"document_count"`

	Categories []CategoryCountDTO  `json:"categories"`
	Warehouses []WarehouseUnitsDTO `json:"warehouses"`

	RecentMovements []MovementResponse `json:"recent_movements"`
}

// CategoryCountDTO número de SKUs por categoría.
type CategoryCountDTO struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// WarehouseUnitsDTO unidades almacenadas por bodega.
type WarehouseUnitsDTO struct {
	WarehouseID string `json:"warehouse_id"`
	Name        string `json:"name"`
	Units       int64  `json:"units"`
}
