package dto

import "github.com/shopspring/decimal"

// BusinessSheetDTO respuesta de GET /api/analytics/business-sheet (requiere PIN de analítica).
type BusinessSheetDTO struct {
	TotalAssetValue  decimal.Decimal `json:"total_asset_value"`  // Σ purchase_price × quantity
	ProjectedRevenue decimal.Decimal `json:"projected_revenue"`  // Σ selling_price × quantity
	TotalSales       decimal.Decimal `json:"total_sales"`        // unidades vendidas × precio de venta actual
	AverageMarginPct decimal.Decimal `json:"average_margin_pct"` // promedio de (venta - compra) / venta × 100

	Items []ItemPerformanceDTO `json:"items"`
}

// ItemPerformanceDTO rendimiento de un SKU, ordenado por aporte a la utilidad.
type ItemPerformanceDTO struct {
	ProductID          string          `json:"product_id"`
	SKU                string          `json:"sku"`
	Name               string          `json:"name"`
	Quantity           int64           `json:"quantity"`
	SalesCount         int64           `json:"sales_count"`
	UnitMargin         decimal.Decimal `json:"unit_margin"` // selling - purchase
	MarginPct          decimal.Decimal `json:"margin_pct"`
	ProfitContribution decimal.Decimal `json:"profit_contribution"` // unit_margin × sales_count
}

// TaxSummaryDTO acumulados por tipo de documento (índice de documentos en PostgreSQL).
type TaxSummaryDTO struct {
	DocType  string          `json:"doc_type"`
	Count    int             `json:"count"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}
