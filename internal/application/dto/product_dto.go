package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para registrar un producto en el catálogo.
type CreateProductRequest struct {
	Name          string          `json:"name" validate:"required,min=1,max=200"`
	SKU           string          `json:"sku" validate:"required,min=1,max=100"`
	HSNCode       string          `json:"hsn_code" validate:"max=16"`
	Brand         string          `json:"brand" validate:"max=100"`
	Category      string          `json:"category" validate:"max=100"`
	UOM           string          `json:"uom" validate:"omitempty,oneof=pcs kg meter box liters units NOS"`
	Quantity      int64           `json:"quantity"`
	MinStock      int64           `json:"min_stock" validate:"gte=0"`
	MaxStock      int64           `json:"max_stock" validate:"gte=0"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SellingPrice  decimal.Decimal `json:"selling_price"`
	WarehouseID   string          `json:"warehouse_id"`
	Description   string          `json:"description" validate:"max=2000"`
	ImageURL      string          `json:"image_url" validate:"omitempty,url"`
}

// UpdateProductRequest actualización parcial: solo se aplican los campos presentes.
type UpdateProductRequest struct {
	Name          *string          `json:"name" validate:"omitempty,min=1,max=200"`
	SKU           *string          `json:"sku" validate:"omitempty,min=1,max=100"`
	HSNCode       *string          `json:"hsn_code" validate:"omitempty,max=16"`
	Brand         *string          `json:"brand" validate:"omitempty,max=100"`
	Category      *string          `json:"category" validate:"omitempty,max=100"`
	UOM           *string          `json:"uom" validate:"omitempty,oneof=pcs kg meter box liters units NOS"`
	Quantity      *int64           `json:"quantity"`
	MinStock      *int64           `json:"min_stock" validate:"omitempty,gte=0"`
	MaxStock      *int64           `json:"max_stock" validate:"omitempty,gte=0"`
	PurchasePrice *decimal.Decimal `json:"purchase_price"`
	SellingPrice  *decimal.Decimal `json:"selling_price"`
	WarehouseID   *string          `json:"warehouse_id"`
	Description   *string          `json:"description" validate:"omitempty,max=2000"`
	ImageURL      *string          `json:"image_url" validate:"omitempty,url"`
}

// QuickRestockRequest suma una cantidad fija al stock (reposición rápida).
type QuickRestockRequest struct {
	Quantity int64 `json:"quantity" validate:"required,gt=0"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	SKU           string          `json:"sku"`
	HSNCode       string          `json:"hsn_code"`
	Brand         string          `json:"brand"`
	Category      string          `json:"category"`
	UOM           string          `json:"uom"`
	Quantity      int64           `json:"quantity"`
	MinStock      int64           `json:"min_stock"`
	MaxStock      int64           `json:"max_stock"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SellingPrice  decimal.Decimal `json:"selling_price"`
	WarehouseID   string          `json:"warehouse_id"`
	WarehouseName string          `json:"warehouse_name"`
	Description   string          `json:"description"`
	ImageURL      string          `json:"image_url,omitempty"`
	LowStock      bool            `json:"low_stock"`
	LastUpdated   time.Time       `json:"last_updated"`
}

// ImportResult resumen de una importación CSV.
type ImportResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}
