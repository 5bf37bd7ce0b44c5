package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Unidades de medida aceptadas.
const (
	UOMPieces = "pcs"
	UOMKg     = "kg"
	UOMMeter  = "meter"
	UOMBox    = "box"
	UOMLiters = "liters"
	UOMUnits  = "units"
	UOMNos    = "NOS"
)

// ValidUOM indica si la unidad de medida es una de las soportadas.
func ValidUOM(u string) bool {
	switch u {
	case UOMPieces, UOMKg, UOMMeter, UOMBox, UOMLiters, UOMUnits, UOMNos:
		return true
	}
	return false
}

// Product representa un SKU del catálogo.
// Quantity puede quedar negativa: el motor de conciliación no la limita.
type Product struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	SKU           string          `json:"sku"`
	HSNCode       string          `json:"hsnCode"`
	Brand         string          `json:"brand"`
	Category      string          `json:"category"`
	UOM           string          `json:"uom"`
	Quantity      int64           `json:"quantity"`
	MinStock      int64           `json:"minStock"`
	MaxStock      int64           `json:"maxStock"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"` // último precio de compra
	SellingPrice  decimal.Decimal `json:"sellingPrice"`
	WarehouseID   string          `json:"warehouseId"`
	Description   string          `json:"description"`
	ImageURL      string          `json:"imageUrl,omitempty"`
	LastUpdated   time.Time       `json:"lastUpdated"`
}

// IsLowStock es verdadero cuando la cantidad está en o por debajo del mínimo.
func (p *Product) IsLowStock() bool {
	return p.Quantity <= p.MinStock
}

// ProductPatch actualización parcial: solo los campos no nil se aplican.
type ProductPatch struct {
	Name          *string
	SKU           *string
	HSNCode       *string
	Brand         *string
	Category      *string
	UOM           *string
	Quantity      *int64
	MinStock      *int64
	MaxStock      *int64
	PurchasePrice *decimal.Decimal
	SellingPrice  *decimal.Decimal
	WarehouseID   *string
	Description   *string
	ImageURL      *string
}

// Apply fusiona el patch sobre el producto y refresca LastUpdated.
func (pp ProductPatch) Apply(p *Product, now time.Time) {
	if pp.Name != nil {
		p.Name = *pp.Name
	}
	if pp.SKU != nil {
		p.SKU = *pp.SKU
	}
	if pp.HSNCode != nil {
		p.HSNCode = *pp.HSNCode
	}
	if pp.Brand != nil {
		p.Brand = *pp.Brand
	}
	if pp.Category != nil {
		p.Category = *pp.Category
	}
	if pp.UOM != nil {
		p.UOM = *pp.UOM
	}
	if pp.Quantity != nil {
		p.Quantity = *pp.Quantity
	}
	if pp.MinStock != nil {
		p.MinStock = *pp.MinStock
	}
	if pp.MaxStock != nil {
		p.MaxStock = *pp.MaxStock
	}
	if pp.PurchasePrice != nil {
		p.PurchasePrice = *pp.PurchasePrice
	}
	if pp.SellingPrice != nil {
		p.SellingPrice = *pp.SellingPrice
	}
	if pp.WarehouseID != nil {
		p.WarehouseID = *pp.WarehouseID
	}
	if pp.Description != nil {
		p.Description = *pp.Description
	}
	if pp.ImageURL != nil {
		p.ImageURL = *pp.ImageURL
	}
	p.LastUpdated = now
}
