package dto

import "time"

// RegisterMovementRequest body para POST /api/inventory/movements (movimiento manual).
type RegisterMovementRequest struct {
	ProductID   string `json:"product_id" validate:"required"`
	Type        string `json:"type" validate:"required,oneof=PURCHASE SALE ADJUSTMENT TRANSFER"`
	Quantity    int64  `json:"quantity" validate:"required,gt=0"`
	Reason      string `json:"reason" validate:"required,max=500"`
	WarehouseID string `json:"warehouse_id"`
	// Decrease solo aplica a ADJUSTMENT: true = ajuste negativo.
	Decrease bool `json:"decrease"`
}

// MovementResponse salida de un movimiento del libro.
type MovementResponse struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	Type        string    `json:"type"`
	Quantity    int64     `json:"quantity"`
	Reason      string    `json:"reason"`
	DocRef      string    `json:"doc_ref,omitempty"`
	WarehouseID string    `json:"warehouse_id"`
	Timestamp   time.Time `json:"timestamp"`
}

// ReorderSuggestionDTO sugerencia de reposición para un SKU en o bajo su mínimo.
type ReorderSuggestionDTO struct {
	ProductID         string `json:"product_id"`
	SKU               string `json:"sku"`
	ProductName       string `json:"product_name"`
	CurrentStock      int64  `json:"current_stock"`
	MinStock          int64  `json:"min_stock"`
	MaxStock          int64  `json:"max_stock"`
	SuggestedOrderQty int64  `json:"suggested_order_qty"` // MaxStock - CurrentStock
	EstimatedCost     string `json:"estimated_cost"`
	Priority          int    `json:"priority"` // 1 = más urgente
}
