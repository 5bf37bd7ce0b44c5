package entity

import "time"

// Tipos de movimiento manual. Los movimientos generados por documentos usan el
// DocumentType como tipo (ej. "SALES_BILL").
const (
	MovementTypePurchase   = "PURCHASE"
	MovementTypeSale       = "SALE"
	MovementTypeAdjustment = "ADJUSTMENT"
	MovementTypeTransfer   = "TRANSFER"
)

// StockMovement entrada inmutable del libro de movimientos.
// Quantity se guarda sin signo; el signo lo determina Type.
type StockMovement struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"productId"`
	ProductName string    `json:"productName"`
	Type        string    `json:"type"`
	Quantity    int64     `json:"quantity"`
	Reason      string    `json:"reason"`
	DocRef      string    `json:"docRef,omitempty"`
	WarehouseID string    `json:"warehouseId"`
	Timestamp   time.Time `json:"timestamp"`
}
