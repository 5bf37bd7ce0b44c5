package entity

import "time"

// Acciones registradas en la bitácora.
const (
	AuditUserLogin     = "USER_LOGIN"
	AuditBulkImport    = "BULK_IMPORT"
	AuditDocGeneration = "DOC_GENERATION"
	AuditCreateAsset   = "CREATE_ASSET"
	AuditUpdateAsset   = "UPDATE_ASSET"
	AuditDeleteAsset   = "DELETE_ASSET"
	AuditQuickRestock  = "QUICK_RESTOCK"
	AuditStockMovement = "STOCK_MOVEMENT"
	AuditPartnerCreate = "PARTNER_CREATE"
	AuditPartnerDelete = "PARTNER_DELETE"
)

// AuditLogEntry entrada inmutable de la bitácora de acciones del operador.
type AuditLogEntry struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
	User      string    `json:"user"`
	Timestamp time.Time `json:"timestamp"`
}
