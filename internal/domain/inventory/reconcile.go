// Package inventory contiene el motor de conciliación: traduce un documento
// comercial en cambios de catálogo, movimientos y una entrada de bitácora.
package inventory

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/invenpro-api/internal/domain/entity"
)

// Tabla de clasificación: +1 entrada de stock, -1 salida. Lo que no aparece es neutro.
var stockEffect = map[entity.DocumentType]int64{
	entity.DocPurchaseBill:    1,
	entity.DocGRN:             1,
	entity.DocCreditNote:      1,
	entity.DocAdjustmentBill:  1,
	entity.DocSalesBill:       -1,
	entity.DocDeliveryChallan: -1,
	entity.DocDebitNote:       -1,
}

// Multiplier devuelve +1, -1 o 0 para el tipo de documento.
func Multiplier(t entity.DocumentType) int64 {
	return stockEffect[t]
}

// IsStockReducing indica si el documento descuenta stock.
func IsStockReducing(t entity.DocumentType) bool {
	return Multiplier(t) < 0
}

// Result salida del motor. Catalog es una copia: el catálogo de entrada no se modifica.
type Result struct {
	Catalog   []*entity.Product
	Updated   []*entity.Product // subconjunto de Catalog que cambió, en orden de primera aparición
	Movements []*entity.StockMovement
	Skipped   []entity.LineItem // líneas cuyo producto no existe en el catálogo
	Audit     *entity.AuditLogEntry
}

// Options parámetros del commit que no forman parte del documento.
type Options struct {
	Now   time.Time
	Actor string
	NewID func() string // nil = uuid v4
}

// ApplyDocument aplica doc sobre catalog y devuelve el nuevo estado junto con los
// movimientos y la entrada de bitácora que deben persistirse en la misma unidad.
// No es idempotente: aplicar dos veces el mismo documento duplica el efecto.
func ApplyDocument(doc *entity.Document, catalog []*entity.Product, opts Options) Result {
	newID := opts.NewID
	if newID == nil {
		newID = uuid.NewString
	}
	mult := Multiplier(doc.DocType)

	res := Result{
		Catalog: make([]*entity.Product, len(catalog)),
		Audit: &entity.AuditLogEntry{
			ID:        newID(),
			Action:    entity.AuditDocGeneration,
			Details:   fmt.Sprintf("Generated %s [%s] for %s", doc.DocType, doc.DocNo, doc.PartnerName),
			User:      opts.Actor,
			Timestamp: opts.Now,
		},
	}
	copy(res.Catalog, catalog)

	if mult == 0 {
		return res
	}

	index := make(map[string]int, len(catalog))
	for i, p := range catalog {
		index[p.ID] = i
	}
	touched := make(map[string]bool)

	for _, item := range doc.Items {
		pos, ok := index[item.ProductID]
		if !ok {
			res.Skipped = append(res.Skipped, item)
			continue
		}
		if !touched[item.ProductID] {
			cp := *res.Catalog[pos]
			res.Catalog[pos] = &cp
			touched[item.ProductID] = true
			res.Updated = append(res.Updated, &cp)
		}
		p := res.Catalog[pos]
		p.Quantity += item.Quantity * mult
		if doc.DocType == entity.DocPurchaseBill {
			p.PurchasePrice = item.Price
		}
		p.LastUpdated = opts.Now

		res.Movements = append(res.Movements, &entity.StockMovement{
			ID:          newID(),
			ProductID:   item.ProductID,
			ProductName: item.Name,
			Type:        string(doc.DocType),
			Quantity:    item.Quantity,
			Reason:      fmt.Sprintf("Auto-logged from %s %s", doc.DocType, doc.DocNo),
			DocRef:      doc.DocNo,
			WarehouseID: p.WarehouseID,
			Timestamp:   opts.Now,
		})
	}
	return res
}
