package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/invenpro-api/internal/domain/entity"
)

// Claves de las cinco colecciones persistidas (sin prefijo de namespace).
const (
	KeyProducts  = "products"
	KeyMovements = "movements"
	KeyDocs      = "docs"
	KeyEntities  = "entities"
	KeyAudit     = "audit"
)

// SnapshotKeys orden canónico de las colecciones.
var SnapshotKeys = []string{KeyProducts, KeyMovements, KeyDocs, KeyEntities, KeyAudit}

// SnapshotStore almacén clave/valor donde cada colección se guarda como un blob JSON.
// Load devuelve solo las claves presentes.
type SnapshotStore interface {
	Load(ctx context.Context) (map[string][]byte, error)
	Save(ctx context.Context, key string, blob []byte) error
}

// DocTypeTotal acumulados del libro de documentos para un tipo.
type DocTypeTotal struct {
	DocType  entity.DocumentType
	Count    int
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// DocumentIndex consulta agregada opcional que ofrecen los almacenes con SQL.
type DocumentIndex interface {
	TotalsByType(ctx context.Context) ([]DocTypeTotal, error)
}
