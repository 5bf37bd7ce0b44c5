package repository

import (
	"time"

	"github.com/jhoicas/invenpro-api/internal/domain/entity"
)

// ProductFilter criterios de listado del catálogo. Campos vacíos no filtran.
type ProductFilter struct {
	Search   string // nombre o SKU, sin distinguir mayúsculas
	Category string
	LowStock bool
}

// ProductRepository puerto del Catálogo. GetByID/GetBySKU devuelven (nil, nil) si no existe.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	Update(product *entity.Product) error
	// ApplyQuantityDelta suma delta (con signo) a la cantidad y fija LastUpdated.
	ApplyQuantityDelta(id string, delta int64, at time.Time) error
	List(filter ProductFilter) ([]*entity.Product, error)
	Delete(id string) error
}
