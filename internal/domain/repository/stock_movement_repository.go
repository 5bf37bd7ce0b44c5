package repository

import "github.com/jhoicas/invenpro-api/internal/domain/entity"

// MovementFilter criterios de listado del libro de movimientos.
type MovementFilter struct {
	ProductID string
	Type      string
	Limit     int
}

// StockMovementRepository puerto del libro de movimientos (solo inserción, más reciente primero).
type StockMovementRepository interface {
	// Prepend inserta el lote al frente conservando el orden interno del lote.
	Prepend(movements ...*entity.StockMovement) error
	List(filter MovementFilter) ([]*entity.StockMovement, error)
}
