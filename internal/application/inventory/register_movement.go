package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/invenpro-api/internal/application/audit"
	"github.com/jhoicas/invenpro-api/internal/application/dto"
	"github.com/jhoicas/invenpro-api/internal/application/ports"
	"github.com/jhoicas/invenpro-api/internal/domain"
	"github.com/jhoicas/invenpro-api/internal/domain/entity"
	"github.com/jhoicas/invenpro-api/internal/domain/repository"
)

// RegisterMovementUseCase registra ajustes manuales de stock (entrada, salida, ajuste, traslado)
// fuera del flujo de documentos. Producto, movimiento y bitácora se confirman juntos.
type RegisterMovementUseCase struct {
	tx  ports.TxRunner
	now func() time.Time
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(tx ports.TxRunner) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{tx: tx, now: time.Now}
}

// signedDelta efecto sobre el stock: SALE y ADJUSTMENT con Decrease restan; PURCHASE, ADJUSTMENT
// positivo y TRANSFER (traslado recibido en la bodega indicada) suman.
func signedDelta(in dto.RegisterMovementRequest) int64 {
	switch in.Type {
	case entity.MovementTypeSale:
		return -in.Quantity
	case entity.MovementTypeAdjustment:
		if in.Decrease {
			return -in.Quantity
		}
		return in.Quantity
	default:
		return in.Quantity
	}
}

// RegisterMovement valida la entrada, aplica el delta sobre el producto y agrega el movimiento.
//
// Retorna:
//   - domain.ErrInvalidInput      tipo desconocido, cantidad no positiva o motivo vacío.
//   - domain.ErrNotFound          el producto no existe.
//   - domain.ErrInsufficientStock una salida supera el stock disponible.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, op entity.Operator, in dto.RegisterMovementRequest) (*dto.MovementResponse, error) {
	switch in.Type {
	case entity.MovementTypePurchase, entity.MovementTypeSale, entity.MovementTypeAdjustment, entity.MovementTypeTransfer:
	default:
		return nil, fmt.Errorf("%w: tipo de movimiento %q", domain.ErrInvalidInput, in.Type)
	}
	if in.Quantity <= 0 {
		return nil, fmt.Errorf("%w: la cantidad debe ser positiva", domain.ErrInvalidInput)
	}
	reason := strings.TrimSpace(in.Reason)
	if reason == "" {
		return nil, fmt.Errorf("%w: el motivo es obligatorio", domain.ErrInvalidInput)
	}
	if in.WarehouseID != "" && entity.WarehouseName(in.WarehouseID) == "Unknown" {
		return nil, fmt.Errorf("%w: bodega %q", domain.ErrInvalidInput, in.WarehouseID)
	}

	now := uc.now().UTC()
	delta := signedDelta(in)
	var mov *entity.StockMovement

	err := uc.tx.Run(ctx, func(s repository.Stores) error {
		p, err := s.Products.GetByID(in.ProductID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		if delta < 0 && p.Quantity+delta < 0 {
			return fmt.Errorf("%w: %s tiene %d, se solicitan %d", domain.ErrInsufficientStock, p.SKU, p.Quantity, in.Quantity)
		}

		wh := in.WarehouseID
		if wh == "" {
			wh = p.WarehouseID
		}
		p.Quantity += delta
		if in.Type == entity.MovementTypeTransfer {
			p.WarehouseID = wh
		}
		p.LastUpdated = now
		if err := s.Products.Update(p); err != nil {
			return err
		}

		mov = &entity.StockMovement{
			ID:          uuid.NewString(),
			ProductID:   p.ID,
			ProductName: p.Name,
			Type:        in.Type,
			Quantity:    in.Quantity,
			Reason:      reason,
			WarehouseID: wh,
			Timestamp:   now,
		}
		if err := s.Movements.Prepend(mov); err != nil {
			return err
		}
		details := fmt.Sprintf("%s of %d units for %s: %s", in.Type, in.Quantity, p.SKU, reason)
		return s.Audit.Prepend(audit.NewEntry(entity.AuditStockMovement, details, op, now))
	})
	if err != nil {
		return nil, err
	}
	out := ToMovementResponse(mov)
	return &out, nil
}

// ListMovements devuelve el libro de movimientos, más reciente primero.
func (uc *RegisterMovementUseCase) ListMovements(ctx context.Context, f repository.MovementFilter) ([]dto.MovementResponse, error) {
	var movs []*entity.StockMovement
	err := uc.tx.View(ctx, func(s repository.Stores) error {
		var err error
		movs, err = s.Movements.List(f)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("movements: listar: %w", err)
	}
	out := make([]dto.MovementResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, ToMovementResponse(m))
	}
	return out, nil
}
