package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invenpro-api/internal/application/dto"
	"github.com/jhoicas/invenpro-api/internal/application/inventory"
	"github.com/jhoicas/invenpro-api/internal/domain"
	"github.com/jhoicas/invenpro-api/internal/domain/entity"
	"github.com/jhoicas/invenpro-api/internal/domain/repository"
)

func TestRegisterMovement_EfectoPorTipo(t *testing.T) {
	cases := []struct {
		name     string
		in       dto.RegisterMovementRequest
		expected int64
	}{
		{"compra suma", dto.RegisterMovementRequest{Type: entity.MovementTypePurchase, Quantity: 5}, 15},
		{"venta resta", dto.RegisterMovementRequest{Type: entity.MovementTypeSale, Quantity: 4}, 6},
		{"ajuste positivo", dto.RegisterMovementRequest{Type: entity.MovementTypeAdjustment, Quantity: 2}, 12},
		{"ajuste negativo", dto.RegisterMovementRequest{Type: entity.MovementTypeAdjustment, Quantity: 2, Decrease: true}, 8},
		{"traslado recibido suma", dto.RegisterMovementRequest{Type: entity.MovementTypeTransfer, Quantity: 10, WarehouseID: "WH-02"}, 20},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			st := newState(t, seedProduct("p1", "SKU-1", 10, 2, 50, "5", "8"))
			uc := inventory.NewRegisterMovementUseCase(st)

			in := tc.in
			in.ProductID = "p1"
			in.Reason = "conteo físico"
			out, err := uc.RegisterMovement(ctx, owner, in)
			require.NoError(t, err)
			assert.Equal(t, tc.in.Quantity, out.Quantity, "el libro guarda la cantidad sin signo")
			assert.Equal(t, tc.expected, productByID(t, st, "p1").Quantity)
			assert.Equal(t, []string{entity.AuditStockMovement}, auditActions(t, st))
		})
	}
}

func TestRegisterMovement_TrasladoCambiaBodega(t *testing.T) {
	st := newState(t, seedProduct("p1", "SKU-1", 10, 2, 50, "5", "8"))
	uc := inventory.NewRegisterMovementUseCase(st)

	_, err := uc.RegisterMovement(context.Background(), owner, dto.RegisterMovementRequest{
		ProductID: "p1", Type: entity.MovementTypeTransfer, Quantity: 10, Reason: "rebalanceo", WarehouseID: "WH-03",
	})
	require.NoError(t, err)
	p := productByID(t, st, "p1")
	assert.Equal(t, "WH-03", p.WarehouseID)
	assert.Equal(t, int64(20), p.Quantity)
}

func TestRegisterMovement_VentaSinStock(t *testing.T) {
	ctx := context.Background()
	st := newState(t, seedProduct("p1", "SKU-1", 3, 2, 50, "5", "8"))
	uc := inventory.NewRegisterMovementUseCase(st)

	_, err := uc.RegisterMovement(ctx, owner, dto.RegisterMovementRequest{
		ProductID: "p1", Type: entity.MovementTypeSale, Quantity: 4, Reason: "mostrador",
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(3), productByID(t, st, "p1").Quantity)

	movs, err := uc.ListMovements(ctx, repository.MovementFilter{})
	require.NoError(t, err)
	assert.Empty(t, movs)
	assert.Empty(t, auditActions(t, st))
}

func TestRegisterMovement_Validaciones(t *testing.T) {
	st := newState(t, seedProduct("p1", "SKU-1", 3, 2, 50, "5", "8"))
	uc := inventory.NewRegisterMovementUseCase(st)
	ctx := context.Background()

	_, err := uc.RegisterMovement(ctx, owner, dto.RegisterMovementRequest{ProductID: "p1", Type: "GIFT", Quantity: 1, Reason: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.RegisterMovement(ctx, owner, dto.RegisterMovementRequest{ProductID: "p1", Type: entity.MovementTypePurchase, Quantity: 1, Reason: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.RegisterMovement(ctx, owner, dto.RegisterMovementRequest{ProductID: "p1", Type: entity.MovementTypePurchase, Quantity: 0, Reason: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.RegisterMovement(ctx, owner, dto.RegisterMovementRequest{ProductID: "p1", Type: entity.MovementTypePurchase, Quantity: 1, Reason: "x", WarehouseID: "WH-99"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.RegisterMovement(ctx, owner, dto.RegisterMovementRequest{ProductID: "nope", Type: entity.MovementTypePurchase, Quantity: 1, Reason: "x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
