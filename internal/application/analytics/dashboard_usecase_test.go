package analytics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invenpro-api/internal/application/analytics"
	"github.com/jhoicas/invenpro-api/internal/domain/entity"
	"github.com/jhoicas/invenpro-api/internal/domain/repository"
	"github.com/jhoicas/invenpro-api/internal/infrastructure/memory"
)

func product(id, category, warehouse string, qty, minStock int64, buy, sell string) entity.Product {
	return entity.Product{
		ID:            id,
		Name:          "Producto " + id,
		SKU:           "SKU-" + id,
		Category:      category,
		UOM:           entity.UOMPieces,
		Quantity:      qty,
		MinStock:      minStock,
		MaxStock:      100,
		PurchasePrice: decimal.RequireFromString(buy),
		SellingPrice:  decimal.RequireFromString(sell),
		WarehouseID:   warehouse,
	}
}

func movement(productID, typ string, qty int64) *entity.StockMovement {
	return &entity.StockMovement{
		ID:          "m-" + productID + "-" + typ,
		ProductID:   productID,
		Type:        typ,
		Quantity:    qty,
		WarehouseID: "WH-01",
		Timestamp:   time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

func newState(t *testing.T, products []entity.Product, movs []*entity.StockMovement, docs []*entity.Document) *memory.State {
	t.Helper()
	st := memory.NewState(nil, zerolog.Nop())
	ctx := context.Background()
	require.NoError(t, st.Load(ctx, memory.Seed{Products: products}))
	require.NoError(t, st.Run(ctx, func(s repository.Stores) error {
		if err := s.Movements.Prepend(movs...); err != nil {
			return err
		}
		for _, d := range docs {
			if err := s.Documents.Prepend(d); err != nil {
				return err
			}
		}
		return nil
	}))
	return st
}

func catalog() []entity.Product {
	return []entity.Product{
		product("a", "Lighting", "WH-01", 10, 2, "50", "100"),
		product("b", "Lighting", "WH-02", 1, 5, "20", "25"),
		product("c", "Tools", "WH-01", 4, 4, "10", "0"),
	}
}

func TestGetSummary_CalculaIndicadores(t *testing.T) {
	st := newState(t, catalog(), []*entity.StockMovement{movement("a", entity.MovementTypeSale, 2)}, nil)
	uc := analytics.NewDashboardUseCase(st, nil)

	out, err := uc.GetSummary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(15), out.TotalUnits)
	assert.Equal(t, 2, out.LowStockCount) // b (1 ≤ 5) y c (4 ≤ 4)
	assert.Equal(t, 3, out.SKUCount)
	assert.True(t, decimal.NewFromInt(560).Equal(out.InventoryValue))    // 500 + 20 + 40
	assert.True(t, decimal.NewFromInt(1025).Equal(out.PotentialRevenue)) // 1000 + 25 + 0

	require.Len(t, out.Categories, 2)
	assert.Equal(t, "Lighting", out.Categories[0].Category)
	assert.Equal(t, 2, out.Categories[0].Count)

	require.Len(t, out.Warehouses, len(entity.Warehouses))
	assert.Equal(t, int64(14), out.Warehouses[0].Units)
	assert.Equal(t, int64(1), out.Warehouses[1].Units)
	assert.Len(t, out.RecentMovements, 1)
}

func TestGetSummary_CatalogoVacio(t *testing.T) {
	uc := analytics.NewDashboardUseCase(newState(t, nil, nil, nil), nil)

	out, err := uc.GetSummary(context.Background())
	require.NoError(t, err)
	assert.Zero(t, out.TotalUnits)
	assert.True(t, out.InventoryValue.IsZero())
	assert.Empty(t, out.Categories)
	assert.Empty(t, out.RecentMovements)
}

func TestWarehouses_CuentaSKUsYUnidades(t *testing.T) {
	uc := analytics.NewDashboardUseCase(newState(t, catalog(), nil, nil), nil)

	out, err := uc.Warehouses(context.Background())
	require.NoError(t, err)
	require.Len(t, out, len(entity.Warehouses))
	assert.Equal(t, 2, out[0].SKUs)
	assert.Equal(t, int64(14), out[0].Units)
	assert.Equal(t, 0, out[2].SKUs)
}

func TestGetBusinessSheet_VentasYMargen(t *testing.T) {
	movs := []*entity.StockMovement{
		movement("a", entity.MovementTypeSale, 3),
		movement("a", string(entity.DocSalesBill), 2),
		movement("b", entity.MovementTypePurchase, 50),
	}
	uc := analytics.NewDashboardUseCase(newState(t, catalog(), movs, nil), nil)

	out, err := uc.GetBusinessSheet(context.Background())
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(560).Equal(out.TotalAssetValue))
	assert.True(t, decimal.NewFromInt(500).Equal(out.TotalSales), "5 unidades de a × 100")
	// márgenes: a 50%, b 20%, c 0% (precio de venta 0) → promedio 23.33
	assert.Equal(t, "23.33", out.AverageMarginPct.StringFixed(2))

	require.Len(t, out.Items, 3)
	first := out.Items[0]
	assert.Equal(t, "a", first.ProductID)
	assert.Equal(t, int64(5), first.SalesCount)
	assert.True(t, decimal.NewFromInt(250).Equal(first.ProfitContribution))
	assert.Equal(t, "50.00", first.MarginPct.StringFixed(2))
}

func TestGetTaxSummary_SinIndiceAgregaEnMemoria(t *testing.T) {
	docs := []*entity.Document{
		{ID: "1", DocType: entity.DocSalesBill, Subtotal: decimal.NewFromInt(100), Tax: decimal.NewFromInt(18), Total: decimal.NewFromInt(118)},
		{ID: "2", DocType: entity.DocSalesBill, Subtotal: decimal.NewFromInt(50), Tax: decimal.NewFromInt(9), Total: decimal.NewFromInt(59)},
		{ID: "3", DocType: entity.DocPurchaseBill, Subtotal: decimal.NewFromInt(10), Tax: decimal.Zero, Total: decimal.NewFromInt(10)},
	}
	uc := analytics.NewDashboardUseCase(newState(t, nil, nil, docs), nil)

	out, err := uc.GetTaxSummary(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "PURCHASE_BILL", out[0].DocType)
	assert.Equal(t, "SALES_BILL", out[1].DocType)
	assert.Equal(t, 2, out[1].Count)
	assert.True(t, decimal.NewFromInt(177).Equal(out[1].Total))
	assert.True(t, decimal.NewFromInt(27).Equal(out[1].Tax))
}

type indexStub struct {
	totals []repository.DocTypeTotal
	err    error
}

func (s indexStub) TotalsByType(context.Context) ([]repository.DocTypeTotal, error) {
	return s.totals, s.err
}

func TestGetTaxSummary_UsaIndice(t *testing.T) {
	idx := indexStub{totals: []repository.DocTypeTotal{{DocType: entity.DocGRN, Count: 7, Total: decimal.NewFromInt(70)}}}
	uc := analytics.NewDashboardUseCase(newState(t, nil, nil, nil), idx)

	out, err := uc.GetTaxSummary(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "GRN", out[0].DocType)
	assert.Equal(t, 7, out[0].Count)

	uc = analytics.NewDashboardUseCase(newState(t, nil, nil, nil), indexStub{err: errors.New("conexión cerrada")})
	_, err = uc.GetTaxSummary(context.Background())
	assert.Error(t, err)
}
