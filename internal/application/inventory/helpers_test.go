package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invenpro-api/internal/domain/entity"
	"github.com/jhoicas/invenpro-api/internal/domain/repository"
	"github.com/jhoicas/invenpro-api/internal/infrastructure/memory"
)

var owner = entity.Operator{Username: "admin", Name: "Ravi", Role: entity.RoleOwner}

func seedProduct(id, sku string, qty, minStock, maxStock int64, buy, sell string) entity.Product {
	return entity.Product{
		ID:            id,
		Name:          "Producto " + sku,
		SKU:           sku,
		Category:      "Hardware",
		UOM:           entity.UOMPieces,
		Quantity:      qty,
		MinStock:      minStock,
		MaxStock:      maxStock,
		PurchasePrice: decimal.RequireFromString(buy),
		SellingPrice:  decimal.RequireFromString(sell),
		WarehouseID:   "WH-01",
		LastUpdated:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func newState(t *testing.T, products ...entity.Product) *memory.State {
	t.Helper()
	st := memory.NewState(nil, zerolog.Nop())
	require.NoError(t, st.Load(context.Background(), memory.Seed{Products: products}))
	return st
}

func auditActions(t *testing.T, st *memory.State) []string {
	t.Helper()
	var out []string
	require.NoError(t, st.View(context.Background(), func(s repository.Stores) error {
		entries, err := s.Audit.List(0)
		for _, e := range entries {
			out = append(out, e.Action)
		}
		return err
	}))
	return out
}

func productByID(t *testing.T, st *memory.State, id string) *entity.Product {
	t.Helper()
	var p *entity.Product
	require.NoError(t, st.View(context.Background(), func(s repository.Stores) error {
		var err error
		p, err = s.Products.GetByID(id)
		return err
	}))
	return p
}
