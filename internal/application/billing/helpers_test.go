package billing_test

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

func product(id string, qty int64, buy, sell string) entity.Product {
	return entity.Product{
		ID:            id,
		Name:          "Producto " + id,
		SKU:           "SKU-" + id,
		HSNCode:       "94054090",
		UOM:           entity.UOMPieces,
		Quantity:      qty,
		MinStock:      2,
		MaxStock:      100,
		PurchasePrice: decimal.RequireFromString(buy),
		SellingPrice:  decimal.RequireFromString(sell),
		WarehouseID:   "WH-01",
		LastUpdated:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

type seedData struct {
	products []entity.Product
	partners []entity.Partner
}

func newState(t *testing.T, seed seedData) *memory.State {
	t.Helper()
	st := memory.NewState(nil, zerolog.Nop())
	require.NoError(t, st.Load(context.Background(), memory.Seed{Products: seed.products, Partners: seed.partners}))
	return st
}

type ledgers struct {
	products  map[string]*entity.Product
	movements []*entity.StockMovement
	docs      []*entity.Document
	audit     []*entity.AuditLogEntry
}

func readLedgers(t *testing.T, st *memory.State) ledgers {
	t.Helper()
	var l ledgers
	require.NoError(t, st.View(context.Background(), func(s repository.Stores) error {
		products, err := s.Products.List(repository.ProductFilter{})
		if err != nil {
			return err
		}
		l.products = make(map[string]*entity.Product, len(products))
		for _, p := range products {
			l.products[p.ID] = p
		}
		if l.movements, err = s.Movements.List(repository.MovementFilter{}); err != nil {
			return err
		}
		if l.docs, err = s.Documents.List(repository.DocumentFilter{}); err != nil {
			return err
		}
		l.audit, err = s.Audit.List(0)
		return err
	}))
	return l
}
