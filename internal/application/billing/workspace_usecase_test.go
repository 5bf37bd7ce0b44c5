package billing_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invenpro-api/internal/application/billing"
	"github.com/jhoicas/invenpro-api/internal/application/dto"
	"github.com/jhoicas/invenpro-api/internal/domain"
	"github.com/jhoicas/invenpro-api/internal/domain/entity"
)

func newWorkspace(t *testing.T, seed seedData) (*billing.WorkspaceUseCase, func() ledgers) {
	st := newState(t, seed)
	ws := billing.NewWorkspaceUseCase(st, billing.NewCommitDocumentUseCase(st, zerolog.Nop()))
	return ws, func() ledgers { return readLedgers(t, st) }
}

func TestWorkspace_FlujoCompletoHastaCommit(t *testing.T) {
	ctx := context.Background()
	ws, read := newWorkspace(t, seedData{
		products: []entity.Product{product("p1", 10, "5", "9")},
		partners: []entity.Partner{{ID: "c1", Name: "Acme Retail", Type: entity.PartnerCustomer, Contact: "98200", GSTIN: "27AAA"}},
	})

	d, err := ws.SetHeader(ctx, owner, dto.DraftHeaderRequest{DocType: "SALES_BILL", PartnerID: "c1", VehicleNo: "MH-01"})
	require.NoError(t, err)
	assert.Equal(t, "Acme Retail", d.PartnerName)
	assert.Equal(t, "27AAA", d.GSTIN)

	_, err = ws.AddItem(ctx, owner, "p1")
	require.NoError(t, err)
	delta := int64(2)
	d, err = ws.UpdateLine(owner, "p1", dto.DraftLineUpdateRequest{Delta: &delta})
	require.NoError(t, err)
	require.Len(t, d.Items, 1)
	assert.Equal(t, int64(3), d.Items[0].Quantity)
	assert.Equal(t, "27", d.Items[0].Amount.String())

	out, err := ws.Commit(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, "MH-01", out.Document.VehicleNo)
	assert.Equal(t, int64(7), read().products["p1"].Quantity)

	vacio := ws.Get(owner)
	assert.Empty(t, vacio.Items, "el borrador se descarta tras el commit")
}

func TestWorkspace_BorradorPorOperador(t *testing.T) {
	ctx := context.Background()
	ws, _ := newWorkspace(t, seedData{products: []entity.Product{product("p1", 10, "5", "9")}})
	otro := entity.Operator{Username: "mgr", Name: "Asha", Role: entity.RoleManager}

	_, err := ws.AddItem(ctx, owner, "p1")
	require.NoError(t, err)
	assert.Len(t, ws.Get(owner).Items, 1)
	assert.Empty(t, ws.Get(otro).Items)

	ws.Reset(owner)
	assert.Empty(t, ws.Get(owner).Items)
}

func TestWorkspace_CommitFallidoConservaBorrador(t *testing.T) {
	ctx := context.Background()
	ws, read := newWorkspace(t, seedData{products: []entity.Product{product("p1", 10, "5", "9")}})

	_, err := ws.AddItem(ctx, owner, "p1")
	require.NoError(t, err)
	_, err = ws.Commit(ctx, owner)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "falta la contraparte")
	assert.Len(t, ws.Get(owner).Items, 1)
	assert.Empty(t, read().docs)
}

func TestWorkspace_CambioDeTipoVaciaCarrito(t *testing.T) {
	ctx := context.Background()
	ws, read := newWorkspace(t, seedData{products: []entity.Product{product("p1", 10, "5", "9")}})

	_, err := ws.SetHeader(ctx, owner, dto.DraftHeaderRequest{DocType: "PURCHASE_BILL", PartnerName: "Bharat Electricals"})
	require.NoError(t, err)
	d, err := ws.AddItem(ctx, owner, "p1")
	require.NoError(t, err)
	require.Len(t, d.Items, 1)
	assert.Equal(t, "5", d.Items[0].Price.String())

	// mismo tipo: el carrito se conserva
	d, err = ws.SetHeader(ctx, owner, dto.DraftHeaderRequest{DocType: "PURCHASE_BILL", Notes: "lote 7"})
	require.NoError(t, err)
	assert.Len(t, d.Items, 1)

	d, err = ws.SetHeader(ctx, owner, dto.DraftHeaderRequest{DocType: "SALES_BILL"})
	require.NoError(t, err)
	assert.Empty(t, d.Items)
	assert.Equal(t, "Bharat Electricals", d.PartnerName)

	d, err = ws.AddItem(ctx, owner, "p1")
	require.NoError(t, err)
	require.Len(t, d.Items, 1)
	assert.Equal(t, "9", d.Items[0].Price.String(), "la venta usa el precio de venta")

	out, err := ws.Commit(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, "9", out.Document.Items[0].Price.String())
	assert.Equal(t, int64(9), read().products["p1"].Quantity)
}

func TestWorkspace_ErroresDeLinea(t *testing.T) {
	ctx := context.Background()
	ws, _ := newWorkspace(t, seedData{products: []entity.Product{product("p1", 10, "5", "9")}})

	_, err := ws.AddItem(ctx, owner, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	price := decimal.NewFromInt(3)
	_, err = ws.UpdateLine(owner, "p1", dto.DraftLineUpdateRequest{Price: &price})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = ws.RemoveItem(owner, "p1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = ws.SetHeader(ctx, owner, dto.DraftHeaderRequest{DocType: "BOGUS"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = ws.SetHeader(ctx, owner, dto.DraftHeaderRequest{DocType: "GRN", PartnerID: "missing"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
