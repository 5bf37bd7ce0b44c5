package billing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invenpro-api/internal/application/billing"
	"github.com/jhoicas/invenpro-api/internal/domain"
	"github.com/jhoicas/invenpro-api/internal/domain/entity"
)

func TestDraft_ValoresPorDefecto(t *testing.T) {
	d := billing.NewDraft()
	assert.Equal(t, entity.DocSalesBill, d.DocType)
	assert.Equal(t, entity.PaymentPaid, d.PaymentStatus)
	assert.Equal(t, "18", d.TaxRate.String())
}

func TestDraft_AddItemPrecioSegunTipo(t *testing.T) {
	p := product("p1", 10, "5", "8")

	venta := billing.NewDraft()
	require.NoError(t, venta.AddItem(&p))
	assert.Equal(t, "8", venta.Items[0].Price.String())

	compra := billing.NewDraft()
	compra.DocType = entity.DocPurchaseBill
	require.NoError(t, compra.AddItem(&p))
	assert.Equal(t, "5", compra.Items[0].Price.String())
}

func TestDraft_AddItemLimitaAlStockEnVentas(t *testing.T) {
	p := product("p1", 2, "5", "8")
	d := billing.NewDraft()

	require.NoError(t, d.AddItem(&p))
	require.NoError(t, d.AddItem(&p))
	err := d.AddItem(&p)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(2), d.Items[0].Quantity)

	vacio := product("p2", 0, "5", "8")
	assert.ErrorIs(t, d.AddItem(&vacio), domain.ErrInsufficientStock)
}

func TestDraft_AddItemSinLimiteEnDocumentosQueNoDescuentan(t *testing.T) {
	p := product("p1", 0, "5", "8")
	d := billing.NewDraft()
	d.DocType = entity.DocGRN
	require.NoError(t, d.AddItem(&p))
	require.NoError(t, d.AddItem(&p))
	assert.Equal(t, int64(2), d.Items[0].Quantity)
}

func TestDraft_UpdateQuantityNuncaMenorQueUno(t *testing.T) {
	p := product("p1", 10, "5", "8")
	d := billing.NewDraft()
	require.NoError(t, d.AddItem(&p))

	require.NoError(t, d.UpdateQuantity("p1", 4))
	assert.Equal(t, int64(5), d.Items[0].Quantity)
	require.NoError(t, d.UpdateQuantity("p1", -10))
	assert.Equal(t, int64(1), d.Items[0].Quantity)
	assert.ErrorIs(t, d.UpdateQuantity("nope", 1), domain.ErrNotFound)
}

func TestDraft_SetPriceYRemove(t *testing.T) {
	p := product("p1", 10, "5", "8")
	d := billing.NewDraft()
	require.NoError(t, d.AddItem(&p))

	require.NoError(t, d.SetPrice("p1", decimal.RequireFromString("7.5")))
	assert.Equal(t, "7.5", d.Items[0].Price.String())
	assert.ErrorIs(t, d.SetPrice("p1", decimal.NewFromInt(-1)), domain.ErrInvalidInput)

	require.NoError(t, d.Remove("p1"))
	assert.Empty(t, d.Items)
	assert.ErrorIs(t, d.Remove("p1"), domain.ErrNotFound)
}

func TestDraft_TotalsConDescuentoEImpuesto(t *testing.T) {
	p := product("p1", 10, "5", "100")
	d := billing.NewDraft()
	require.NoError(t, d.AddItem(&p))
	require.NoError(t, d.UpdateQuantity("p1", 1))
	d.DiscountPercentage = decimal.NewFromInt(10)

	tot := d.Totals()
	assert.Equal(t, "200", tot.Subtotal.String())
	assert.Equal(t, "20", tot.Discount.String())
	assert.Equal(t, "180", tot.Taxable.String())
	assert.Equal(t, "32.4", tot.Tax.String())
	assert.Equal(t, "212.4", tot.Total.String())
}

func TestDraft_Validate(t *testing.T) {
	d := billing.NewDraft()
	d.PartnerName = "Cliente"
	assert.ErrorIs(t, d.Validate(), domain.ErrEmptyCart)

	p := product("p1", 10, "5", "8")
	require.NoError(t, d.AddItem(&p))
	assert.NoError(t, d.Validate())

	d.PartnerName = ""
	assert.ErrorIs(t, d.Validate(), domain.ErrInvalidInput)

	d.DocType = entity.DocAdjustmentBill
	assert.NoError(t, d.Validate(), "el ajuste no requiere contraparte")

	d.DiscountPercentage = decimal.NewFromInt(101)
	assert.ErrorIs(t, d.Validate(), domain.ErrInvalidInput)
}
