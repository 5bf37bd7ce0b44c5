package billing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/invenpro-api/internal/domain/billing"
	"github.com/jhoicas/invenpro-api/internal/domain/entity"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestComputeTotals_ConDescuentoYGST(t *testing.T) {
	items := []entity.LineItem{
		{Quantity: 2, Price: d("250")},
		{Quantity: 1, Price: d("500")},
	}
	got := billing.ComputeTotals(items, d("10"), billing.DefaultTaxRate)

	assert.True(t, got.Subtotal.Equal(d("1000")), got.Subtotal.String())
	assert.True(t, got.Discount.Equal(d("100")))
	assert.True(t, got.Taxable.Equal(d("900")))
	assert.True(t, got.Tax.Equal(d("162")))
	assert.True(t, got.Total.Equal(d("1062")))
}

func TestComputeTotals_SinLineas(t *testing.T) {
	got := billing.ComputeTotals(nil, decimal.Zero, billing.DefaultTaxRate)
	assert.True(t, got.Total.IsZero())
}

func TestComputeTotals_RedondeaAlFinal(t *testing.T) {
	items := []entity.LineItem{{Quantity: 3, Price: d("33.33")}}
	got := billing.ComputeTotals(items, d("5"), d("18"))

	// 99.99 - 4.9995 = 94.9905 ; 94.9905 * 0.18 = 17.09829 ; total 112.08879
	assert.Equal(t, "99.99", got.Subtotal.StringFixed(2))
	assert.Equal(t, "17.10", got.Tax.StringFixed(2))
	assert.Equal(t, "112.09", got.Total.StringFixed(2))
}

func TestInitials(t *testing.T) {
	assert.Equal(t, "SB", billing.Initials(entity.DocSalesBill))
	assert.Equal(t, "PB", billing.Initials(entity.DocPurchaseBill))
	assert.Equal(t, "G", billing.Initials(entity.DocGRN))
	assert.Equal(t, "DC", billing.Initials(entity.DocDeliveryChallan))
	assert.Equal(t, "CDN", billing.Initials(entity.DocCreditDebitNote))
}

func TestFormatDocNo(t *testing.T) {
	assert.Equal(t, "SB/2026/", billing.DocNoPrefix(entity.DocSalesBill, 2026))
	assert.Equal(t, "SB/2026/0007", billing.FormatDocNo(entity.DocSalesBill, 2026, 7))
	assert.Equal(t, "P/2026/0012", billing.FormatDocNo(entity.DocPurchaseOrder, 2026, 12))
}

func TestParseSeq(t *testing.T) {
	cases := []struct {
		docNo string
		seq   int
		ok    bool
	}{
		{"SB/2026/0007", 7, true},
		{"SB/2026/4821", 4821, true},
		{"SB/2026/A17", 0, false},
		{"SB/2025/0003", 0, false},
		{"G/2026/0003", 0, false},
	}
	for _, tc := range cases {
		seq, ok := billing.ParseSeq(tc.docNo, "SB/2026/")
		assert.Equal(t, tc.ok, ok, tc.docNo)
		assert.Equal(t, tc.seq, seq, tc.docNo)
	}
}
