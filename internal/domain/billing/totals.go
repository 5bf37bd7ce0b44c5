// Package billing contiene la aritmética de documentos: totales y numeración.
package billing

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/invenpro-api/internal/domain/entity"
)

// DefaultTaxRate tarifa GST por defecto (%).
var DefaultTaxRate = decimal.NewFromInt(18)

var hundred = decimal.NewFromInt(100)

// Totals desglose monetario de un documento.
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Discount decimal.Decimal `json:"discount"`
	Taxable  decimal.Decimal `json:"taxable"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// ComputeTotals calcula subtotal = Σ precio×cantidad, descuento y GST sobre la base gravable.
// Los importes se redondean a 2 decimales solo al final.
func ComputeTotals(items []entity.LineItem, discountPct, taxRate decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.Price.Mul(decimal.NewFromInt(it.Quantity)))
	}
	discount := subtotal.Mul(discountPct).Div(hundred)
	taxable := subtotal.Sub(discount)
	tax := taxable.Mul(taxRate).Div(hundred)
	total := taxable.Add(tax)

	return Totals{
		Subtotal: subtotal.Round(2),
		Discount: discount.Round(2),
		Taxable:  taxable.Round(2),
		Tax:      tax.Round(2),
		Total:    total.Round(2),
	}
}

// Initials primeras letras de cada palabra del tipo: SALES_BILL -> SB, GRN -> G.
func Initials(t entity.DocumentType) string {
	var b strings.Builder
	for _, w := range strings.Split(string(t), "_") {
		if w != "" {
			b.WriteByte(w[0])
		}
	}
	return b.String()
}

// DocNoPrefix prefijo de numeración por tipo y año: "SB/2026/".
func DocNoPrefix(t entity.DocumentType, year int) string {
	return fmt.Sprintf("%s/%d/", Initials(t), year)
}

// FormatDocNo número legible: SB/2026/0007.
func FormatDocNo(t entity.DocumentType, year, seq int) string {
	return fmt.Sprintf("%s%04d", DocNoPrefix(t, year), seq)
}

// ParseSeq extrae el sufijo numérico de docNo cuando empieza por prefix.
// Números de otro formato (sufijo no numérico) se ignoran.
func ParseSeq(docNo, prefix string) (int, bool) {
	if !strings.HasPrefix(docNo, prefix) {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimPrefix(docNo, prefix))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
