// Package pdf implementa la representación imprimible de un documento confirmado.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Ack No + Modo  │  TIPO DE DOCUMENTO  │  Digital ID  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  EMISOR: Razón social + GSTIN │ N° Doc / Fecha / Estado / Vehículo │
//	│  CONTRAPARTE: Nombre + GSTIN + dirección + contacto          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: SI | Descripción | HSN | Cant | Tarifa | Total       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal bruto / Descuento / GST / Monto final     │
//	│  FOOTER: leyenda + firma                                     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	appbilling "github.com/jhoicas/invenpro-api/internal/application/billing"
	"github.com/jhoicas/invenpro-api/internal/domain/entity"
)

var _ appbilling.DocumentPDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 15, Green: 23, Blue: 42}
	colorAccent  = &props.Color{Red: 79, Green: 70, Blue: 229}
	colorGray    = &props.Color{Red: 100, Green: 116, Blue: 139}
	colorRed     = &props.Color{Red: 225, Green: 29, Blue: 72}
)

// Issuer datos de la empresa emisora impresos en la cabecera.
type Issuer struct {
	Name    string
	Address string
	GSTIN   string
}

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa billing.DocumentPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	issuer  Issuer
	printer *message.Printer
}

// NewMarotoPDFGenerator construye el generador. Los importes se formatean con la
// agrupación de en-IN (1,00,000.00).
func NewMarotoPDFGenerator(issuer Issuer) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{
		issuer:  issuer,
		printer: message.NewPrinter(language.MustParse("en-IN")),
	}
}

// GenerateDocumentPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateDocumentPDF(_ context.Context, doc *entity.Document) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(docTitle(doc.DocType)+" "+doc.DocNo, true).
		WithAuthor(g.issuer.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(g.issuerRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(partnerRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range g.tableDetailRows(doc.Items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	for _, r := range g.totalsRows(doc) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(6))
	m.AddRows(g.footerRow(doc))

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: identificador (izq), tipo de documento (centro) y marca de sistema (der).
func headerRow(doc *entity.Document) core.Row {
	shortID := doc.ID
	if len(shortID) > 6 {
		shortID = shortID[:6]
	}
	return row.New(16).Add(
		col.New(4).Add(
			text.New("Ack No: "+doc.ID, props.Text{Size: 7, Top: 2, Color: colorGray}),
			text.New("Mode: "+docTitle(doc.DocType), props.Text{Style: fontstyle.Bold, Size: 8, Top: 7, Color: colorAccent}),
		),
		col.New(4).Add(
			text.New(docTitle(doc.DocType), props.Text{
				Style: fontstyle.Bold, Size: 14, Align: align.Center, Top: 4, Color: colorPrimary,
			}),
		),
		col.New(4).Add(
			text.New("(COMPUTER GENERATED)", props.Text{Style: fontstyle.Italic, Size: 7, Align: align.Right, Top: 2, Color: colorGray}),
			text.New("Digital ID: "+shortID, props.Text{Size: 8, Align: align.Right, Top: 7}),
		),
	)
}

// issuerRow: empresa emisora (izq) y datos del documento (der).
func (g *MarotoPDFGenerator) issuerRow(doc *entity.Document) core.Row {
	small := func(label, value string, top float64) core.Component {
		return text.New(label+": "+value, props.Text{Size: 8, Top: top, Align: align.Right})
	}
	return row.New(24).Add(
		col.New(7).Add(
			text.New(strings.ToUpper(g.issuer.Name), props.Text{Style: fontstyle.Bold, Size: 11, Top: 2, Color: colorPrimary}),
			text.New(g.issuer.Address, props.Text{Size: 8, Top: 9, Color: colorGray}),
			text.New("GSTIN: "+g.issuer.GSTIN, props.Text{Size: 8, Top: 14, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("Document No: "+doc.DocNo, props.Text{Style: fontstyle.Bold, Size: 10, Top: 2, Align: align.Right}),
			small("Date", doc.Timestamp.Format("02/01/2006"), 8),
			small("Status", strings.ToUpper(doc.PaymentStatus), 13),
			small("Vehicle No", nonEmpty(strings.ToUpper(doc.VehicleNo), "N/A"), 18),
		),
	)
}

// partnerRow: consignatario o contraparte.
func partnerRow(doc *entity.Document) core.Row {
	return row.New(26).Add(
		col.New(12).Add(
			text.New("CONSIGNEE / PARTNER DETAILS", props.Text{Style: fontstyle.Bold, Size: 7, Top: 1, Color: colorGray}),
			text.New(strings.ToUpper(nonEmpty(doc.PartnerName, "Guest Partner")), props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New("GSTIN: "+nonEmpty(doc.GSTIN, "N/A"), props.Text{Size: 8, Top: 12}),
			text.New("Address: "+nonEmpty(doc.BillingAddress, "N/A"), props.Text{Size: 8, Top: 16}),
			text.New("Contact: "+nonEmpty(doc.PartnerContact, "N/A"), props.Text{Size: 8, Top: 20}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("SI", 1, align.Center),
		h("Item Description", 4, align.Left),
		h("HSN", 2, align.Center),
		h("Qty", 1, align.Center),
		h("Rate (Rs.)", 2, align.Right),
		h("Total (Rs.)", 2, align.Right),
	)
}

// tableDetailRows: una fila por línea del documento.
func (g *MarotoPDFGenerator) tableDetailRows(items []entity.LineItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for i, it := range items {
		amount := it.Price.Mul(decimal.NewFromInt(it.Quantity))
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(fmt.Sprint(i+1), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(4).Add(text.New(strings.ToUpper(it.Name), props.Text{Style: fontstyle.Bold, Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(it.HSN, props.Text{Size: 8, Align: align.Center, Top: 1, Color: colorGray})),
			col.New(1).Add(text.New(fmt.Sprintf("%d %s", it.Quantity, it.UOM), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(g.formatAmount(it.Price), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(g.formatAmount(amount), props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

// totalsRows: subtotal bruto, descuento si aplica, GST y monto final.
func (g *MarotoPDFGenerator) totalsRows(doc *entity.Document) []core.Row {
	totalLine := func(label, value string, c *props.Color, bold bool, size float64) core.Row {
		style := fontstyle.Normal
		if bold {
			style = fontstyle.Bold
		}
		return row.New(6).Add(
			col.New(8).Add(text.New(label, props.Text{Style: fontstyle.Bold, Size: size, Align: align.Right, Right: 2, Color: c})),
			col.New(4).Add(text.New(value, props.Text{Style: style, Size: size, Align: align.Right, Right: 1, Color: c})),
		)
	}

	rows := []core.Row{totalLine("GROSS SUBTOTAL", "Rs. "+g.formatAmount(doc.Subtotal), colorGray, false, 9)}
	if doc.DiscountPercentage.IsPositive() {
		discount := doc.Subtotal.Mul(doc.DiscountPercentage).Div(decimal.NewFromInt(100))
		rows = append(rows, totalLine(
			fmt.Sprintf("LESS: CASH DISCOUNT (%s%%)", doc.DiscountPercentage.String()),
			"-Rs. "+g.formatAmount(discount), colorRed, true, 9,
		))
	}
	rows = append(rows,
		totalLine(fmt.Sprintf("ADD: GST (%s%%)", doc.TaxRate.String()), "Rs. "+g.formatAmount(doc.Tax), colorGray, false, 9),
		totalLine("FINAL AMOUNT PAYABLE", "Rs. "+g.formatAmount(doc.Total), colorPrimary, true, 11),
	)
	return rows
}

// footerRow: leyenda de documento generado por sistema y espacio de firma.
func (g *MarotoPDFGenerator) footerRow(doc *entity.Document) core.Row {
	return row.New(24).Add(
		col.New(7).Add(
			text.New(
				fmt.Sprintf("THIS IS A SYSTEM GENERATED %s BASED ON DIGITAL LEDGERS. PHYSICAL SIGNATURE MAY BE REQUIRED FOR BANK VERIFICATION.", docTitle(doc.DocType)),
				props.Text{Style: fontstyle.Italic, Size: 6.5, Color: colorGray, Top: 2},
			),
		),
		col.New(5).Add(
			text.New("____________________________", props.Text{Size: 8, Align: align.Right, Top: 12}),
			text.New("For "+g.issuer.Name, props.Text{Style: fontstyle.Bold, Size: 7, Align: align.Right, Top: 18}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// docTitle "SALES_BILL" → "SALES BILL".
func docTitle(t entity.DocumentType) string {
	return strings.ReplaceAll(string(t), "_", " ")
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatAmount importe con dos decimales y agrupación india: 125000 → "1,25,000.00".
func (g *MarotoPDFGenerator) formatAmount(d decimal.Decimal) string {
	return g.printer.Sprint(number.Decimal(d.Round(2).InexactFloat64(), number.Scale(2)))
}
