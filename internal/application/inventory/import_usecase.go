package inventory

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/invenpro-api/internal/application/audit"
	"github.com/jhoicas/invenpro-api/internal/application/dto"
	"github.com/jhoicas/invenpro-api/internal/application/ports"
	"github.com/jhoicas/invenpro-api/internal/domain"
	"github.com/jhoicas/invenpro-api/internal/domain/entity"
	"github.com/jhoicas/invenpro-api/internal/domain/repository"
)

// CSVHeaders columnas de importación y exportación del catálogo.
var CSVHeaders = []string{"Name", "SKU", "Category", "SellingPrice", "Quantity", "HSNCode"}

const csvSample = "Example Product,SKU-101,Hardware,499.00,50,94054090"

// Valores por defecto de las filas importadas.
const (
	importDefaultName     = "Unknown Item"
	importDefaultCategory = "General"
	importDefaultHSN      = "94054090"
	importBrand           = "Imported"
	importDescription     = "Bulk imported item."
	importMinStock        = 5
	importMaxStock        = 1000
)

// purchaseRatio precio de compra sintetizado = 70% del precio de venta.
var purchaseRatio = decimal.RequireFromString("0.7")

// ImportUseCase importación y exportación CSV del catálogo.
type ImportUseCase struct {
	tx    ports.TxRunner
	sheet ports.SpreadsheetWriter
	log   zerolog.Logger
	now   func() time.Time
}

// NewImportUseCase construye el caso de uso. sheet puede ser nil si no se exporta XLSX.
func NewImportUseCase(tx ports.TxRunner, sheet ports.SpreadsheetWriter, log zerolog.Logger) *ImportUseCase {
	return &ImportUseCase{tx: tx, sheet: sheet, log: log, now: time.Now}
}

// Template devuelve la plantilla CSV: cabecera y una fila de ejemplo.
func Template() []byte {
	return []byte(strings.Join(CSVHeaders, ",") + "\n" + csvSample + "\n")
}

// ImportCSV lee el archivo y agrega al catálogo cada fila con al menos dos columnas.
// Las filas cortas, mal formadas o con SKU ya registrado se descartan y se cuentan.
// Si ninguna fila se importa devuelve domain.ErrParse y no modifica el catálogo.
func (uc *ImportUseCase) ImportCSV(ctx context.Context, op entity.Operator, r io.Reader) (*dto.ImportResult, error) {
	now := uc.now().UTC()
	rows, skipped, err := parseCSV(r, now)
	if err != nil {
		return nil, err
	}

	res := &dto.ImportResult{Skipped: skipped}
	err = uc.tx.Run(ctx, func(s repository.Stores) error {
		for _, p := range rows {
			existing, err := s.Products.GetBySKU(p.SKU)
			if err != nil {
				return err
			}
			if existing != nil {
				res.Skipped++
				continue
			}
			if err := s.Products.Create(p); err != nil {
				return err
			}
			res.Imported++
		}
		if res.Imported == 0 {
			return fmt.Errorf("%w: no se pudo leer ninguna fila válida", domain.ErrParse)
		}
		return s.Audit.Prepend(audit.NewEntry(entity.AuditBulkImport,
			fmt.Sprintf("Imported %d items via CSV file.", res.Imported), op, now))
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Int("imported", res.Imported).Int("skipped", res.Skipped).Msg("importación CSV completada")
	return res, nil
}

func parseCSV(r io.Reader, now time.Time) ([]*entity.Product, int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	var (
		out     []*entity.Product
		skipped int
		header  = true
	)
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			skipped++
			continue
		}
		if err != nil {
			return nil, 0, fmt.Errorf("%w: %v", domain.ErrParse, err)
		}
		if header {
			header = false
			continue
		}
		for i := range rec {
			rec[i] = strings.TrimSpace(strings.Trim(rec[i], `"`))
		}
		if len(rec) < 2 {
			skipped++
			continue
		}
		line, _ := cr.FieldPos(0)
		out = append(out, rowToProduct(rec, line-1, now))
	}
	return out, skipped, nil
}

func rowToProduct(cols []string, line int, now time.Time) *entity.Product {
	col := func(i int) string {
		if i < len(cols) {
			return cols[i]
		}
		return ""
	}
	orDefault := func(v, def string) string {
		if v == "" {
			return def
		}
		return v
	}

	selling := parseMoney(col(3))
	return &entity.Product{
		ID:            uuid.NewString(),
		Name:          orDefault(col(0), importDefaultName),
		SKU:           orDefault(col(1), fmt.Sprintf("SKU-%d-%d", now.UnixMilli(), line)),
		Category:      orDefault(col(2), importDefaultCategory),
		SellingPrice:  selling,
		PurchasePrice: selling.Mul(purchaseRatio).Round(2),
		Quantity:      parseQuantity(col(4)),
		HSNCode:       orDefault(col(5), importDefaultHSN),
		Brand:         importBrand,
		UOM:           entity.UOMNos,
		MinStock:      importMinStock,
		MaxStock:      importMaxStock,
		WarehouseID:   entity.DefaultWarehouseID(),
		Description:   importDescription,
		LastUpdated:   now,
	}
}

// parseMoney devuelve 0 si el valor no es numérico.
func parseMoney(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// parseQuantity acepta enteros y decimales (se trunca); NaN, infinitos, valores fuera de int64
// y cualquier otra cosa son 0.
func parseQuantity(s string) int64 {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	// float64(math.MaxInt64) es 2^63, ya fuera de rango
	if f >= math.MaxInt64 || f < math.MinInt64 {
		return 0
	}
	return int64(f)
}

// ExportCSV escribe el catálogo con las mismas columnas que la plantilla, reimportable.
func (uc *ImportUseCase) ExportCSV(ctx context.Context, w io.Writer) error {
	rows, err := uc.exportRows(ctx)
	if err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeaders); err != nil {
		return err
	}
	for _, r := range rows {
		rec := make([]string, len(r))
		for i, v := range r {
			rec[i] = fmt.Sprint(v)
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportXLSX escribe el catálogo como libro de Excel.
func (uc *ImportUseCase) ExportXLSX(ctx context.Context, w io.Writer) error {
	if uc.sheet == nil {
		return fmt.Errorf("catalog: exportación XLSX no configurada")
	}
	rows, err := uc.exportRows(ctx)
	if err != nil {
		return err
	}
	return uc.sheet.WriteTable(w, "Products", CSVHeaders, rows)
}

func (uc *ImportUseCase) exportRows(ctx context.Context) ([][]interface{}, error) {
	var products []*entity.Product
	err := uc.tx.View(ctx, func(s repository.Stores) error {
		var err error
		products, err = s.Products.List(repository.ProductFilter{})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("catalog: exportar: %w", err)
	}
	rows := make([][]interface{}, 0, len(products))
	for _, p := range products {
		rows = append(rows, []interface{}{p.Name, p.SKU, p.Category, p.SellingPrice.StringFixed(2), p.Quantity, p.HSNCode})
	}
	return rows, nil
}
