// Package analytics contiene los casos de uso de reportes: tablero general y hoja de negocio.
package analytics

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/invenpro-api/internal/application/dto"
	"github.com/jhoicas/invenpro-api/internal/application/inventory"
	"github.com/jhoicas/invenpro-api/internal/application/ports"
	"github.com/jhoicas/invenpro-api/internal/domain/entity"
	"github.com/jhoicas/invenpro-api/internal/domain/repository"
)

const dashboardRecentMovements = 5 // movimientos recientes en el widget del tablero

var hundred = decimal.NewFromInt(100)

// DashboardUseCase indicadores calculados sobre el estado confirmado.
type DashboardUseCase struct {
	tx    ports.TxRunner
	index repository.DocumentIndex
}

// NewDashboardUseCase construye el caso de uso. index puede ser nil: en ese caso el
// resumen de impuestos se calcula sobre el libro en memoria.
func NewDashboardUseCase(tx ports.TxRunner, index repository.DocumentIndex) *DashboardUseCase {
	return &DashboardUseCase{tx: tx, index: index}
}

type snapshot struct {
	products  []*entity.Product
	movements []*entity.StockMovement
	docs      []*entity.Document
}

func (uc *DashboardUseCase) read(ctx context.Context, withDocs bool) (*snapshot, error) {
	snap := &snapshot{}
	err := uc.tx.View(ctx, func(s repository.Stores) error {
		var err error
		if snap.products, err = s.Products.List(repository.ProductFilter{}); err != nil {
			return err
		}
		if snap.movements, err = s.Movements.List(repository.MovementFilter{}); err != nil {
			return err
		}
		if withDocs {
			snap.docs, err = s.Documents.List(repository.DocumentFilter{})
		}
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("analytics: leer estado: %w", err)
	}
	return snap, nil
}

// GetSummary total de unidades, stock bajo, valorización, ingreso potencial y distribuciones.
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	snap, err := uc.read(ctx, true)
	if err != nil {
		return nil, err
	}

	out := &dto.DashboardSummaryDTO{
		InventoryValue:   inventory.Valuation(snap.products),
		PotentialRevenue: decimal.Zero,
		SKUCount:         len(snap.products),
		DocumentCount:    len(snap.docs),
		Categories:       []dto.CategoryCountDTO{},
		RecentMovements:  []dto.MovementResponse{},
	}

	categories := make(map[string]int)
	units := make(map[string]int64)
	for _, p := range snap.products {
		out.TotalUnits += p.Quantity
		if p.IsLowStock() {
			out.LowStockCount++
		}
		out.PotentialRevenue = out.PotentialRevenue.Add(p.SellingPrice.Mul(decimal.NewFromInt(p.Quantity)))
		if _, ok := categories[p.Category]; !ok {
			out.Categories = append(out.Categories, dto.CategoryCountDTO{Category: p.Category})
		}
		categories[p.Category]++
		units[p.WarehouseID] += p.Quantity
	}
	for i := range out.Categories {
		out.Categories[i].Count = categories[out.Categories[i].Category]
	}

	for _, w := range entity.Warehouses {
		out.Warehouses = append(out.Warehouses, dto.WarehouseUnitsDTO{WarehouseID: w.ID, Name: w.Name, Units: units[w.ID]})
	}

	for i, m := range snap.movements {
		if i == dashboardRecentMovements {
			break
		}
		out.RecentMovements = append(out.RecentMovements, inventory.ToMovementResponse(m))
	}
	return out, nil
}

// Warehouses bodegas con el número de SKUs y unidades que contienen.
func (uc *DashboardUseCase) Warehouses(ctx context.Context) ([]dto.WarehouseResponse, error) {
	snap, err := uc.read(ctx, false)
	if err != nil {
		return nil, err
	}
	out := make([]dto.WarehouseResponse, 0, len(entity.Warehouses))
	for _, w := range entity.Warehouses {
		r := dto.WarehouseResponse{ID: w.ID, Name: w.Name, Location: w.Location}
		for _, p := range snap.products {
			if p.WarehouseID == w.ID {
				r.SKUs++
				r.Units += p.Quantity
			}
		}
		out = append(out, r)
	}
	return out, nil
}

// isSale movimientos que cuentan como venta: el manual SALE y los generados por SALES_BILL.
func isSale(m *entity.StockMovement) bool {
	return m.Type == entity.MovementTypeSale || m.Type == string(entity.DocSalesBill)
}

// GetBusinessSheet hoja financiera: activos, ingreso proyectado, ventas, margen promedio
// y rendimiento por SKU ordenado por aporte a la utilidad.
func (uc *DashboardUseCase) GetBusinessSheet(ctx context.Context) (*dto.BusinessSheetDTO, error) {
	snap, err := uc.read(ctx, false)
	if err != nil {
		return nil, err
	}

	sold := make(map[string]int64)
	for _, m := range snap.movements {
		if isSale(m) {
			sold[m.ProductID] += m.Quantity
		}
	}

	out := &dto.BusinessSheetDTO{
		TotalAssetValue:  inventory.Valuation(snap.products),
		ProjectedRevenue: decimal.Zero,
		TotalSales:       decimal.Zero,
		AverageMarginPct: decimal.Zero,
		Items:            make([]dto.ItemPerformanceDTO, 0, len(snap.products)),
	}
	marginSum := decimal.Zero
	for _, p := range snap.products {
		out.ProjectedRevenue = out.ProjectedRevenue.Add(p.SellingPrice.Mul(decimal.NewFromInt(p.Quantity)))
		out.TotalSales = out.TotalSales.Add(p.SellingPrice.Mul(decimal.NewFromInt(sold[p.ID])))

		unit := p.SellingPrice.Sub(p.PurchasePrice)
		pct := decimal.Zero
		if p.SellingPrice.IsPositive() {
			pct = unit.Div(p.SellingPrice).Mul(hundred)
		}
		marginSum = marginSum.Add(pct)

		out.Items = append(out.Items, dto.ItemPerformanceDTO{
			ProductID:          p.ID,
			SKU:                p.SKU,
			Name:               p.Name,
			Quantity:           p.Quantity,
			SalesCount:         sold[p.ID],
			UnitMargin:         unit,
			MarginPct:          pct.Round(2),
			ProfitContribution: unit.Mul(decimal.NewFromInt(sold[p.ID])),
		})
	}
	if n := len(snap.products); n > 0 {
		out.AverageMarginPct = marginSum.Div(decimal.NewFromInt(int64(n))).Round(2)
	}

	sort.SliceStable(out.Items, func(i, j int) bool {
		return out.Items[i].ProfitContribution.GreaterThan(out.Items[j].ProfitContribution)
	})
	return out, nil
}

// GetTaxSummary acumulados por tipo de documento. Usa el índice SQL si está disponible.
func (uc *DashboardUseCase) GetTaxSummary(ctx context.Context) ([]dto.TaxSummaryDTO, error) {
	var totals []repository.DocTypeTotal
	if uc.index != nil {
		var err error
		totals, err = uc.index.TotalsByType(ctx)
		if err != nil {
			return nil, fmt.Errorf("analytics: índice de documentos: %w", err)
		}
	} else {
		snap, err := uc.read(ctx, true)
		if err != nil {
			return nil, err
		}
		totals = aggregateDocs(snap.docs)
	}

	out := make([]dto.TaxSummaryDTO, 0, len(totals))
	for _, t := range totals {
		out = append(out, dto.TaxSummaryDTO{
			DocType:  string(t.DocType),
			Count:    t.Count,
			Subtotal: t.Subtotal,
			Tax:      t.Tax,
			Total:    t.Total,
		})
	}
	return out, nil
}

func aggregateDocs(docs []*entity.Document) []repository.DocTypeTotal {
	byType := make(map[entity.DocumentType]*repository.DocTypeTotal)
	for _, d := range docs {
		t, ok := byType[d.DocType]
		if !ok {
			t = &repository.DocTypeTotal{DocType: d.DocType}
			byType[d.DocType] = t
		}
		t.Count++
		t.Subtotal = t.Subtotal.Add(d.Subtotal)
		t.Tax = t.Tax.Add(d.Tax)
		t.Total = t.Total.Add(d.Total)
	}
	out := make([]repository.DocTypeTotal, 0, len(byType))
	for _, t := range byType {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DocType < out[j].DocType })
	return out
}
