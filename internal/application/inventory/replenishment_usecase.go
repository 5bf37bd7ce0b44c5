package inventory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/invenpro-api/internal/application/dto"
	"github.com/jhoicas/invenpro-api/internal/application/ports"
	"github.com/jhoicas/invenpro-api/internal/domain/entity"
	"github.com/jhoicas/invenpro-api/internal/domain/repository"
)

// ReplenishmentUseCase genera la lista de reposición a partir del catálogo.
type ReplenishmentUseCase struct {
	tx ports.TxRunner
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(tx ports.TxRunner) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{tx: tx}
}

// GenerateReplenishmentList devuelve los productos en o bajo su stock mínimo con la
// cantidad sugerida (MaxStock - Quantity) y su costo estimado al último precio de compra.
// warehouseID vacío considera todas las bodegas.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context, warehouseID string) ([]dto.ReorderSuggestionDTO, error) {
	var low []*entity.Product
	err := uc.tx.View(ctx, func(s repository.Stores) error {
		var err error
		low, err = s.Products.List(repository.ProductFilter{LowStock: true})
		return err
	})
	if err != nil {
		return nil, err
	}

	suggestions := make([]dto.ReorderSuggestionDTO, 0, len(low))
	deficit := make(map[string]int64, len(low))
	for _, p := range low {
		if warehouseID != "" && p.WarehouseID != warehouseID {
			continue
		}
		qty := p.MaxStock - p.Quantity
		if qty < 0 {
			qty = 0
		}
		deficit[p.ID] = p.MinStock - p.Quantity
		suggestions = append(suggestions, dto.ReorderSuggestionDTO{
			ProductID:         p.ID,
			SKU:               p.SKU,
			ProductName:       p.Name,
			CurrentStock:      p.Quantity,
			MinStock:          p.MinStock,
			MaxStock:          p.MaxStock,
			SuggestedOrderQty: qty,
			EstimatedCost:     p.PurchasePrice.Mul(decimal.NewFromInt(qty)).StringFixed(2),
		})
	}

	// Mayor déficit bajo el mínimo primero; empate: mayor cantidad sugerida.
	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		if deficit[a.ProductID] != deficit[b.ProductID] {
			return deficit[a.ProductID] > deficit[b.ProductID]
		}
		return a.SuggestedOrderQty > b.SuggestedOrderQty
	})

	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions, nil
}
