package inventory

import (
	"github.com/jhoicas/invenpro-api/internal/application/dto"
	"github.com/jhoicas/invenpro-api/internal/domain/entity"
)

// ToProductResponse convierte la entidad en DTO de salida.
func ToProductResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		SKU:           p.SKU,
		HSNCode:       p.HSNCode,
		Brand:         p.Brand,
		Category:      p.Category,
		UOM:           p.UOM,
		Quantity:      p.Quantity,
		MinStock:      p.MinStock,
		MaxStock:      p.MaxStock,
		PurchasePrice: p.PurchasePrice,
		SellingPrice:  p.SellingPrice,
		WarehouseID:   p.WarehouseID,
		WarehouseName: entity.WarehouseName(p.WarehouseID),
		Description:   p.Description,
		ImageURL:      p.ImageURL,
		LowStock:      p.IsLowStock(),
		LastUpdated:   p.LastUpdated,
	}
}

// ToMovementResponse convierte un movimiento del libro en DTO.
func ToMovementResponse(m *entity.StockMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:          m.ID,
		ProductID:   m.ProductID,
		ProductName: m.ProductName,
		Type:        m.Type,
		Quantity:    m.Quantity,
		Reason:      m.Reason,
		DocRef:      m.DocRef,
		WarehouseID: m.WarehouseID,
		Timestamp:   m.Timestamp,
	}
}

func toPatch(in dto.UpdateProductRequest) entity.ProductPatch {
	return entity.ProductPatch{
		Name:          in.Name,
		SKU:           in.SKU,
		HSNCode:       in.HSNCode,
		Brand:         in.Brand,
		Category:      in.Category,
		UOM:           in.UOM,
		Quantity:      in.Quantity,
		MinStock:      in.MinStock,
		MaxStock:      in.MaxStock,
		PurchasePrice: in.PurchasePrice,
		SellingPrice:  in.SellingPrice,
		WarehouseID:   in.WarehouseID,
		Description:   in.Description,
		ImageURL:      in.ImageURL,
	}
}
