package inventory

import (
	"context"
	"fmt"
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

// CatalogUseCase operaciones sobre el catálogo de productos.
// Cada mutación y su entrada de bitácora se confirman en la misma unidad.
type CatalogUseCase struct {
	tx  ports.TxRunner
	log zerolog.Logger
	now func() time.Time
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(tx ports.TxRunner, log zerolog.Logger) *CatalogUseCase {
	return &CatalogUseCase{tx: tx, log: log, now: time.Now}
}

// Create registra un producto nuevo. El SKU no puede repetirse.
func (uc *CatalogUseCase) Create(ctx context.Context, op entity.Operator, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	sku := strings.TrimSpace(in.SKU)
	if name == "" || sku == "" {
		return nil, fmt.Errorf("%w: nombre y SKU son obligatorios", domain.ErrInvalidInput)
	}
	if in.PurchasePrice.IsNegative() || in.SellingPrice.IsNegative() {
		return nil, fmt.Errorf("%w: los precios no pueden ser negativos", domain.ErrInvalidInput)
	}
	uom := in.UOM
	if uom == "" {
		uom = entity.UOMPieces
	}
	if !entity.ValidUOM(uom) {
		return nil, fmt.Errorf("%w: unidad de medida %q", domain.ErrInvalidInput, uom)
	}
	wh := in.WarehouseID
	if wh == "" {
		wh = entity.DefaultWarehouseID()
	}

	now := uc.now().UTC()
	p := &entity.Product{
		ID:            uuid.NewString(),
		Name:          name,
		SKU:           sku,
		HSNCode:       strings.TrimSpace(in.HSNCode),
		Brand:         strings.TrimSpace(in.Brand),
		Category:      strings.TrimSpace(in.Category),
		UOM:           uom,
		Quantity:      in.Quantity,
		MinStock:      in.MinStock,
		MaxStock:      in.MaxStock,
		PurchasePrice: in.PurchasePrice,
		SellingPrice:  in.SellingPrice,
		WarehouseID:   wh,
		Description:   in.Description,
		ImageURL:      in.ImageURL,
		LastUpdated:   now,
	}

	err := uc.tx.Run(ctx, func(s repository.Stores) error {
		existing, err := s.Products.GetBySKU(sku)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("%w: SKU %s ya registrado", domain.ErrDuplicate, sku)
		}
		if err := s.Products.Create(p); err != nil {
			return err
		}
		return s.Audit.Prepend(audit.NewEntry(entity.AuditCreateAsset, "New asset registered: "+p.SKU, op, now))
	})
	if err != nil {
		return nil, err
	}
	out := ToProductResponse(p)
	return &out, nil
}

// Update fusiona los campos presentes sobre el producto y refresca LastUpdated.
func (uc *CatalogUseCase) Update(ctx context.Context, op entity.Operator, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if in.UOM != nil && !entity.ValidUOM(*in.UOM) {
		return nil, fmt.Errorf("%w: unidad de medida %q", domain.ErrInvalidInput, *in.UOM)
	}
	if (in.PurchasePrice != nil && in.PurchasePrice.IsNegative()) || (in.SellingPrice != nil && in.SellingPrice.IsNegative()) {
		return nil, fmt.Errorf("%w: los precios no pueden ser negativos", domain.ErrInvalidInput)
	}
	// solo el dueño edita precios; el gerente actualiza logística y descripciones
	if op.Role != entity.RoleOwner && (in.PurchasePrice != nil || in.SellingPrice != nil) {
		return nil, fmt.Errorf("%w: solo el rol Owner puede modificar precios", domain.ErrForbidden)
	}

	now := uc.now().UTC()
	var updated *entity.Product
	err := uc.tx.Run(ctx, func(s repository.Stores) error {
		p, err := s.Products.GetByID(id)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		if in.SKU != nil && !strings.EqualFold(*in.SKU, p.SKU) {
			other, err := s.Products.GetBySKU(*in.SKU)
			if err != nil {
				return err
			}
			if other != nil {
				return fmt.Errorf("%w: SKU %s ya registrado", domain.ErrDuplicate, *in.SKU)
			}
		}
		// la bitácora usa el SKU previo a la edición
		prevSKU := p.SKU
		toPatch(in).Apply(p, now)
		if err := s.Products.Update(p); err != nil {
			return err
		}
		updated = p
		return s.Audit.Prepend(audit.NewEntry(entity.AuditUpdateAsset, fmt.Sprintf("Product %s updated.", prevSKU), op, now))
	})
	if err != nil {
		return nil, err
	}
	out := ToProductResponse(updated)
	return &out, nil
}

// Delete elimina el producto sin tocar movimientos ni documentos que lo referencian.
func (uc *CatalogUseCase) Delete(ctx context.Context, op entity.Operator, id string) error {
	now := uc.now().UTC()
	var sku string
	err := uc.tx.Run(ctx, func(s repository.Stores) error {
		p, err := s.Products.GetByID(id)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		sku = p.SKU
		if err := s.Products.Delete(id); err != nil {
			return err
		}
		return s.Audit.Prepend(audit.NewEntry(entity.AuditDeleteAsset, fmt.Sprintf("Product %s removed.", sku), op, now))
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("sku", sku).Str("user", op.Username).Msg("producto eliminado del catálogo")
	return nil
}

// QuickRestock suma qty unidades al producto sin pasar por un documento.
func (uc *CatalogUseCase) QuickRestock(ctx context.Context, op entity.Operator, id string, qty int64) (*dto.ProductResponse, error) {
	if qty <= 0 {
		return nil, fmt.Errorf("%w: la cantidad debe ser positiva", domain.ErrInvalidInput)
	}
	now := uc.now().UTC()
	var updated *entity.Product
	err := uc.tx.Run(ctx, func(s repository.Stores) error {
		if err := s.Products.ApplyQuantityDelta(id, qty, now); err != nil {
			return err
		}
		p, err := s.Products.GetByID(id)
		if err != nil {
			return err
		}
		updated = p
		return s.Audit.Prepend(audit.NewEntry(entity.AuditQuickRestock,
			fmt.Sprintf("Restocked %s by %d units.", p.SKU, qty), op, now))
	})
	if err != nil {
		return nil, err
	}
	out := ToProductResponse(updated)
	return &out, nil
}

// GetByID devuelve un producto o ErrNotFound.
func (uc *CatalogUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	var p *entity.Product
	err := uc.tx.View(ctx, func(s repository.Stores) error {
		var err error
		p, err = s.Products.GetByID(id)
		return err
	})
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	out := ToProductResponse(p)
	return &out, nil
}

// List devuelve el catálogo filtrado, más reciente primero.
func (uc *CatalogUseCase) List(ctx context.Context, f repository.ProductFilter) ([]dto.ProductResponse, error) {
	products, err := uc.Snapshot(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, ToProductResponse(p))
	}
	return out, nil
}

// Snapshot copia del catálogo para lectores externos (analítica, IA).
func (uc *CatalogUseCase) Snapshot(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	var products []*entity.Product
	err := uc.tx.View(ctx, func(s repository.Stores) error {
		var err error
		products, err = s.Products.List(f)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("catalog: listar: %w", err)
	}
	return products, nil
}

// Categories categorías distintas del catálogo, en orden de aparición.
func (uc *CatalogUseCase) Categories(ctx context.Context) ([]string, error) {
	products, err := uc.Snapshot(ctx, repository.ProductFilter{})
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	out := make([]string, 0)
	for _, p := range products {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		out = append(out, p.Category)
	}
	return out, nil
}

// Valuation Σ purchasePrice × quantity del catálogo.
func Valuation(products []*entity.Product) decimal.Decimal {
	total := decimal.Zero
	for _, p := range products {
		total = total.Add(p.PurchasePrice.Mul(decimal.NewFromInt(p.Quantity)))
	}
	return total
}
