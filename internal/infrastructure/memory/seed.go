package memory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/invenpro-api/internal/domain/entity"
)

// Seed valores iniciales para las colecciones que no existen en el almacenamiento.
type Seed struct {
	Products []entity.Product
	Partners []entity.Partner
}

// DefaultSeed catálogo y directorio de demostración.
func DefaultSeed(now time.Time) Seed {
	product := func(name, sku, hsn, brand, category, uom string, qty, minStock, maxStock int64, buy, sell string, wh string) entity.Product {
		return entity.Product{
			ID:            uuid.NewString(),
			Name:          name,
			SKU:           sku,
			HSNCode:       hsn,
			Brand:         brand,
			Category:      category,
			UOM:           uom,
			Quantity:      qty,
			MinStock:      minStock,
			MaxStock:      maxStock,
			PurchasePrice: decimal.RequireFromString(buy),
			SellingPrice:  decimal.RequireFromString(sell),
			WarehouseID:   wh,
			LastUpdated:   now,
		}
	}
	return Seed{
		Products: []entity.Product{
			product("LED Panel Light 18W", "LED-PNL-18", "94054090", "Philips", "Lighting", entity.UOMPieces, 120, 25, 500, "310", "450", "WH-01"),
			product("Copper Wire 2.5mm (90m)", "CW-25-90", "85444999", "Havells", "Electrical", entity.UOMBox, 18, 20, 200, "1850", "2390", "WH-01"),
			product("Modular Switch 6A", "MSW-6A", "85365090", "Anchor", "Electrical", entity.UOMPieces, 640, 100, 2000, "42", "65", "WH-02"),
			product("Ceiling Fan 1200mm", "CF-1200", "84145110", "Crompton", "Appliances", entity.UOMUnits, 4, 5, 60, "1750", "2490", "WH-03"),
		},
		Partners: []entity.Partner{
			{ID: uuid.NewString(), Name: "Bharat Electricals Pvt Ltd", Type: entity.PartnerSupplier, Contact: "+91 98200 11223", Email: "sales@bharatelec.in", GSTIN: "27AABCB1234F1Z5", Address: "Lamington Road, Mumbai"},
			{ID: uuid.NewString(), Name: "Sharma Constructions", Type: entity.PartnerCustomer, Contact: "+91 98111 44556", Email: "accounts@sharmacon.in", GSTIN: "07AAFCS9876K1Z2", Address: "Okhla Phase II, New Delhi"},
		},
	}
}
