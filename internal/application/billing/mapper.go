package billing

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/invenpro-api/internal/application/dto"
	domainbilling "github.com/jhoicas/invenpro-api/internal/domain/billing"
	"github.com/jhoicas/invenpro-api/internal/domain/entity"
)

func toLineResponses(items []entity.LineItem) []dto.DocumentLineResponse {
	out := make([]dto.DocumentLineResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.DocumentLineResponse{
			ProductID: it.ProductID,
			Name:      it.Name,
			HSN:       it.HSN,
			Quantity:  it.Quantity,
			Price:     it.Price,
			UOM:       it.UOM,
			Amount:    it.Price.Mul(decimal.NewFromInt(it.Quantity)).Round(2),
		})
	}
	return out
}

func toTotalsResponse(t domainbilling.Totals) dto.TotalsResponse {
	return dto.TotalsResponse{
		Subtotal: t.Subtotal,
		Discount: t.Discount,
		Taxable:  t.Taxable,
		Tax:      t.Tax,
		Total:    t.Total,
	}
}

// ToDocumentResponse convierte un documento del libro en DTO.
func ToDocumentResponse(d *entity.Document) dto.DocumentResponse {
	return dto.DocumentResponse{
		ID:                 d.ID,
		DocType:            string(d.DocType),
		DocNo:              d.DocNo,
		PartnerName:        d.PartnerName,
		PartnerContact:     d.PartnerContact,
		GSTIN:              d.GSTIN,
		BillingAddress:     d.BillingAddress,
		PaymentStatus:      d.PaymentStatus,
		DiscountPercentage: d.DiscountPercentage,
		TaxRate:            d.TaxRate,
		Subtotal:           d.Subtotal,
		Tax:                d.Tax,
		Total:              d.Total,
		Timestamp:          d.Timestamp,
		VehicleNo:          d.VehicleNo,
		Notes:              d.Notes,
		Items:              toLineResponses(d.Items),
	}
}

// ToDraftResponse convierte el borrador en DTO con sus totales.
func ToDraftResponse(d *Draft) dto.DraftResponse {
	return dto.DraftResponse{
		DocType:            string(d.DocType),
		PartnerName:        d.PartnerName,
		PartnerContact:     d.PartnerContact,
		GSTIN:              d.GSTIN,
		BillingAddress:     d.BillingAddress,
		PaymentStatus:      d.PaymentStatus,
		DiscountPercentage: d.DiscountPercentage,
		TaxRate:            d.TaxRate,
		VehicleNo:          d.VehicleNo,
		Notes:              d.Notes,
		Items:              toLineResponses(d.Items),
		Totals:             toTotalsResponse(d.Totals()),
	}
}

// ToPartnerResponse convierte un partner en DTO.
func ToPartnerResponse(p *entity.Partner) dto.PartnerResponse {
	return dto.PartnerResponse{
		ID:      p.ID,
		Name:    p.Name,
		Type:    p.Type,
		Contact: p.Contact,
		Email:   p.Email,
		GSTIN:   p.GSTIN,
		Address: p.Address,
	}
}
