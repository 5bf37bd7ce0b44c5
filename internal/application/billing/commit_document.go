package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/invenpro-api/internal/application/dto"
	"github.com/jhoicas/invenpro-api/internal/application/ports"
	"github.com/jhoicas/invenpro-api/internal/domain"
	domainbilling "github.com/jhoicas/invenpro-api/internal/domain/billing"
	"github.com/jhoicas/invenpro-api/internal/domain/entity"
	"github.com/jhoicas/invenpro-api/internal/domain/inventory"
	"github.com/jhoicas/invenpro-api/internal/domain/repository"
)

// CommitDocumentUseCase confirma un documento: asigna id, fecha y número, y aplica el
// motor de conciliación. Catálogo, movimientos, documento y bitácora se publican juntos.
type CommitDocumentUseCase struct {
	tx  ports.TxRunner
	log zerolog.Logger
	now func() time.Time
}

// NewCommitDocumentUseCase construye el caso de uso.
func NewCommitDocumentUseCase(tx ports.TxRunner, log zerolog.Logger) *CommitDocumentUseCase {
	return &CommitDocumentUseCase{tx: tx, log: log, now: time.Now}
}

// Commit valida la solicitud y la confirma.
func (uc *CommitDocumentUseCase) Commit(ctx context.Context, op entity.Operator, in dto.CommitDocumentRequest) (*dto.CommitDocumentResponse, error) {
	taxRate := domainbilling.DefaultTaxRate
	if in.TaxRate != nil {
		taxRate = *in.TaxRate
	}
	payment := in.PaymentStatus
	if payment == "" {
		payment = entity.PaymentPaid
	}

	items := make([]entity.LineItem, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, entity.LineItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			HSN:       it.HSN,
			Quantity:  it.Quantity,
			Price:     it.Price,
			UOM:       it.UOM,
		})
	}
	doc := &entity.Document{
		DocType:            entity.DocumentType(in.DocType),
		PartnerName:        strings.TrimSpace(in.PartnerName),
		PartnerContact:     in.PartnerContact,
		GSTIN:              in.GSTIN,
		BillingAddress:     in.BillingAddress,
		PaymentStatus:      payment,
		DiscountPercentage: in.DiscountPercentage,
		TaxRate:            taxRate,
		VehicleNo:          in.VehicleNo,
		Notes:              in.Notes,
		Items:              items,
	}
	return uc.commit(ctx, op, doc)
}

// CommitDraft confirma el borrador del espacio de facturación.
func (uc *CommitDocumentUseCase) CommitDraft(ctx context.Context, op entity.Operator, d *Draft) (*dto.CommitDocumentResponse, error) {
	doc := &entity.Document{
		DocType:            d.DocType,
		PartnerName:        strings.TrimSpace(d.PartnerName),
		PartnerContact:     d.PartnerContact,
		GSTIN:              d.GSTIN,
		BillingAddress:     d.BillingAddress,
		PaymentStatus:      d.PaymentStatus,
		DiscountPercentage: d.DiscountPercentage,
		TaxRate:            d.TaxRate,
		VehicleNo:          d.VehicleNo,
		Notes:              d.Notes,
		Items:              append([]entity.LineItem(nil), d.Items...),
	}
	return uc.commit(ctx, op, doc)
}

func (uc *CommitDocumentUseCase) commit(ctx context.Context, op entity.Operator, doc *entity.Document) (*dto.CommitDocumentResponse, error) {
	if err := validateHeader(doc.DocType, doc.PartnerName, doc.PaymentStatus, doc.DiscountPercentage, doc.TaxRate, doc.Items); err != nil {
		return nil, err
	}

	now := uc.now().UTC()
	doc.ID = uuid.NewString()
	doc.Timestamp = now
	totals := domainbilling.ComputeTotals(doc.Items, doc.DiscountPercentage, doc.TaxRate)
	doc.Subtotal, doc.Tax, doc.Total = totals.Subtotal, totals.Tax, totals.Total

	var res inventory.Result
	err := uc.tx.Run(ctx, func(s repository.Stores) error {
		prefix := domainbilling.DocNoPrefix(doc.DocType, now.Year())
		seq, err := s.Documents.MaxSeqByPrefix(prefix)
		if err != nil {
			return err
		}
		// el libro puede traer números de otro formato: se avanza hasta uno libre
		for {
			seq++
			doc.DocNo = domainbilling.FormatDocNo(doc.DocType, now.Year(), seq)
			taken, err := s.Documents.GetByDocNo(doc.DocNo)
			if err != nil {
				return err
			}
			if taken == nil {
				break
			}
		}

		catalog, err := s.Products.List(repository.ProductFilter{})
		if err != nil {
			return err
		}
		if err := fillLines(doc, catalog); err != nil {
			return err
		}

		res = inventory.ApplyDocument(doc, catalog, inventory.Options{Now: now, Actor: op.Actor()})
		for _, p := range res.Updated {
			if err := s.Products.Update(p); err != nil {
				return err
			}
		}
		if err := s.Movements.Prepend(res.Movements...); err != nil {
			return err
		}
		if err := s.Documents.Prepend(doc); err != nil {
			return err
		}
		return s.Audit.Prepend(res.Audit)
	})
	if err != nil {
		return nil, err
	}

	out := &dto.CommitDocumentResponse{
		Document:         ToDocumentResponse(doc),
		MovementsCreated: len(res.Movements),
	}
	for _, it := range res.Skipped {
		out.SkippedItems = append(out.SkippedItems, it.ProductID)
		uc.log.Warn().
			Str("doc_no", doc.DocNo).
			Str("product_id", it.ProductID).
			Msg("línea sin producto en el catálogo: no se generó movimiento")
	}
	uc.log.Info().
		Str("doc_no", doc.DocNo).
		Str("doc_type", string(doc.DocType)).
		Int("movements", len(res.Movements)).
		Str("total", doc.Total.StringFixed(2)).
		Msg("documento confirmado")
	return out, nil
}

// fillLines completa nombre, HSN y unidad desde el catálogo cuando la línea no los trae,
// y en documentos que descuentan stock rechaza cantidades mayores a la existencia.
func fillLines(doc *entity.Document, catalog []*entity.Product) error {
	byID := make(map[string]*entity.Product, len(catalog))
	for _, p := range catalog {
		byID[p.ID] = p
	}
	requested := make(map[string]int64)
	for i := range doc.Items {
		it := &doc.Items[i]
		p, ok := byID[it.ProductID]
		if !ok {
			continue
		}
		if it.Name == "" {
			it.Name = p.Name
		}
		if it.HSN == "" {
			it.HSN = p.HSNCode
		}
		if it.UOM == "" {
			it.UOM = p.UOM
		}
		requested[p.ID] += it.Quantity
	}
	if !inventory.IsStockReducing(doc.DocType) {
		return nil
	}
	for id, qty := range requested {
		if p := byID[id]; qty > p.Quantity {
			return fmt.Errorf("%w: %s tiene %d, el documento pide %d", domain.ErrInsufficientStock, p.SKU, p.Quantity, qty)
		}
	}
	return nil
}
