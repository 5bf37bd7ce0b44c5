package billing

import (
	"context"
	"fmt"
	"sync"

	"github.com/jhoicas/invenpro-api/internal/application/dto"
	"github.com/jhoicas/invenpro-api/internal/application/ports"
	"github.com/jhoicas/invenpro-api/internal/domain"
	"github.com/jhoicas/invenpro-api/internal/domain/entity"
	"github.com/jhoicas/invenpro-api/internal/domain/repository"
)

// WorkspaceUseCase mantiene un borrador por operador y lo confirma con CommitDocumentUseCase.
type WorkspaceUseCase struct {
	tx     ports.TxRunner
	commit *CommitDocumentUseCase

	mu     sync.Mutex
	drafts map[string]*Draft
}

// NewWorkspaceUseCase construye el espacio de facturación.
func NewWorkspaceUseCase(tx ports.TxRunner, commit *CommitDocumentUseCase) *WorkspaceUseCase {
	return &WorkspaceUseCase{
		tx:     tx,
		commit: commit,
		drafts: make(map[string]*Draft),
	}
}

// draftLocked devuelve el borrador del operador creándolo si no existe. Requiere mu.
func (uc *WorkspaceUseCase) draftLocked(op entity.Operator) *Draft {
	d, ok := uc.drafts[op.Username]
	if !ok {
		d = NewDraft()
		uc.drafts[op.Username] = d
	}
	return d
}

// Get estado actual del borrador.
func (uc *WorkspaceUseCase) Get(op entity.Operator) dto.DraftResponse {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return ToDraftResponse(uc.draftLocked(op))
}

// SetHeader actualiza la cabecera. Con PartnerID copia nombre, contacto, GSTIN y dirección
// desde el directorio; los campos enviados explícitamente tienen prioridad.
func (uc *WorkspaceUseCase) SetHeader(ctx context.Context, op entity.Operator, in dto.DraftHeaderRequest) (*dto.DraftResponse, error) {
	t := entity.DocumentType(in.DocType)
	if !t.Valid() {
		return nil, fmt.Errorf("%w: tipo de documento %q", domain.ErrInvalidInput, in.DocType)
	}
	if in.PaymentStatus != "" && !entity.ValidPaymentStatus(in.PaymentStatus) {
		return nil, fmt.Errorf("%w: estado de pago %q", domain.ErrInvalidInput, in.PaymentStatus)
	}

	var partner *entity.Partner
	if in.PartnerID != "" {
		err := uc.tx.View(ctx, func(s repository.Stores) error {
			var err error
			partner, err = s.Partners.GetByID(in.PartnerID)
			return err
		})
		if err != nil {
			return nil, err
		}
		if partner == nil {
			return nil, domain.ErrNotFound
		}
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()
	d := uc.draftLocked(op)
	if d.DocType != t {
		// cambiar de modo vacía el carrito: precios y topes de stock dependen del tipo
		d.Items = nil
	}
	d.DocType = t
	if partner != nil {
		d.PartnerName, d.PartnerContact, d.GSTIN, d.BillingAddress = partner.Name, partner.Contact, partner.GSTIN, partner.Address
	}
	setIfNotEmpty(&d.PartnerName, in.PartnerName)
	setIfNotEmpty(&d.PartnerContact, in.PartnerContact)
	setIfNotEmpty(&d.GSTIN, in.GSTIN)
	setIfNotEmpty(&d.BillingAddress, in.BillingAddress)
	setIfNotEmpty(&d.PaymentStatus, in.PaymentStatus)
	setIfNotEmpty(&d.VehicleNo, in.VehicleNo)
	setIfNotEmpty(&d.Notes, in.Notes)
	if in.DiscountPercentage != nil {
		d.DiscountPercentage = *in.DiscountPercentage
	}
	if in.TaxRate != nil {
		d.TaxRate = *in.TaxRate
	}
	out := ToDraftResponse(d)
	return &out, nil
}

func setIfNotEmpty(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// AddItem agrega una unidad del producto al borrador.
func (uc *WorkspaceUseCase) AddItem(ctx context.Context, op entity.Operator, productID string) (*dto.DraftResponse, error) {
	var p *entity.Product
	err := uc.tx.View(ctx, func(s repository.Stores) error {
		var err error
		p, err = s.Products.GetByID(productID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()
	d := uc.draftLocked(op)
	if err := d.AddItem(p); err != nil {
		return nil, err
	}
	out := ToDraftResponse(d)
	return &out, nil
}

// UpdateLine ajusta cantidad (delta) y/o precio de una línea.
func (uc *WorkspaceUseCase) UpdateLine(op entity.Operator, productID string, in dto.DraftLineUpdateRequest) (*dto.DraftResponse, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	d := uc.draftLocked(op)
	if in.Delta != nil {
		if err := d.UpdateQuantity(productID, *in.Delta); err != nil {
			return nil, err
		}
	}
	if in.Price != nil {
		if err := d.SetPrice(productID, *in.Price); err != nil {
			return nil, err
		}
	}
	out := ToDraftResponse(d)
	return &out, nil
}

// RemoveItem quita la línea del producto.
func (uc *WorkspaceUseCase) RemoveItem(op entity.Operator, productID string) (*dto.DraftResponse, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	d := uc.draftLocked(op)
	if err := d.Remove(productID); err != nil {
		return nil, err
	}
	out := ToDraftResponse(d)
	return &out, nil
}

// Reset descarta el borrador.
func (uc *WorkspaceUseCase) Reset(op entity.Operator) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	delete(uc.drafts, op.Username)
}

// Commit confirma el borrador y, si tiene éxito, lo descarta.
// Si el commit falla el borrador queda intacto para corregirlo.
func (uc *WorkspaceUseCase) Commit(ctx context.Context, op entity.Operator) (*dto.CommitDocumentResponse, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	d := uc.draftLocked(op)
	if err := d.Validate(); err != nil {
		return nil, err
	}
	out, err := uc.commit.CommitDraft(ctx, op, d)
	if err != nil {
		return nil, err
	}
	delete(uc.drafts, op.Username)
	return out, nil
}
