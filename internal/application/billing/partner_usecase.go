package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/invenpro-api/internal/application/audit"
	"github.com/jhoicas/invenpro-api/internal/application/dto"
	"github.com/jhoicas/invenpro-api/internal/application/ports"
	"github.com/jhoicas/invenpro-api/internal/domain"
	"github.com/jhoicas/invenpro-api/internal/domain/entity"
	"github.com/jhoicas/invenpro-api/internal/domain/repository"
)

// PartnerUseCase directorio de proveedores y clientes. No hay operación de edición.
type PartnerUseCase struct {
	tx  ports.TxRunner
	now func() time.Time
}

// NewPartnerUseCase construye el caso de uso.
func NewPartnerUseCase(tx ports.TxRunner) *PartnerUseCase {
	return &PartnerUseCase{tx: tx, now: time.Now}
}

// Create registra un partner.
func (uc *PartnerUseCase) Create(ctx context.Context, op entity.Operator, in dto.CreatePartnerRequest) (*dto.PartnerResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: el nombre es obligatorio", domain.ErrInvalidInput)
	}
	if in.Type != entity.PartnerSupplier && in.Type != entity.PartnerCustomer {
		return nil, fmt.Errorf("%w: tipo de partner %q", domain.ErrInvalidInput, in.Type)
	}
	p := &entity.Partner{
		ID:      uuid.NewString(),
		Name:    name,
		Type:    in.Type,
		Contact: strings.TrimSpace(in.Contact),
		Email:   strings.TrimSpace(in.Email),
		GSTIN:   strings.ToUpper(strings.TrimSpace(in.GSTIN)),
		Address: strings.TrimSpace(in.Address),
	}
	now := uc.now().UTC()
	err := uc.tx.Run(ctx, func(s repository.Stores) error {
		if err := s.Partners.Create(p); err != nil {
			return err
		}
		return s.Audit.Prepend(audit.NewEntry(entity.AuditPartnerCreate,
			fmt.Sprintf("Registered %s %s.", strings.ToLower(p.Type), p.Name), op, now))
	})
	if err != nil {
		return nil, err
	}
	out := ToPartnerResponse(p)
	return &out, nil
}

// Delete elimina un partner. Los documentos emitidos conservan su copia de los datos.
func (uc *PartnerUseCase) Delete(ctx context.Context, op entity.Operator, id string) error {
	now := uc.now().UTC()
	return uc.tx.Run(ctx, func(s repository.Stores) error {
		p, err := s.Partners.GetByID(id)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		if err := s.Partners.Delete(id); err != nil {
			return err
		}
		return s.Audit.Prepend(audit.NewEntry(entity.AuditPartnerDelete,
			fmt.Sprintf("Removed %s %s.", strings.ToLower(p.Type), p.Name), op, now))
	})
}

// List filtra por tipo y búsqueda sobre nombre o GSTIN.
func (uc *PartnerUseCase) List(ctx context.Context, f repository.PartnerFilter) ([]dto.PartnerResponse, error) {
	var partners []*entity.Partner
	err := uc.tx.View(ctx, func(s repository.Stores) error {
		var err error
		partners, err = s.Partners.List(f)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("partners: listar: %w", err)
	}
	out := make([]dto.PartnerResponse, 0, len(partners))
	for _, p := range partners {
		out = append(out, ToPartnerResponse(p))
	}
	return out, nil
}
