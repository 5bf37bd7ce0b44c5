package repository

import "github.com/jhoicas/invenpro-api/internal/domain/entity"

// PartnerFilter criterios de listado del directorio.
type PartnerFilter struct {
	Type   string
	Search string // nombre o GSTIN
}

// PartnerRepository puerto del directorio de proveedores y clientes.
type PartnerRepository interface {
	Create(partner *entity.Partner) error
	GetByID(id string) (*entity.Partner, error)
	List(filter PartnerFilter) ([]*entity.Partner, error)
	Delete(id string) error
}
