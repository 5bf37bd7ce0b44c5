package repository

import "github.com/jhoicas/invenpro-api/internal/domain/entity"

// DocumentFilter criterios de listado del libro de documentos.
type DocumentFilter struct {
	DocType entity.DocumentType
	Search  string // número de documento o contraparte
}

// DocumentRepository puerto del libro de documentos (solo inserción, más reciente primero).
type DocumentRepository interface {
	Prepend(doc *entity.Document) error
	GetByID(id string) (*entity.Document, error)
	GetByDocNo(docNo string) (*entity.Document, error)
	List(filter DocumentFilter) ([]*entity.Document, error)
	// MaxSeqByPrefix mayor sufijo numérico entre los números que empiezan por prefix (0 si no hay).
	MaxSeqByPrefix(prefix string) (int, error)
}
