package billing

import (
	"context"

	"github.com/jhoicas/invenpro-api/internal/domain/entity"
)

// DocumentPDFGenerator puerto de salida para la representación imprimible de un documento.
// La implementación vive en infrastructure/pdf.
type DocumentPDFGenerator interface {
	GenerateDocumentPDF(ctx context.Context, doc *entity.Document) ([]byte, error)
}
