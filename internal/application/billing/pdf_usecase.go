package billing

import (
	"context"
	"fmt"
	"strings"
)

// PDFUseCase genera la representación imprimible de un documento confirmado.
type PDFUseCase struct {
	history   *HistoryUseCase
	generator DocumentPDFGenerator
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(history *HistoryUseCase, generator DocumentPDFGenerator) *PDFUseCase {
	return &PDFUseCase{history: history, generator: generator}
}

// DownloadDocumentPDF recupera el documento y genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si el documento no existe.
func (uc *PDFUseCase) DownloadDocumentPDF(ctx context.Context, id string) (pdfBytes []byte, filename string, err error) {
	doc, err := uc.history.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err = uc.generator.GenerateDocumentPDF(ctx, doc)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	filename = fmt.Sprintf("%s_%s.pdf", strings.ToLower(string(doc.DocType)), strings.ReplaceAll(doc.DocNo, "/", "-"))
	return pdfBytes, filename, nil
}
