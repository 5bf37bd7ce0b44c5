package billing

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/jhoicas/invenpro-api/internal/application/dto"
	"github.com/jhoicas/invenpro-api/internal/application/ports"
	"github.com/jhoicas/invenpro-api/internal/domain"
	"github.com/jhoicas/invenpro-api/internal/domain/entity"
	"github.com/jhoicas/invenpro-api/internal/domain/repository"
)

// HistoryHeaders columnas de la exportación del historial de documentos.
var HistoryHeaders = []string{"Doc No", "Date", "Partner", "Items Count", "Tax", "Total"}

// HistoryUseCase consulta y exportación del libro de documentos.
type HistoryUseCase struct {
	tx    ports.TxRunner
	sheet ports.SpreadsheetWriter
}

// NewHistoryUseCase construye el caso de uso. sheet puede ser nil si no se exporta XLSX.
func NewHistoryUseCase(tx ports.TxRunner, sheet ports.SpreadsheetWriter) *HistoryUseCase {
	return &HistoryUseCase{tx: tx, sheet: sheet}
}

func (uc *HistoryUseCase) list(ctx context.Context, f repository.DocumentFilter) ([]*entity.Document, error) {
	var docs []*entity.Document
	err := uc.tx.View(ctx, func(s repository.Stores) error {
		var err error
		docs, err = s.Documents.List(f)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("documents: listar: %w", err)
	}
	return docs, nil
}

// List documentos más recientes primero, filtrados por tipo y búsqueda.
func (uc *HistoryUseCase) List(ctx context.Context, f repository.DocumentFilter) ([]dto.DocumentResponse, error) {
	docs, err := uc.list(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DocumentResponse, 0, len(docs))
	for _, d := range docs {
		out = append(out, ToDocumentResponse(d))
	}
	return out, nil
}

// GetByID devuelve el documento o ErrNotFound.
func (uc *HistoryUseCase) GetByID(ctx context.Context, id string) (*entity.Document, error) {
	var doc *entity.Document
	err := uc.tx.View(ctx, func(s repository.Stores) error {
		var err error
		doc, err = s.Documents.GetByID(id)
		return err
	})
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	return doc, nil
}

func historyRow(d *entity.Document) []string {
	return []string{
		d.DocNo,
		d.Timestamp.Format(time.RFC3339),
		d.PartnerName,
		strconv.Itoa(len(d.Items)),
		d.Tax.StringFixed(2),
		d.Total.StringFixed(2),
	}
}

// ExportCSV escribe el historial filtrado como CSV.
func (uc *HistoryUseCase) ExportCSV(ctx context.Context, f repository.DocumentFilter, w io.Writer) error {
	docs, err := uc.list(ctx, f)
	if err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(HistoryHeaders); err != nil {
		return err
	}
	for _, d := range docs {
		if err := cw.Write(historyRow(d)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportXLSX escribe el historial filtrado como libro de Excel.
func (uc *HistoryUseCase) ExportXLSX(ctx context.Context, f repository.DocumentFilter) ([]byte, error) {
	if uc.sheet == nil {
		return nil, fmt.Errorf("documents: exportación XLSX no configurada")
	}
	docs, err := uc.list(ctx, f)
	if err != nil {
		return nil, err
	}
	rows := make([][]interface{}, 0, len(docs))
	for _, d := range docs {
		rows = append(rows, []interface{}{
			d.DocNo, d.Timestamp.Format(time.RFC3339), d.PartnerName, len(d.Items),
			d.Tax.InexactFloat64(), d.Total.InexactFloat64(),
		})
	}
	var buf bytes.Buffer
	if err := uc.sheet.WriteTable(&buf, "Documents", HistoryHeaders, rows); err != nil {
		return nil, fmt.Errorf("documents: escribir xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
