// Package audit expone la bitácora de acciones del operador.
package audit

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/invenpro-api/internal/application/dto"
	"github.com/jhoicas/invenpro-api/internal/application/ports"
	"github.com/jhoicas/invenpro-api/internal/domain/entity"
	"github.com/jhoicas/invenpro-api/internal/domain/repository"
)

// ExportHeaders columnas de la exportación de la bitácora.
var ExportHeaders = []string{"Timestamp", "Action", "Details", "User"}

// NewEntry construye una entrada firmada por el operador.
func NewEntry(action, details string, op entity.Operator, now time.Time) *entity.AuditLogEntry {
	return &entity.AuditLogEntry{
		ID:        uuid.NewString(),
		Action:    action,
		Details:   details,
		User:      op.Actor(),
		Timestamp: now,
	}
}

// UseCase casos de uso de lectura y registro de la bitácora.
type UseCase struct {
	tx    ports.TxRunner
	sheet ports.SpreadsheetWriter
	now   func() time.Time
}

// NewAuditUseCase construye el caso de uso. sheet puede ser nil si no se exporta XLSX.
func NewAuditUseCase(tx ports.TxRunner, sheet ports.SpreadsheetWriter) *UseCase {
	return &UseCase{tx: tx, sheet: sheet, now: time.Now}
}

// Record agrega una entrada como unidad propia (ej. inicio de sesión).
func (uc *UseCase) Record(ctx context.Context, action, details string, op entity.Operator) error {
	entry := NewEntry(action, details, op, uc.now().UTC())
	return uc.tx.Run(ctx, func(s repository.Stores) error {
		return s.Audit.Prepend(entry)
	})
}

// List devuelve las entradas más recientes primero. limit <= 0 = todas.
func (uc *UseCase) List(ctx context.Context, limit int) ([]dto.AuditLogResponse, error) {
	var entries []*entity.AuditLogEntry
	err := uc.tx.View(ctx, func(s repository.Stores) error {
		var err error
		entries, err = s.Audit.List(limit)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("audit: listar: %w", err)
	}
	out := make([]dto.AuditLogResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.AuditLogResponse{
			ID:        e.ID,
			Action:    e.Action,
			Details:   e.Details,
			User:      e.User,
			Timestamp: e.Timestamp,
		})
	}
	return out, nil
}

func (uc *UseCase) rows(ctx context.Context) ([][]string, error) {
	entries, err := uc.List(ctx, 0)
	if err != nil {
		return nil, err
	}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{e.Timestamp.Format(time.RFC3339), e.Action, e.Details, e.User})
	}
	return rows, nil
}

// ExportCSV escribe la bitácora completa como CSV.
func (uc *UseCase) ExportCSV(ctx context.Context, w io.Writer) error {
	rows, err := uc.rows(ctx)
	if err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(ExportHeaders); err != nil {
		return err
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("audit: escribir csv: %w", err)
	}
	return nil
}

// ExportXLSX escribe la bitácora completa como libro de Excel.
func (uc *UseCase) ExportXLSX(ctx context.Context) ([]byte, error) {
	if uc.sheet == nil {
		return nil, fmt.Errorf("audit: exportación XLSX no configurada")
	}
	rows, err := uc.rows(ctx)
	if err != nil {
		return nil, err
	}
	table := make([][]interface{}, 0, len(rows))
	for _, r := range rows {
		table = append(table, []interface{}{r[0], r[1], r[2], r[3]})
	}
	var buf bytes.Buffer
	if err := uc.sheet.WriteTable(&buf, "Audit", ExportHeaders, table); err != nil {
		return nil, fmt.Errorf("audit: escribir xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
