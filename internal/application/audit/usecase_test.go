package audit_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invenpro-api/internal/application/audit"
	"github.com/jhoicas/invenpro-api/internal/domain/entity"
	"github.com/jhoicas/invenpro-api/internal/infrastructure/memory"
)

type fakeSheet struct {
	sheet   string
	headers []string
	rows    [][]interface{}
}

func (f *fakeSheet) WriteTable(w io.Writer, sheet string, headers []string, rows [][]interface{}) error {
	f.sheet, f.headers, f.rows = sheet, headers, rows
	_, err := w.Write([]byte("xlsx"))
	return err
}

func newState(t *testing.T) *memory.State {
	t.Helper()
	st := memory.NewState(nil, zerolog.Nop())
	require.NoError(t, st.Load(context.Background(), memory.Seed{}))
	return st
}

var owner = entity.Operator{Username: "admin", Name: "Ravi", Role: entity.RoleOwner}

func TestNewEntry_FirmaConNombreYRol(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	e := audit.NewEntry(entity.AuditUserLogin, "Operator logged in", owner, now)

	assert.NotEmpty(t, e.ID)
	assert.Equal(t, "Ravi (Owner)", e.User)
	assert.Equal(t, now, e.Timestamp)

	sys := audit.NewEntry(entity.AuditBulkImport, "x", entity.Operator{}, now)
	assert.Equal(t, "System", sys.User)
}

func TestRecordYList_MasRecientePrimero(t *testing.T) {
	ctx := context.Background()
	uc := audit.NewAuditUseCase(newState(t), nil)

	require.NoError(t, uc.Record(ctx, entity.AuditUserLogin, "primero", owner))
	require.NoError(t, uc.Record(ctx, entity.AuditUserLogin, "segundo", owner))

	all, err := uc.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "segundo", all[0].Details)

	one, err := uc.List(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, one, 1)
}

func TestExportCSV_IncluyeCabecera(t *testing.T) {
	ctx := context.Background()
	uc := audit.NewAuditUseCase(newState(t), nil)
	require.NoError(t, uc.Record(ctx, entity.AuditBulkImport, "Imported 3 items via CSV file.", owner))

	var buf bytes.Buffer
	require.NoError(t, uc.ExportCSV(ctx, &buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, audit.ExportHeaders, records[0])
	assert.Equal(t, "BULK_IMPORT", records[1][1])
	assert.Equal(t, "Ravi (Owner)", records[1][3])
}

func TestExportXLSX_DelegaEnSpreadsheetWriter(t *testing.T) {
	ctx := context.Background()
	sheet := &fakeSheet{}
	uc := audit.NewAuditUseCase(newState(t), sheet)
	require.NoError(t, uc.Record(ctx, entity.AuditUserLogin, "login", owner))

	out, err := uc.ExportXLSX(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte("xlsx"), out)
	assert.Equal(t, "Audit", sheet.sheet)
	require.Len(t, sheet.rows, 1)
	assert.Equal(t, "login", sheet.rows[0][2])
}

func TestExportXLSX_SinWriterFalla(t *testing.T) {
	uc := audit.NewAuditUseCase(newState(t), nil)
	_, err := uc.ExportXLSX(context.Background())
	assert.Error(t, err)
}
