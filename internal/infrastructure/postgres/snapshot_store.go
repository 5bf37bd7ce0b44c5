package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/invenpro-api/internal/domain/entity"
	"github.com/jhoicas/invenpro-api/internal/domain/repository"
)

var (
	_ repository.SnapshotStore = (*SnapshotStore)(nil)
	_ repository.DocumentIndex = (*SnapshotStore)(nil)
)

// SnapshotStore guarda cada colección como JSONB en app_state. Además replica el
// libro de documentos en document_index para consultas contables con SQL.
type SnapshotStore struct {
	pool      *pgxpool.Pool
	namespace string
}

// NewSnapshotStore construye el adaptador y crea las tablas si no existen.
func NewSnapshotStore(ctx context.Context, pool *pgxpool.Pool, namespace string) (*SnapshotStore, error) {
	s := &SnapshotStore{pool: pool, namespace: namespace}
	if err := s.migrate(ctx); err != nil {
		return nil, fmt.Errorf("postgres: migrar: %w", err)
	}
	return s, nil
}

func (s *SnapshotStore) migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
	CREATE TABLE IF NOT EXISTS app_state (
		key        TEXT PRIMARY KEY,
		value      JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	CREATE TABLE IF NOT EXISTS document_index (
		namespace      TEXT NOT NULL,
		id             TEXT NOT NULL,
		doc_no         TEXT NOT NULL,
		doc_type       TEXT NOT NULL,
		partner_name   TEXT NOT NULL,
		payment_status TEXT NOT NULL,
		subtotal       NUMERIC(14,2) NOT NULL,
		tax            NUMERIC(14,2) NOT NULL,
		total          NUMERIC(14,2) NOT NULL,
		issued_at      TIMESTAMPTZ NOT NULL,
		PRIMARY KEY (namespace, id)
	);`)
	return err
}

// Load devuelve las colecciones presentes, sin el prefijo de namespace.
func (s *SnapshotStore) Load(ctx context.Context) (map[string][]byte, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT key, value::text FROM app_state WHERE starts_with(key, $1)`, s.namespace)
	if err != nil {
		return nil, fmt.Errorf("leer app_state: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]byte)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan app_state: %w", err)
		}
		out[strings.TrimPrefix(key, s.namespace)] = []byte(value)
	}
	return out, rows.Err()
}

// Save reemplaza el blob; para el libro de documentos también refresca document_index
// dentro de la misma transacción.
func (s *SnapshotStore) Save(ctx context.Context, key string, blob []byte) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO app_state (key, value, updated_at) VALUES ($1, $2::jsonb, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		s.namespace+key, string(blob))
	if err != nil {
		return fmt.Errorf("guardar %s: %w", key, err)
	}

	if key == repository.KeyDocs {
		if err := s.indexDocuments(ctx, tx, blob); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// indexDocuments inserta los documentos que aún no están en document_index.
// El libro es de solo inserción, así que los existentes no cambian y no se reenvían.
func (s *SnapshotStore) indexDocuments(ctx context.Context, tx pgx.Tx, blob []byte) error {
	var docs []entity.Document
	if err := json.Unmarshal(blob, &docs); err != nil {
		return fmt.Errorf("decodificar documentos: %w", err)
	}
	if len(docs) == 0 {
		return nil
	}

	ids := make([]string, len(docs))
	for i, d := range docs {
		ids[i] = d.ID
	}
	rows, err := tx.Query(ctx,
		`SELECT id FROM document_index WHERE namespace = $1 AND id = ANY($2)`, s.namespace, ids)
	if err != nil {
		return fmt.Errorf("leer document_index: %w", err)
	}
	indexed, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return fmt.Errorf("scan document_index: %w", err)
	}

	pending := unindexed(docs, indexed)
	if len(pending) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, d := range pending {
		batch.Queue(`
			INSERT INTO document_index
				(namespace, id, doc_no, doc_type, partner_name, payment_status, subtotal, tax, total, issued_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			ON CONFLICT (namespace, id) DO NOTHING`,
			s.namespace, d.ID, d.DocNo, string(d.DocType), d.PartnerName, d.PaymentStatus,
			d.Subtotal, d.Tax, d.Total, d.Timestamp)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("indexar documentos: %w", err)
	}
	return nil
}

// unindexed filtra los documentos cuyo id no figura en indexed, conservando el orden.
func unindexed(docs []entity.Document, indexed []string) []entity.Document {
	seen := make(map[string]struct{}, len(indexed))
	for _, id := range indexed {
		seen[id] = struct{}{}
	}
	var out []entity.Document
	for _, d := range docs {
		if _, ok := seen[d.ID]; ok {
			continue
		}
		seen[d.ID] = struct{}{}
		out = append(out, d)
	}
	return out
}

// TotalsByType agrega document_index por tipo (resumen para declaración de impuestos).
func (s *SnapshotStore) TotalsByType(ctx context.Context) ([]repository.DocTypeTotal, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT doc_type, COUNT(*), COALESCE(SUM(subtotal), 0), COALESCE(SUM(tax), 0), COALESCE(SUM(total), 0)
		FROM document_index WHERE namespace = $1
		GROUP BY doc_type ORDER BY doc_type`, s.namespace)
	if err != nil {
		if isUndefinedTable(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("totales por tipo: %w", err)
	}
	defer rows.Close()

	var out []repository.DocTypeTotal
	for rows.Next() {
		var t repository.DocTypeTotal
		var docType string
		if err := rows.Scan(&docType, &t.Count, &t.Subtotal, &t.Tax, &t.Total); err != nil {
			return nil, fmt.Errorf("scan totales: %w", err)
		}
		t.DocType = entity.DocumentType(docType)
		out = append(out, t)
	}
	return out, rows.Err()
}
