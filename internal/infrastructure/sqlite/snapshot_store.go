// Package sqlite guarda las colecciones serializadas en un archivo SQLite local:
// una fila por clave en la tabla app_state, equivalente al almacenamiento local del navegador.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/jhoicas/invenpro-api/internal/domain/repository"
)

var _ repository.SnapshotStore = (*SnapshotStore)(nil)

// SnapshotStore almacén clave/valor sobre SQLite. Las claves se guardan con el prefijo namespace.
type SnapshotStore struct {
	db        *sql.DB
	namespace string
}

// New abre (o crea) la base en path. Usar ":memory:" para una base en memoria.
func New(path, namespace string) (*SnapshotStore, error) {
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("sqlite: crear directorio: %w", err)
			}
		}
	}
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("sqlite: abrir base: %w", err)
	}
	// un solo escritor; además ":memory:" es por conexión
	db.SetMaxOpenConns(1)

	s := &SnapshotStore{db: db, namespace: namespace}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: migrar: %w", err)
	}
	return s, nil
}

// Close cierra la conexión.
func (s *SnapshotStore) Close() error {
	return s.db.Close()
}

func (s *SnapshotStore) migrate() error {
	_, err := s.db.Exec(`
	CREATE TABLE IF NOT EXISTS app_state (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);`)
	return err
}

// Load devuelve las colecciones presentes, sin el prefijo de namespace.
func (s *SnapshotStore) Load(ctx context.Context) (map[string][]byte, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM app_state WHERE substr(key, 1, length(?1)) = ?1`, s.namespace)
	if err != nil {
		return nil, fmt.Errorf("sqlite: leer app_state: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]byte)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("sqlite: scan: %w", err)
		}
		out[strings.TrimPrefix(key, s.namespace)] = []byte(value)
	}
	return out, rows.Err()
}

// Save reemplaza el blob de la colección.
func (s *SnapshotStore) Save(ctx context.Context, key string, blob []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO app_state (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		s.namespace+key, string(blob), time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("sqlite: guardar %s: %w", key, err)
	}
	return nil
}
