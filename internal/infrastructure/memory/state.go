// Package memory implementa el contenedor de estado explícito de la aplicación:
// los cinco libros viven en memoria, cada unidad de trabajo se aplica sobre una
// copia y se publica de forma atómica, y después se persiste en un SnapshotStore.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/invenpro-api/internal/application/ports"
	"github.com/jhoicas/invenpro-api/internal/domain/entity"
	"github.com/jhoicas/invenpro-api/internal/domain/repository"
)

var _ ports.TxRunner = (*State)(nil)

// State contenedor de estado con un único escritor a la vez.
type State struct {
	mu    sync.RWMutex
	data  *dataset
	store repository.SnapshotStore
	log   zerolog.Logger
}

// NewState construye un estado vacío. store puede ser nil (sin persistencia).
func NewState(store repository.SnapshotStore, log zerolog.Logger) *State {
	return &State{
		data:  newDataset(),
		store: store,
		log:   log,
	}
}

// Load reconstruye las colecciones desde el SnapshotStore. Las claves ausentes
// toman el valor semilla; una clave presente pero corrupta es un error.
func (s *State) Load(ctx context.Context, seed Seed) error {
	blobs := map[string][]byte{}
	if s.store != nil {
		var err error
		blobs, err = s.store.Load(ctx)
		if err != nil {
			return fmt.Errorf("cargar snapshot: %w", err)
		}
	}

	d := newDataset()
	targets := map[string]interface{}{
		repository.KeyProducts:  &d.products,
		repository.KeyMovements: &d.movements,
		repository.KeyDocs:      &d.docs,
		repository.KeyEntities:  &d.partners,
		repository.KeyAudit:     &d.audit,
	}
	for _, key := range repository.SnapshotKeys {
		blob, ok := blobs[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(blob, targets[key]); err != nil {
			return fmt.Errorf("decodificar %s: %w", key, err)
		}
	}
	if _, ok := blobs[repository.KeyProducts]; !ok {
		d.products = seed.Products
	}
	if _, ok := blobs[repository.KeyEntities]; !ok {
		d.partners = seed.Partners
	}

	s.mu.Lock()
	s.data = d
	s.mu.Unlock()

	s.log.Info().
		Int("products", len(d.products)).
		Int("movements", len(d.movements)).
		Int("docs", len(d.docs)).
		Int("partners", len(d.partners)).
		Int("audit", len(d.audit)).
		Msg("estado cargado")
	return nil
}

// Run aplica fn sobre una copia del estado. Si fn falla, la copia se descarta;
// si termina bien, la copia reemplaza al estado y las colecciones modificadas se persisten.
// Un fallo de persistencia se registra en el log y no se devuelve al llamador.
func (s *State) Run(ctx context.Context, fn func(st repository.Stores) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := s.data.clone()
	if err := fn(tx.stores()); err != nil {
		return err
	}
	s.data = tx
	s.persistLocked(ctx, tx)
	return nil
}

// View ejecuta fn con acceso de solo lectura al estado confirmado.
func (s *State) View(_ context.Context, fn func(st repository.Stores) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.data.stores())
}

// Export serializa las cinco colecciones (respaldo completo).
func (s *State) Export() (map[string][]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string][]byte, len(repository.SnapshotKeys))
	for _, key := range repository.SnapshotKeys {
		blob, err := s.data.marshal(key)
		if err != nil {
			return nil, err
		}
		out[key] = blob
	}
	return out, nil
}

func (s *State) persistLocked(ctx context.Context, d *dataset) {
	if s.store == nil || len(d.dirty) == 0 {
		return
	}
	// contexto propio: la persistencia no debe abortar porque el request terminó
	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	for _, key := range repository.SnapshotKeys {
		if !d.dirty[key] {
			continue
		}
		blob, err := d.marshal(key)
		if err == nil {
			err = s.store.Save(pctx, key, blob)
		}
		if err != nil {
			s.log.Error().Err(err).Str("key", key).Msg("no se pudo persistir la colección")
		}
	}
	d.dirty = make(map[string]bool)
}

func (d *dataset) marshal(key string) ([]byte, error) {
	// colecciones vacías se guardan como [] y no como null
	var v interface{}
	switch key {
	case repository.KeyProducts:
		v = append(make([]entity.Product, 0, len(d.products)), d.products...)
	case repository.KeyMovements:
		v = append(make([]entity.StockMovement, 0, len(d.movements)), d.movements...)
	case repository.KeyDocs:
		v = append(make([]entity.Document, 0, len(d.docs)), d.docs...)
	case repository.KeyEntities:
		v = append(make([]entity.Partner, 0, len(d.partners)), d.partners...)
	case repository.KeyAudit:
		v = append(make([]entity.AuditLogEntry, 0, len(d.audit)), d.audit...)
	default:
		return nil, fmt.Errorf("colección desconocida %q", key)
	}
	return json.Marshal(v)
}
