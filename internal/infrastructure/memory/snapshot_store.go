package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/invenpro-api/internal/domain/repository"
)

var _ repository.SnapshotStore = (*SnapshotStore)(nil)

// SnapshotStore almacén clave/valor en memoria (desarrollo y tests).
type SnapshotStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
	saves int
}

// NewSnapshotStore construye un almacén vacío.
func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{blobs: make(map[string][]byte)}
}

func (s *SnapshotStore) Load(_ context.Context) (map[string][]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string][]byte, len(s.blobs))
	for k, v := range s.blobs {
		out[k] = append([]byte(nil), v...)
	}
	return out, nil
}

func (s *SnapshotStore) Save(_ context.Context, key string, blob []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[key] = append([]byte(nil), blob...)
	s.saves++
	return nil
}

// Saves número de escrituras realizadas.
func (s *SnapshotStore) Saves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}
