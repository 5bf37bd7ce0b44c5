// Package cache implementa el caché de insights de IA sobre Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/invenpro-api/internal/application/ports"
	"github.com/jhoicas/invenpro-api/internal/domain/entity"
)

var _ ports.InsightCache = (*InsightCache)(nil)

// InsightCache guarda la lista de insights bajo prefix+huella del catálogo.
type InsightCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// New crea el caché. ttl 0 deja las claves sin expiración.
func New(client *redis.Client, prefix string, ttl time.Duration) *InsightCache {
	return &InsightCache{client: client, prefix: prefix, ttl: ttl}
}

// Get devuelve (insights, true, nil) en un acierto y (nil, false, nil) si la clave no existe.
func (c *InsightCache) Get(ctx context.Context, key string) ([]entity.Insight, bool, error) {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("cache: get: %w", err)
	}
	var out []entity.Insight
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, false, fmt.Errorf("cache: unmarshal: %w", err)
	}
	return out, true, nil
}

// Set guarda los insights con el TTL configurado.
func (c *InsightCache) Set(ctx context.Context, key string, insights []entity.Insight) error {
	data, err := json.Marshal(insights)
	if err != nil {
		return fmt.Errorf("cache: marshal: %w", err)
	}
	if err := c.client.Set(ctx, c.prefix+key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache: set: %w", err)
	}
	return nil
}
