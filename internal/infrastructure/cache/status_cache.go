package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/credsim/bandeiras-api/internal/application/enrollment"
)

var _ enrollment.StatusCache = (*StatusCache)(nil)

// TTL curto: a consulta pública tolera até um minuto de atraso, e mudanças
// de status invalidam a entrada na hora.
const statusTTL = 60 * time.Second

// StatusCache cacheia a projeção pública da consulta de status.
type StatusCache struct {
	rdb *redis.Client
}

// NewStatusCache constrói o cache sobre o cliente Redis.
func NewStatusCache(rdb *redis.Client) *StatusCache {
	return &StatusCache{rdb: rdb}
}

func statusKey(lookup string) string {
	return "public-status:" + lookup
}

// Get devolve a projeção serializada, ou ok=false em miss (ou redis fora).
func (c *StatusCache) Get(ctx context.Context, lookup string) ([]byte, bool, error) {
	data, err := c.rdb.Get(ctx, statusKey(lookup)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get status cache: %w", err)
	}
	return data, true, nil
}

// Set grava a projeção serializada com TTL de 60s.
func (c *StatusCache) Set(ctx context.Context, lookup string, payload []byte) error {
	if err := c.rdb.Set(ctx, statusKey(lookup), payload, statusTTL).Err(); err != nil {
		return fmt.Errorf("set status cache: %w", err)
	}
	return nil
}

// Invalidate remove as entradas do cliente (por protocolo e por CNPJ) após
// mudança de status.
func (c *StatusCache) Invalidate(ctx context.Context, lookups ...string) error {
	keys := make([]string, 0, len(lookups))
	for _, l := range lookups {
		if l != "" {
			keys = append(keys, statusKey(l))
		}
	}
	if len(keys) == 0 {
		return nil
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("invalidate status cache: %w", err)
	}
	return nil
}
