package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter implementa rate limiting por janela fixa em Redis (INCR + EXPIRE).
// O contador compartilhado funciona com múltiplas réplicas da API.
type Limiter struct {
	rdb *redis.Client
}

// NewLimiter constrói o limiter sobre o cliente Redis.
func NewLimiter(rdb *redis.Client) *Limiter {
	return &Limiter{rdb: rdb}
}

// Allow consome uma requisição da janela da chave. Devolve se ainda cabe e
// quantas sobram. Erro de Redis sobe para o caller decidir (o middleware
// falha aberto).
func (l *Limiter) Allow(ctx context.Context, key string, max int, window time.Duration) (bool, int, error) {
	pipe := l.rdb.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, fmt.Errorf("rate limit incr: %w", err)
	}

	count := int(incr.Val())
	if count > max {
		return false, 0, nil
	}
	return true, max - count, nil
}
