package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/restoqly/restopos-api/internal/application/inventory"
	"github.com/restoqly/restopos-api/internal/domain/entity"
	"github.com/restoqly/restopos-api/pkg/config"
)

var _ inventory.StockSummaryCache = (*RedisStockCache)(nil)

// RedisStockCache cachea resúmenes de stock en Redis con TTL corto.
// Un fallo de Redis nunca debe tumbar la consulta: Get degrada a miss.
type RedisStockCache struct {
	client *redis.Client
}

// NewRedisClient crea el cliente de Redis y verifica la conexión.
func NewRedisClient(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

// NewRedisStockCache construye el cache de stock sobre un cliente existente.
func NewRedisStockCache(client *redis.Client) *RedisStockCache {
	return &RedisStockCache{client: client}
}

// Get recupera un resumen cacheado. El segundo retorno indica hit.
func (c *RedisStockCache) Get(ctx context.Context, key string) ([]*entity.StockSummary, bool, error) {
	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}
	var summaries []*entity.StockSummary
	if err := json.Unmarshal(payload, &summaries); err != nil {
		// Entrada corrupta: tratarla como miss para que se reescriba.
		return nil, false, nil
	}
	return summaries, true, nil
}

// Set almacena el resumen serializado con el TTL indicado.
func (c *RedisStockCache) Set(ctx context.Context, key string, value []*entity.StockSummary, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal stock summary: %w", err)
	}
	if err := c.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}
