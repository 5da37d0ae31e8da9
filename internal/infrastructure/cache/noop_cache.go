package cache

import (
	"context"
	"time"

	"github.com/restoqly/restopos-api/internal/application/inventory"
	"github.com/restoqly/restopos-api/internal/domain/entity"
)

var _ inventory.StockSummaryCache = (*NoopStockCache)(nil)

// NoopStockCache se usa cuando Redis no está configurado (REDIS_ADDR vacío).
// Todo Get es miss y todo Set se descarta.
type NoopStockCache struct{}

// NewNoopStockCache construye el cache nulo.
func NewNoopStockCache() *NoopStockCache {
	return &NoopStockCache{}
}

func (NoopStockCache) Get(context.Context, string) ([]*entity.StockSummary, bool, error) {
	return nil, false, nil
}

func (NoopStockCache) Set(context.Context, string, []*entity.StockSummary, time.Duration) error {
	return nil
}
