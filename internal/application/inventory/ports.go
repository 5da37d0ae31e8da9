package inventory

import (
	"context"
	"time"

	"github.com/restoqly/restopos-api/internal/domain/entity"
	"github.com/restoqly/restopos-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de
// inventario: cualquier error de fn hace rollback de todo lo escrito.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		lotRepo repository.LotRepository,
		movRepo repository.MovementRepository,
		transferRepo repository.TransferRepository,
		adjustmentRepo repository.AdjustmentRepository,
		wasteRepo repository.WasteRepository,
	) error) error
}

// StockSummaryCache cachea el resumen de stock con TTL corto. La ventana de
// staleness es aceptable: el resumen es informativo, la verificación
// autoritativa ocurre al asignar lotes bajo lock.
type StockSummaryCache interface {
	Get(ctx context.Context, key string) ([]*entity.StockSummary, bool, error)
	Set(ctx context.Context, key string, value []*entity.StockSummary, ttl time.Duration) error
}
