package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/restoqly/restopos-api/internal/domain"
	"github.com/restoqly/restopos-api/internal/domain/entity"
	"github.com/restoqly/restopos-api/internal/domain/repository"
)

// maxCodeAttempts acota el reintento ante colisión de código interno
// (dos creadores concurrentes calculando la misma secuencia).
const maxCodeAttempts = 5

// summaryTTL ventana de caché del resumen de stock.
const summaryTTL = 30 * time.Second

// LotUseCase expone el almacén de lotes: alta, consulta PEPS, resumen de
// stock y barrido de vencimientos.
type LotUseCase struct {
	lotRepo       repository.LotRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	cache         StockSummaryCache
}

// NewLotUseCase construye el caso de uso.
func NewLotUseCase(
	lotRepo repository.LotRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	cache StockSummaryCache,
) *LotUseCase {
	return &LotUseCase{
		lotRepo:       lotRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		cache:         cache,
	}
}

// CreateLotInput entrada para crear un lote.
type CreateLotInput struct {
	ProductID      string
	WarehouseID    string
	LotNumber      string
	Quantity       decimal.Decimal
	UnitCost       decimal.Decimal
	ProductionDate *time.Time
	ExpiryDate     *time.Time
	UserID         string
}

// CreateLot da de alta un lote con cantidad inicial = cantidad actual y
// estado AVAILABLE. El código interno INT-<YYMM>-<secuencia> se calcula por
// bodega y mes; ante colisión del índice único se reintenta con la secuencia
// incrementada hasta maxCodeAttempts y después falla con ErrExhaustedRetries.
func (uc *LotUseCase) CreateLot(ctx context.Context, in CreateLotInput) (*entity.Lot, error) {
	if in.ProductID == "" || in.WarehouseID == "" || in.LotNumber == "" {
		return nil, domain.ErrInvalidInput
	}
	if !in.Quantity.GreaterThan(decimal.Zero) || in.UnitCost.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil || product == nil {
		return nil, domain.ErrNotFound
	}
	wh, err := uc.warehouseRepo.GetByID(in.WarehouseID)
	if err != nil || wh == nil {
		return nil, domain.ErrNotFound
	}

	existing, err := uc.lotRepo.FindByNumber(in.ProductID, in.WarehouseID, in.LotNumber)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateLot
	}

	now := time.Now()
	prefix := internalCodePrefix(now)
	seq, err := uc.lotRepo.MaxInternalSequence(in.WarehouseID, prefix)
	if err != nil {
		return nil, err
	}

	lot := &entity.Lot{
		ID:              uuid.New().String(),
		ProductID:       in.ProductID,
		WarehouseID:     in.WarehouseID,
		LotNumber:       in.LotNumber,
		InitialQuantity: in.Quantity,
		CurrentQuantity: in.Quantity,
		UnitCost:        in.UnitCost,
		EntryDate:       now,
		ProductionDate:  in.ProductionDate,
		ExpiryDate:      in.ExpiryDate,
		Status:          entity.LotStatusAvailable,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		seq++
		lot.InternalCode = fmt.Sprintf("%s%04d", prefix, seq)
		err := uc.lotRepo.Create(lot)
		if errors.Is(err, domain.ErrDuplicateInternalCode) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return lot, nil
	}
	return nil, domain.ErrExhaustedRetries
}

// FindAvailableLots devuelve los lotes AVAILABLE en orden PEPS. warehouseID
// vacío consulta todas las bodegas.
func (uc *LotUseCase) FindAvailableLots(ctx context.Context, productID, warehouseID string) ([]*entity.Lot, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.lotRepo.FindAvailable(productID, warehouseID)
}

// GetStockSummary devuelve el resumen agregado por (producto, bodega) de los
// lotes disponibles, con caché de TTL corto.
func (uc *LotUseCase) GetStockSummary(ctx context.Context, productID, warehouseID string) ([]*entity.StockSummary, error) {
	key := "stock:" + productID + ":" + warehouseID
	if cached, ok, err := uc.cache.Get(ctx, key); err == nil && ok {
		return cached, nil
	}
	summary, err := uc.lotRepo.StockSummary(productID, warehouseID)
	if err != nil {
		return nil, err
	}
	_ = uc.cache.Set(ctx, key, summary, summaryTTL)
	return summary, nil
}

// MarkExpiredLots pasa a EXPIRED todo lote AVAILABLE ya vencido y devuelve la
// cantidad afectada. Idempotente: una segunda llamada sin nuevos vencimientos
// afecta 0 filas.
func (uc *LotUseCase) MarkExpiredLots(ctx context.Context) (int64, error) {
	return uc.lotRepo.MarkExpired(time.Now())
}

// internalCodePrefix devuelve el prefijo mensual del código interno, ej. "INT-2608-".
func internalCodePrefix(t time.Time) string {
	return fmt.Sprintf("INT-%s-", t.Format("0601"))
}
