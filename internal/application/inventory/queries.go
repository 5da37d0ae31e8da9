package inventory

import (
	"context"
	"time"

	"github.com/restoqly/restopos-api/internal/domain"
	"github.com/restoqly/restopos-api/internal/domain/entity"
	"github.com/restoqly/restopos-api/internal/domain/repository"
)

const defaultQueryLimit = 50

// QueryUseCase consultas de solo lectura sobre movimientos, traslados y el
// directorio de bodegas y cajas. Trabaja con repos atados al pool: no
// necesita transacción.
type QueryUseCase struct {
	movRepo       repository.MovementRepository
	transferRepo  repository.TransferRepository
	warehouseRepo repository.WarehouseRepository
	registerRepo  repository.CashRegisterRepository
}

// NewQueryUseCase construye el caso de uso de consultas.
func NewQueryUseCase(
	movRepo repository.MovementRepository,
	transferRepo repository.TransferRepository,
	warehouseRepo repository.WarehouseRepository,
	registerRepo repository.CashRegisterRepository,
) *QueryUseCase {
	return &QueryUseCase{
		movRepo:       movRepo,
		transferRepo:  transferRepo,
		warehouseRepo: warehouseRepo,
		registerRepo:  registerRepo,
	}
}

// ListMovementsByWarehouse lista el kardex de una bodega, más reciente primero.
func (uc *QueryUseCase) ListMovementsByWarehouse(ctx context.Context, warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	if warehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 {
		limit = defaultQueryLimit
	}
	return uc.movRepo.ListByWarehouse(warehouseID, from, to, limit, offset)
}

// ListMovementsByProduct lista el kardex de un producto a través de bodegas.
func (uc *QueryUseCase) ListMovementsByProduct(ctx context.Context, productID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 {
		limit = defaultQueryLimit
	}
	return uc.movRepo.ListByProduct(productID, from, to, limit, offset)
}

// ListMovementsByLot lista la historia completa de un lote en orden cronológico.
func (uc *QueryUseCase) ListMovementsByLot(ctx context.Context, lotID string) ([]*entity.Movement, error) {
	if lotID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.movRepo.ListByLot(lotID)
}

// GetTransfer obtiene un documento de traslado por ID.
func (uc *QueryUseCase) GetTransfer(ctx context.Context, id string) (*entity.Transfer, error) {
	t, err := uc.transferRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	return t, nil
}

// ListTransfersByWarehouse lista traslados donde la bodega es origen o destino.
func (uc *QueryUseCase) ListTransfersByWarehouse(ctx context.Context, warehouseID string, limit, offset int) ([]*entity.Transfer, error) {
	if warehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 {
		limit = defaultQueryLimit
	}
	return uc.transferRepo.ListByWarehouse(warehouseID, limit, offset)
}

// ListWarehouses lista las bodegas de una sucursal.
func (uc *QueryUseCase) ListWarehouses(ctx context.Context, branchID string) ([]*entity.Warehouse, error) {
	if branchID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.warehouseRepo.ListByBranch(branchID)
}

// ListCashRegisters lista las cajas registradoras de una sucursal.
func (uc *QueryUseCase) ListCashRegisters(ctx context.Context, branchID string) ([]*entity.CashRegister, error) {
	if branchID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.registerRepo.ListByBranch(branchID)
}
