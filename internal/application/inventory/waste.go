package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/restoqly/restopos-api/internal/domain"
	"github.com/restoqly/restopos-api/internal/domain/entity"
	"github.com/restoqly/restopos-api/internal/domain/repository"
)

// WasteUseCase registra mermas: el documento WasteRecord, el descuento del
// lote y el movimiento WASTE negativo van juntos en una transacción.
type WasteUseCase struct {
	txRunner      TxRunner
	wasteRepo     repository.WasteRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
}

// NewWasteUseCase construye el caso de uso.
func NewWasteUseCase(
	txRunner TxRunner,
	wasteRepo repository.WasteRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
) *WasteUseCase {
	return &WasteUseCase{
		txRunner:      txRunner,
		wasteRepo:     wasteRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
	}
}

// RecordWasteInput entrada para registrar una merma. LotID vacío descuenta
// por asignación PEPS sobre la bodega.
type RecordWasteInput struct {
	ProductID     string
	WarehouseID   string
	LotID         string
	Quantity      decimal.Decimal
	Type          string
	Reason        string
	ResponsibleID string
	PhotoURL      string
	UserID        string
}

// RecordWaste descuenta la cantidad mermada del lote indicado (o de los lotes
// PEPS si no se indica) y persiste el documento con el costo real descontado.
// Un lote que llega a cero por merma queda DAMAGED, no SOLD_OUT.
func (uc *WasteUseCase) RecordWaste(ctx context.Context, in RecordWasteInput) (*entity.WasteRecord, error) {
	if in.ProductID == "" || in.WarehouseID == "" || !entity.ValidWasteType(in.Type) {
		return nil, domain.ErrInvalidInput
	}
	if !in.Quantity.GreaterThan(decimal.Zero) {
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

	now := time.Now()
	waste := &entity.WasteRecord{
		ID:            uuid.New().String(),
		WarehouseID:   in.WarehouseID,
		ProductID:     in.ProductID,
		LotID:         in.LotID,
		Type:          in.Type,
		Quantity:      in.Quantity,
		Reason:        in.Reason,
		ResponsibleID: in.ResponsibleID,
		PhotoURL:      in.PhotoURL,
		CreatedBy:     in.UserID,
		CreatedAt:     now,
	}

	err = uc.txRunner.Run(ctx, func(
		lotRepo repository.LotRepository,
		movRepo repository.MovementRepository,
		_ repository.TransferRepository,
		_ repository.AdjustmentRepository,
		wasteRepo repository.WasteRepository,
	) error {
		meta := MovementMeta{
			Type:          entity.MovementTypeWaste,
			ReferenceType: entity.ReferenceTypeWaste,
			ReferenceID:   waste.ID,
			UserID:        in.UserID,
			Notes:         in.Reason,
			Now:           now,
		}

		if in.LotID == "" {
			alloc, err := AllocateAndConsume(lotRepo, movRepo, in.ProductID, in.WarehouseID, in.Quantity, meta)
			if err != nil {
				return err
			}
			waste.UnitCost = alloc.WeightedUnitCost()
			waste.TotalCost = alloc.TotalCost
			if first := alloc.FirstLotID(); first != "" {
				waste.LotID = first
			}
			return wasteRepo.Create(waste)
		}

		lot, err := lotRepo.GetByIDForUpdate(in.LotID)
		if err != nil {
			return err
		}
		if lot == nil {
			return domain.ErrNotFound
		}
		if lot.AvailableQuantity().LessThan(in.Quantity) {
			return &domain.StockShortfallError{
				ProductID: in.ProductID,
				Requested: in.Quantity,
				Available: lot.AvailableQuantity(),
			}
		}
		lot.CurrentQuantity = lot.CurrentQuantity.Sub(in.Quantity)
		if lot.CurrentQuantity.IsZero() {
			lot.Status = entity.LotStatusDamaged
		}
		lot.UpdatedAt = now
		if err := lotRepo.Update(lot); err != nil {
			return err
		}

		waste.UnitCost = lot.UnitCost
		waste.TotalCost = in.Quantity.Mul(lot.UnitCost)
		mov := &entity.Movement{
			ID:            uuid.New().String(),
			Type:          entity.MovementTypeWaste,
			ReferenceType: entity.ReferenceTypeWaste,
			ReferenceID:   waste.ID,
			ProductID:     in.ProductID,
			LotID:         lot.ID,
			WarehouseID:   in.WarehouseID,
			Quantity:      in.Quantity.Neg(),
			UnitCost:      lot.UnitCost,
			TotalCost:     in.Quantity.Neg().Mul(lot.UnitCost),
			UserID:        in.UserID,
			Notes:         in.Reason,
			CreatedAt:     now,
		}
		if err := movRepo.Create(mov); err != nil {
			return err
		}
		return wasteRepo.Create(waste)
	})
	if err != nil {
		return nil, err
	}
	return waste, nil
}

// ListByWarehouse devuelve las mermas registradas en la bodega.
func (uc *WasteUseCase) ListByWarehouse(ctx context.Context, warehouseID string, limit, offset int) ([]*entity.WasteRecord, error) {
	if warehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 {
		limit = 50
	}
	return uc.wasteRepo.ListByWarehouse(warehouseID, limit, offset)
}
