package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/restoqly/restopos-api/internal/domain"
	"github.com/restoqly/restopos-api/internal/domain/entity"
	"github.com/restoqly/restopos-api/internal/domain/repository"
)

// TransferUseCase traslada cantidad de un lote hacia otra bodega preservando
// el linaje: el lote destino conserva el número de proveedor, el costo y el
// vencimiento del origen. Todo en una transacción con el lote origen
// bloqueado primero.
type TransferUseCase struct {
	txRunner      TxRunner
	warehouseRepo repository.WarehouseRepository
}

// NewTransferUseCase construye el caso de uso.
func NewTransferUseCase(txRunner TxRunner, warehouseRepo repository.WarehouseRepository) *TransferUseCase {
	return &TransferUseCase{txRunner: txRunner, warehouseRepo: warehouseRepo}
}

// TransferInput entrada para un traslado.
type TransferInput struct {
	LotID         string
	ToWarehouseID string
	Quantity      decimal.Decimal
	Notes         string
	UserID        string
}

// Transfer ejecuta el traslado: descuenta el lote origen, acredita (o crea)
// el lote destino con el mismo número de lote, registra el documento Transfer
// y el par de movimientos salida/entrada. Cualquier fallo revierte todo.
func (uc *TransferUseCase) Transfer(ctx context.Context, in TransferInput) (*entity.Transfer, error) {
	if in.LotID == "" || in.ToWarehouseID == "" || !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	destWh, err := uc.warehouseRepo.GetByID(in.ToWarehouseID)
	if err != nil || destWh == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	var transfer *entity.Transfer

	err = uc.txRunner.Run(ctx, func(
		lotRepo repository.LotRepository,
		movRepo repository.MovementRepository,
		transferRepo repository.TransferRepository,
		_ repository.AdjustmentRepository,
		_ repository.WasteRepository,
	) error {
		// Lote origen primero: fija el orden de locks del traslado.
		source, err := lotRepo.GetByIDForUpdate(in.LotID)
		if err != nil {
			return err
		}
		if source == nil {
			return domain.ErrNotFound
		}
		if source.WarehouseID == in.ToWarehouseID {
			return domain.ErrInvalidInput
		}
		if source.CurrentQuantity.LessThan(in.Quantity) {
			return &domain.StockShortfallError{
				ProductID: source.ProductID,
				Requested: in.Quantity,
				Available: source.CurrentQuantity,
			}
		}

		source.CurrentQuantity = source.CurrentQuantity.Sub(in.Quantity)
		if source.CurrentQuantity.IsZero() {
			source.Status = entity.LotStatusSoldOut
		}
		source.UpdatedAt = now
		if err := lotRepo.Update(source); err != nil {
			return err
		}

		// Lote destino: mismo número de proveedor en la bodega destino, o uno nuevo.
		dest, err := lotRepo.FindByNumber(source.ProductID, in.ToWarehouseID, source.LotNumber)
		if err != nil {
			return err
		}
		if dest != nil && dest.Status == entity.LotStatusAvailable {
			dest, err = lotRepo.GetByIDForUpdate(dest.ID)
			if err != nil {
				return err
			}
			dest.CurrentQuantity = dest.CurrentQuantity.Add(in.Quantity)
			dest.InitialQuantity = dest.InitialQuantity.Add(in.Quantity)
			dest.UpdatedAt = now
			if err := lotRepo.Update(dest); err != nil {
				return err
			}
		} else {
			prefix := internalCodePrefix(now)
			seq, err := lotRepo.MaxInternalSequence(in.ToWarehouseID, prefix)
			if err != nil {
				return err
			}
			dest = &entity.Lot{
				ID:              uuid.New().String(),
				ProductID:       source.ProductID,
				WarehouseID:     in.ToWarehouseID,
				LotNumber:       source.LotNumber,
				InternalCode:    fmt.Sprintf("%s%04d", prefix, seq+1),
				InitialQuantity: in.Quantity,
				CurrentQuantity: in.Quantity,
				UnitCost:        source.UnitCost,
				EntryDate:       source.EntryDate,
				ProductionDate:  source.ProductionDate,
				ExpiryDate:      source.ExpiryDate,
				Status:          entity.LotStatusAvailable,
				CreatedAt:       now,
				UpdatedAt:       now,
			}
			if err := lotRepo.Create(dest); err != nil {
				return err
			}
		}

		transfer = &entity.Transfer{
			ID:              uuid.New().String(),
			FromWarehouseID: source.WarehouseID,
			ToWarehouseID:   in.ToWarehouseID,
			ProductID:       source.ProductID,
			LotID:           source.ID,
			Quantity:        in.Quantity,
			UnitCost:        source.UnitCost,
			Notes:           in.Notes,
			UserID:          in.UserID,
			CreatedAt:       now,
		}
		if err := transferRepo.Create(transfer); err != nil {
			return err
		}

		// Par simétrico de movimientos al costo del lote origen.
		outMov := &entity.Movement{
			ID:            uuid.New().String(),
			Type:          entity.MovementTypeTransfer,
			ReferenceType: entity.ReferenceTypeTransfer,
			ReferenceID:   transfer.ID,
			ProductID:     source.ProductID,
			LotID:         source.ID,
			WarehouseID:   source.WarehouseID,
			Quantity:      in.Quantity.Neg(),
			UnitCost:      source.UnitCost,
			TotalCost:     in.Quantity.Neg().Mul(source.UnitCost),
			UserID:        in.UserID,
			Notes:         in.Notes,
			CreatedAt:     now,
		}
		if err := movRepo.Create(outMov); err != nil {
			return err
		}
		inMov := &entity.Movement{
			ID:            uuid.New().String(),
			Type:          entity.MovementTypeTransfer,
			ReferenceType: entity.ReferenceTypeTransfer,
			ReferenceID:   transfer.ID,
			ProductID:     source.ProductID,
			LotID:         dest.ID,
			WarehouseID:   in.ToWarehouseID,
			Quantity:      in.Quantity,
			UnitCost:      source.UnitCost,
			TotalCost:     in.Quantity.Mul(source.UnitCost),
			UserID:        in.UserID,
			Notes:         in.Notes,
			CreatedAt:     now,
		}
		return movRepo.Create(inMov)
	})
	if err != nil {
		return nil, err
	}
	return transfer, nil
}
