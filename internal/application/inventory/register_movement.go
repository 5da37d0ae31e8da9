package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/restoqly/restopos-api/internal/domain"
	"github.com/restoqly/restopos-api/internal/domain/entity"
	domaininv "github.com/restoqly/restopos-api/internal/domain/inventory"
	"github.com/restoqly/restopos-api/internal/domain/repository"
)

// RegisterMovementUseCase es el punto de entrada único para registrar un
// movimiento de stock con su efecto sobre los lotes, todo en una transacción.
// Los traslados NO pasan por aquí: usan TransferUseCase, que escribe su par
// de movimientos simétricos.
type RegisterMovementUseCase struct {
	txRunner      TxRunner
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{
		txRunner:      txRunner,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
	}
}

// MovementInput entrada para registrar un movimiento.
// PURCHASE/INITIAL sin LotID crean un lote nuevo (UnitCost obligatorio);
// ADJUSTMENT/WASTE/SALE sin LotID resuelven lotes vía asignación PEPS.
type MovementInput struct {
	Type          string
	ProductID     string
	WarehouseID   string
	LotID         string
	LotNumber     string // número de proveedor al crear lote por compra; vacío usa el código interno
	Quantity      decimal.Decimal
	UnitCost      *decimal.Decimal
	ReferenceType string
	ReferenceID   string
	UserID        string
	Notes         string
}

// RegisterMovement valida la entrada, abre la transacción y aplica el efecto
// según el tipo. Cualquier fallo (lote inexistente, stock insuficiente)
// revierte el movimiento completo, incluida toda mutación de lote previa.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, in MovementInput) error {
	if !entity.ValidMovementType(in.Type) {
		return domain.ErrInvalidInput
	}
	if in.Type == entity.MovementTypeTransfer {
		// Los traslados llevan documento propio y par de movimientos.
		return fmt.Errorf("%w: los traslados se registran con el flujo de traslado", domain.ErrInvalidInput)
	}
	if in.ProductID == "" || in.WarehouseID == "" || in.Quantity.IsZero() {
		return domain.ErrInvalidInput
	}

	switch in.Type {
	case entity.MovementTypePurchase, entity.MovementTypeInitial:
		if in.Quantity.LessThan(decimal.Zero) {
			return domain.ErrInvalidInput
		}
		if in.LotID == "" && (in.UnitCost == nil || in.UnitCost.LessThan(decimal.Zero)) {
			return domain.ErrInvalidInput
		}
	}

	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil || product == nil {
		return domain.ErrNotFound
	}
	wh, err := uc.warehouseRepo.GetByID(in.WarehouseID)
	if err != nil || wh == nil {
		return domain.ErrNotFound
	}

	now := time.Now()
	return uc.txRunner.Run(ctx, func(
		lotRepo repository.LotRepository,
		movRepo repository.MovementRepository,
		_ repository.TransferRepository,
		_ repository.AdjustmentRepository,
		_ repository.WasteRepository,
	) error {
		switch in.Type {
		case entity.MovementTypePurchase, entity.MovementTypeInitial:
			return uc.doInbound(lotRepo, movRepo, in, now)
		default:
			return uc.doDelta(lotRepo, movRepo, in, now)
		}
	})
}

// doInbound: PURCHASE/INITIAL. Con lote, suma a cantidad actual e inicial y
// repondera el costo; sin lote, crea uno nuevo con la cantidad recibida.
func (uc *RegisterMovementUseCase) doInbound(
	lotRepo repository.LotRepository,
	movRepo repository.MovementRepository,
	in MovementInput,
	now time.Time,
) error {
	var lot *entity.Lot
	unitCost := decimal.Zero
	if in.UnitCost != nil {
		unitCost = *in.UnitCost
	}

	if in.LotID != "" {
		var err error
		lot, err = lotRepo.GetByIDForUpdate(in.LotID)
		if err != nil {
			return err
		}
		if lot == nil {
			return domain.ErrNotFound
		}
		if in.UnitCost != nil {
			lot.UnitCost = domaininv.WeightedAverageCost(lot.CurrentQuantity, lot.UnitCost, in.Quantity, unitCost)
		} else {
			unitCost = lot.UnitCost
		}
		lot.CurrentQuantity = lot.CurrentQuantity.Add(in.Quantity)
		lot.InitialQuantity = lot.InitialQuantity.Add(in.Quantity)
		if lot.Status == entity.LotStatusSoldOut {
			lot.Status = entity.LotStatusAvailable
		}
		lot.UpdatedAt = now
		if err := lotRepo.Update(lot); err != nil {
			return err
		}
	} else {
		prefix := internalCodePrefix(now)
		seq, err := lotRepo.MaxInternalSequence(in.WarehouseID, prefix)
		if err != nil {
			return err
		}
		code := fmt.Sprintf("%s%04d", prefix, seq+1)
		lotNumber := in.LotNumber
		if lotNumber == "" {
			lotNumber = code
		}
		lot = &entity.Lot{
			ID:              uuid.New().String(),
			ProductID:       in.ProductID,
			WarehouseID:     in.WarehouseID,
			LotNumber:       lotNumber,
			InternalCode:    code,
			InitialQuantity: in.Quantity,
			CurrentQuantity: in.Quantity,
			UnitCost:        unitCost,
			EntryDate:       now,
			Status:          entity.LotStatusAvailable,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := lotRepo.Create(lot); err != nil {
			return err
		}
	}

	mov := &entity.Movement{
		ID:            uuid.New().String(),
		Type:          in.Type,
		ReferenceType: in.ReferenceType,
		ReferenceID:   in.ReferenceID,
		ProductID:     in.ProductID,
		LotID:         lot.ID,
		WarehouseID:   in.WarehouseID,
		Quantity:      in.Quantity,
		UnitCost:      unitCost,
		TotalCost:     in.Quantity.Mul(unitCost),
		UserID:        in.UserID,
		Notes:         in.Notes,
		CreatedAt:     now,
	}
	return movRepo.Create(mov)
}

// doDelta: ADJUSTMENT/WASTE/SALE. WASTE y SALE siempre restan; un ajuste
// ad-hoc puede sumar o restar. Sin lote, los negativos asignan PEPS y los
// positivos acreditan al primer lote disponible.
func (uc *RegisterMovementUseCase) doDelta(
	lotRepo repository.LotRepository,
	movRepo repository.MovementRepository,
	in MovementInput,
	now time.Time,
) error {
	qty := in.Quantity
	if in.Type == entity.MovementTypeWaste || in.Type == entity.MovementTypeSale {
		qty = qty.Abs().Neg()
	}

	if in.LotID != "" {
		return uc.applyToLot(lotRepo, movRepo, in, qty, now)
	}

	if qty.LessThan(decimal.Zero) {
		_, err := AllocateAndConsume(lotRepo, movRepo, in.ProductID, in.WarehouseID, qty.Neg(), MovementMeta{
			Type:          in.Type,
			ReferenceType: in.ReferenceType,
			ReferenceID:   in.ReferenceID,
			UserID:        in.UserID,
			Notes:         in.Notes,
			Now:           now,
		})
		return err
	}

	// Delta positivo sin lote: se acredita al primer lote disponible.
	lots, err := lotRepo.FindAvailableForUpdate(in.ProductID, in.WarehouseID)
	if err != nil {
		return err
	}
	if len(lots) == 0 {
		return domain.ErrNotFound
	}
	in.LotID = lots[0].ID
	return uc.creditLot(lotRepo, movRepo, lots[0], in, qty, now)
}

// applyToLot aplica el delta directo sobre el lote indicado.
func (uc *RegisterMovementUseCase) applyToLot(
	lotRepo repository.LotRepository,
	movRepo repository.MovementRepository,
	in MovementInput,
	qty decimal.Decimal,
	now time.Time,
) error {
	lot, err := lotRepo.GetByIDForUpdate(in.LotID)
	if err != nil {
		return err
	}
	if lot == nil {
		return domain.ErrNotFound
	}
	if qty.GreaterThan(decimal.Zero) {
		return uc.creditLot(lotRepo, movRepo, lot, in, qty, now)
	}

	needed := qty.Neg()
	if lot.AvailableQuantity().LessThan(needed) {
		return &domain.StockShortfallError{
			ProductID: in.ProductID,
			Requested: needed,
			Available: lot.AvailableQuantity(),
		}
	}
	lot.CurrentQuantity = lot.CurrentQuantity.Sub(needed)
	if lot.CurrentQuantity.IsZero() {
		if in.Type == entity.MovementTypeWaste {
			lot.Status = entity.LotStatusDamaged
		} else {
			lot.Status = entity.LotStatusSoldOut
		}
	}
	lot.UpdatedAt = now
	if err := lotRepo.Update(lot); err != nil {
		return err
	}
	mov := &entity.Movement{
		ID:            uuid.New().String(),
		Type:          in.Type,
		ReferenceType: in.ReferenceType,
		ReferenceID:   in.ReferenceID,
		ProductID:     in.ProductID,
		LotID:         lot.ID,
		WarehouseID:   in.WarehouseID,
		Quantity:      qty,
		UnitCost:      lot.UnitCost,
		TotalCost:     qty.Mul(lot.UnitCost),
		UserID:        in.UserID,
		Notes:         in.Notes,
		CreatedAt:     now,
	}
	return movRepo.Create(mov)
}

// creditLot suma el delta positivo al lote y registra el movimiento de entrada.
func (uc *RegisterMovementUseCase) creditLot(
	lotRepo repository.LotRepository,
	movRepo repository.MovementRepository,
	lot *entity.Lot,
	in MovementInput,
	qty decimal.Decimal,
	now time.Time,
) error {
	lot.CurrentQuantity = lot.CurrentQuantity.Add(qty)
	if lot.Status == entity.LotStatusSoldOut {
		lot.Status = entity.LotStatusAvailable
	}
	lot.UpdatedAt = now
	if err := lotRepo.Update(lot); err != nil {
		return err
	}
	mov := &entity.Movement{
		ID:            uuid.New().String(),
		Type:          in.Type,
		ReferenceType: in.ReferenceType,
		ReferenceID:   in.ReferenceID,
		ProductID:     in.ProductID,
		LotID:         lot.ID,
		WarehouseID:   in.WarehouseID,
		Quantity:      qty,
		UnitCost:      lot.UnitCost,
		TotalCost:     qty.Mul(lot.UnitCost),
		UserID:        in.UserID,
		Notes:         in.Notes,
		CreatedAt:     now,
	}
	return movRepo.Create(mov)
}
