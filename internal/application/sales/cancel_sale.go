package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/restoqly/restopos-api/internal/domain"
	"github.com/restoqly/restopos-api/internal/domain/entity"
	"github.com/restoqly/restopos-api/internal/domain/repository"
)

// CancelSaleUseCase anula una venta devolviendo el stock a los lotes exactos
// que la venta consumió. Los acumulados de la sesión no se revierten: el
// arqueo de cierre refleja solo ventas COMPLETED vía SumPaymentsByMethod.
type CancelSaleUseCase struct {
	txRunner TxRunner
	saleRepo repository.SaleRepository
	movRepo  repository.MovementRepository
	userRepo repository.UserRepository
}

// NewCancelSaleUseCase construye el caso de uso.
func NewCancelSaleUseCase(
	txRunner TxRunner,
	saleRepo repository.SaleRepository,
	movRepo repository.MovementRepository,
	userRepo repository.UserRepository,
) *CancelSaleUseCase {
	return &CancelSaleUseCase{
		txRunner: txRunner,
		saleRepo: saleRepo,
		movRepo:  movRepo,
		userRepo: userRepo,
	}
}

// CancelSale restituye cada consumo de la venta sobre su lote original y la
// marca CANCELLED. Idempotencia por estado: una venta ya anulada falla con
// ErrSaleAlreadyCancelled.
func (uc *CancelSaleUseCase) CancelSale(ctx context.Context, saleID, userID, reason string) (*entity.Sale, error) {
	if saleID == "" || userID == "" {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	if sale.Status == entity.SaleStatusCancelled {
		return nil, domain.ErrSaleAlreadyCancelled
	}

	consumed, err := uc.movRepo.ListByReference(entity.ReferenceTypeSale, sale.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	err = uc.txRunner.Run(ctx, func(
		lotRepo repository.LotRepository,
		movRepo repository.MovementRepository,
		saleRepo repository.SaleRepository,
		_ repository.SessionRepository,
	) error {
		for _, mov := range consumed {
			if !mov.Quantity.IsNegative() || mov.LotID == "" {
				continue
			}
			lot, err := lotRepo.GetByIDForUpdate(mov.LotID)
			if err != nil {
				return err
			}
			if lot == nil {
				return domain.ErrNotFound
			}
			restored := mov.Quantity.Neg()
			lot.CurrentQuantity = lot.CurrentQuantity.Add(restored)
			if lot.Status == entity.LotStatusSoldOut {
				lot.Status = entity.LotStatusAvailable
			}
			lot.UpdatedAt = now
			if err := lotRepo.Update(lot); err != nil {
				return err
			}
			reversal := &entity.Movement{
				ID:            uuid.New().String(),
				Type:          entity.MovementTypeAdjustment,
				ReferenceType: entity.ReferenceTypeSale,
				ReferenceID:   sale.ID,
				ProductID:     mov.ProductID,
				LotID:         mov.LotID,
				WarehouseID:   mov.WarehouseID,
				Quantity:      restored,
				UnitCost:      mov.UnitCost,
				TotalCost:     restored.Mul(mov.UnitCost),
				UserID:        userID,
				Notes:         reason,
				CreatedAt:     now,
			}
			if err := movRepo.Create(reversal); err != nil {
				return err
			}
		}
		sale.Status = entity.SaleStatusCancelled
		sale.UpdatedAt = now
		return saleRepo.UpdateStatus(sale)
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}
