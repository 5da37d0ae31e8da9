package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	domaininv "github.com/restoqly/restopos-api/internal/domain/inventory"
	"github.com/restoqly/restopos-api/internal/domain/entity"
	"github.com/restoqly/restopos-api/internal/domain/repository"
)

// MovementMeta describe el movimiento que registra cada consumo de lote.
type MovementMeta struct {
	Type          string
	ReferenceType string
	ReferenceID   string
	UserID        string
	Notes         string
	Now           time.Time
}

// AllocateAndConsume es la única vía de salida de stock por asignación:
// bloquea los lotes disponibles en orden PEPS (el repositorio toma los locks
// en el mismo orden de iteración), asigna la cantidad y la consume. Debe
// invocarse dentro de la transacción del caller; ante faltante retorna
// *domain.StockShortfallError y el rollback descarta todo.
func AllocateAndConsume(
	lotRepo repository.LotRepository,
	movRepo repository.MovementRepository,
	productID, warehouseID string,
	quantity decimal.Decimal,
	meta MovementMeta,
) (domaininv.Allocation, error) {
	lots, err := lotRepo.FindAvailableForUpdate(productID, warehouseID)
	if err != nil {
		return domaininv.Allocation{}, err
	}
	alloc, err := domaininv.AllocateFIFO(productID, lots, quantity)
	if err != nil {
		return domaininv.Allocation{}, err
	}
	if err := ConsumeAllocation(lotRepo, movRepo, alloc, meta); err != nil {
		return domaininv.Allocation{}, err
	}
	return alloc, nil
}

// AllocateAndConsumeByBranch asigna sobre todas las bodegas de la sucursal en
// un solo orden PEPS (lo usa el pipeline de ventas).
func AllocateAndConsumeByBranch(
	lotRepo repository.LotRepository,
	movRepo repository.MovementRepository,
	productID, branchID string,
	quantity decimal.Decimal,
	meta MovementMeta,
) (domaininv.Allocation, error) {
	lots, err := lotRepo.FindAvailableByBranchForUpdate(productID, branchID)
	if err != nil {
		return domaininv.Allocation{}, err
	}
	alloc, err := domaininv.AllocateFIFO(productID, lots, quantity)
	if err != nil {
		return domaininv.Allocation{}, err
	}
	if err := ConsumeAllocation(lotRepo, movRepo, alloc, meta); err != nil {
		return domaininv.Allocation{}, err
	}
	return alloc, nil
}

// ConsumeAllocation aplica una asignación ya calculada: descuenta cada lote,
// lo marca SOLD_OUT al llegar a cero y registra un Movement negativo por lote.
func ConsumeAllocation(
	lotRepo repository.LotRepository,
	movRepo repository.MovementRepository,
	alloc domaininv.Allocation,
	meta MovementMeta,
) error {
	for _, take := range alloc.Takes {
		lot := take.Lot
		lot.CurrentQuantity = lot.CurrentQuantity.Sub(take.Quantity)
		if lot.CurrentQuantity.IsZero() {
			lot.Status = entity.LotStatusSoldOut
		}
		lot.UpdatedAt = meta.Now
		if err := lotRepo.Update(lot); err != nil {
			return err
		}
		mov := &entity.Movement{
			ID:            uuid.New().String(),
			Type:          meta.Type,
			ReferenceType: meta.ReferenceType,
			ReferenceID:   meta.ReferenceID,
			ProductID:     lot.ProductID,
			LotID:         lot.ID,
			WarehouseID:   lot.WarehouseID,
			Quantity:      take.Quantity.Neg(),
			UnitCost:      take.UnitCost,
			TotalCost:     take.Quantity.Neg().Mul(take.UnitCost),
			UserID:        meta.UserID,
			Notes:         meta.Notes,
			CreatedAt:     meta.Now,
		}
		if err := movRepo.Create(mov); err != nil {
			return err
		}
	}
	return nil
}
