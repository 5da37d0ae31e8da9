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

// AdjustmentUseCase maneja el documento de ajuste y su máquina de estados:
// DRAFT → APPROVED → APPLIED, con CANCELLED alcanzable desde DRAFT y
// APPROVED. Solo Apply toca stock.
type AdjustmentUseCase struct {
	txRunner       TxRunner
	adjustmentRepo repository.AdjustmentRepository
	lotRepo        repository.LotRepository
	warehouseRepo  repository.WarehouseRepository
	userRepo       repository.UserRepository
}

// NewAdjustmentUseCase construye el caso de uso.
func NewAdjustmentUseCase(
	txRunner TxRunner,
	adjustmentRepo repository.AdjustmentRepository,
	lotRepo repository.LotRepository,
	warehouseRepo repository.WarehouseRepository,
	userRepo repository.UserRepository,
) *AdjustmentUseCase {
	return &AdjustmentUseCase{
		txRunner:       txRunner,
		adjustmentRepo: adjustmentRepo,
		lotRepo:        lotRepo,
		warehouseRepo:  warehouseRepo,
		userRepo:       userRepo,
	}
}

// AdjustmentItemInput línea de conteo para crear un ajuste.
type AdjustmentItemInput struct {
	LotID            string
	PhysicalQuantity decimal.Decimal
	Reason           string
}

// CreateAdjustmentInput entrada para crear un ajuste.
type CreateAdjustmentInput struct {
	WarehouseID string
	Type        string
	Notes       string
	Items       []AdjustmentItemInput
	UserID      string
}

// Create persiste el ajuste en DRAFT sin efecto sobre stock. La cantidad de
// sistema de cada ítem se toma como snapshot del lote en este momento; la
// diferencia y el impacto de costo quedan derivados e inmutables.
func (uc *AdjustmentUseCase) Create(ctx context.Context, in CreateAdjustmentInput) (*entity.Adjustment, error) {
	if in.WarehouseID == "" || len(in.Items) == 0 || !entity.ValidAdjustmentType(in.Type) {
		return nil, domain.ErrInvalidInput
	}
	wh, err := uc.warehouseRepo.GetByID(in.WarehouseID)
	if err != nil || wh == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	adj := &entity.Adjustment{
		ID:          uuid.New().String(),
		WarehouseID: in.WarehouseID,
		Type:        in.Type,
		Status:      entity.AdjustmentStatusDraft,
		Notes:       in.Notes,
		CreatedBy:   in.UserID,
		CreatedAt:   now,
	}
	for _, itemIn := range in.Items {
		if itemIn.LotID == "" || itemIn.PhysicalQuantity.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		lot, err := uc.lotRepo.GetByID(itemIn.LotID)
		if err != nil {
			return nil, err
		}
		if lot == nil {
			return nil, domain.ErrNotFound
		}
		item := entity.NewAdjustmentItem(
			lot.ProductID, lot.ID,
			lot.CurrentQuantity, itemIn.PhysicalQuantity, lot.UnitCost,
			itemIn.Reason,
		)
		item.ID = uuid.New().String()
		item.AdjustmentID = adj.ID
		adj.Items = append(adj.Items, item)
	}

	if err := uc.adjustmentRepo.Create(adj); err != nil {
		return nil, err
	}
	return adj, nil
}

// Approve pasa el ajuste de DRAFT a APPROVED; cualquier otro estado origen
// falla con ErrInvalidState.
func (uc *AdjustmentUseCase) Approve(ctx context.Context, id, userID string) (*entity.Adjustment, error) {
	if err := uc.validateUser(userID); err != nil {
		return nil, err
	}
	adj, err := uc.adjustmentRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if adj == nil {
		return nil, domain.ErrNotFound
	}
	if adj.Status != entity.AdjustmentStatusDraft {
		return nil, domain.ErrInvalidState
	}
	now := time.Now()
	adj.Status = entity.AdjustmentStatusApproved
	adj.ApprovedBy = userID
	adj.ApprovedAt = &now
	if err := uc.adjustmentRepo.UpdateStatus(adj); err != nil {
		return nil, err
	}
	return adj, nil
}

// Apply ejecuta un ajuste APPROVED: por cada ítem bloquea el lote, sobrescribe
// la cantidad actual con la cantidad física contada (valor absoluto, no delta)
// y registra un Movement con la diferencia y su impacto de costo. Todos los
// ítems van en una transacción; un lote inexistente aborta el apply completo.
func (uc *AdjustmentUseCase) Apply(ctx context.Context, id, userID string) (*entity.Adjustment, error) {
	if err := uc.validateUser(userID); err != nil {
		return nil, err
	}
	adj, err := uc.adjustmentRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if adj == nil {
		return nil, domain.ErrNotFound
	}
	if adj.Status != entity.AdjustmentStatusApproved {
		return nil, domain.ErrInvalidState
	}

	now := time.Now()
	err = uc.txRunner.Run(ctx, func(
		lotRepo repository.LotRepository,
		movRepo repository.MovementRepository,
		_ repository.TransferRepository,
		adjustmentRepo repository.AdjustmentRepository,
		_ repository.WasteRepository,
	) error {
		for i := range adj.Items {
			item := &adj.Items[i]
			lot, err := lotRepo.GetByIDForUpdate(item.LotID)
			if err != nil {
				return err
			}
			if lot == nil {
				return domain.ErrNotFound
			}
			lot.CurrentQuantity = item.PhysicalQuantity
			if lot.CurrentQuantity.IsZero() {
				lot.Status = entity.LotStatusSoldOut
			} else if lot.Status == entity.LotStatusSoldOut {
				lot.Status = entity.LotStatusAvailable
			}
			lot.UpdatedAt = now
			if err := lotRepo.Update(lot); err != nil {
				return err
			}
			mov := &entity.Movement{
				ID:            uuid.New().String(),
				Type:          entity.MovementTypeAdjustment,
				ReferenceType: entity.ReferenceTypeAdjustment,
				ReferenceID:   adj.ID,
				ProductID:     item.ProductID,
				LotID:         item.LotID,
				WarehouseID:   adj.WarehouseID,
				Quantity:      item.Difference,
				UnitCost:      item.UnitCost,
				TotalCost:     item.CostImpact,
				UserID:        userID,
				Notes:         item.Reason,
				CreatedAt:     now,
			}
			if err := movRepo.Create(mov); err != nil {
				return err
			}
		}
		adj.Status = entity.AdjustmentStatusApplied
		adj.AppliedBy = userID
		adj.AppliedAt = &now
		return adjustmentRepo.UpdateStatus(adj)
	})
	if err != nil {
		return nil, err
	}
	return adj, nil
}

// Cancel anula un ajuste DRAFT o APPROVED sin efecto sobre stock. Un ajuste
// APPLIED jamás se anula.
func (uc *AdjustmentUseCase) Cancel(ctx context.Context, id, userID string) (*entity.Adjustment, error) {
	adj, err := uc.adjustmentRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if adj == nil {
		return nil, domain.ErrNotFound
	}
	if adj.Status != entity.AdjustmentStatusDraft && adj.Status != entity.AdjustmentStatusApproved {
		return nil, domain.ErrInvalidState
	}
	adj.Status = entity.AdjustmentStatusCancelled
	if err := uc.adjustmentRepo.UpdateStatus(adj); err != nil {
		return nil, err
	}
	return adj, nil
}

// GetByID devuelve el ajuste con sus ítems.
func (uc *AdjustmentUseCase) GetByID(ctx context.Context, id string) (*entity.Adjustment, error) {
	adj, err := uc.adjustmentRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if adj == nil {
		return nil, domain.ErrNotFound
	}
	return adj, nil
}

// ListByWarehouse devuelve los ajustes de la bodega, más recientes primero.
func (uc *AdjustmentUseCase) ListByWarehouse(ctx context.Context, warehouseID string, limit, offset int) ([]*entity.Adjustment, error) {
	if warehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 {
		limit = 50
	}
	return uc.adjustmentRepo.ListByWarehouse(warehouseID, limit, offset)
}

func (uc *AdjustmentUseCase) validateUser(userID string) error {
	if userID == "" {
		return domain.ErrInvalidInput
	}
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrNotFound
	}
	return nil
}
