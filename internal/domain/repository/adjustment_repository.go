package repository

import "github.com/restoqly/restopos-api/internal/domain/entity"

// AdjustmentRepository define el puerto de los documentos de ajuste.
// Create persiste el documento con sus ítems; UpdateStatus solo toca los
// campos de estado/aprobación porque los ítems son inmutables.
type AdjustmentRepository interface {
	Create(a *entity.Adjustment) error
	GetByID(id string) (*entity.Adjustment, error)
	UpdateStatus(a *entity.Adjustment) error
	ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.Adjustment, error)
}
