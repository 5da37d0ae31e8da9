package repository

import "github.com/restoqly/restopos-api/internal/domain/entity"

// WasteRepository define el puerto de los registros de merma.
type WasteRepository interface {
	Create(w *entity.WasteRecord) error
	ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.WasteRecord, error)
}
