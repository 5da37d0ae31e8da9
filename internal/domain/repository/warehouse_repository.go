package repository

import "github.com/restoqly/restopos-api/internal/domain/entity"

// WarehouseRepository define el puerto del directorio de bodegas.
type WarehouseRepository interface {
	GetByID(id string) (*entity.Warehouse, error)
	ListByBranch(branchID string) ([]*entity.Warehouse, error)
}
