package repository

import "github.com/restoqly/restopos-api/internal/domain/entity"

// TransferRepository define el puerto de los documentos de traslado.
type TransferRepository interface {
	Create(t *entity.Transfer) error
	GetByID(id string) (*entity.Transfer, error)
	ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.Transfer, error)
}
