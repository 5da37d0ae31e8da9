package repository

import (
	"time"

	"github.com/restoqly/restopos-api/internal/domain/entity"
)

// MovementRepository define el puerto del libro de movimientos. Solo inserta y
// consulta: los movimientos jamás se actualizan ni se borran.
type MovementRepository interface {
	Create(m *entity.Movement) error
	ListByWarehouse(warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error)
	ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error)
	ListByLot(lotID string) ([]*entity.Movement, error)
	ListByReference(referenceType, referenceID string) ([]*entity.Movement, error)
}
