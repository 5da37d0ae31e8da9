package repository

import "github.com/restoqly/restopos-api/internal/domain/entity"

// SaleRepository define el puerto de ventas. GetByID devuelve la venta con
// ítems y pagos cargados.
type SaleRepository interface {
	Create(s *entity.Sale) error
	CreateItem(item *entity.SaleItem) error
	CreatePayment(p *entity.SalePayment) error
	GetByID(id string) (*entity.Sale, error)
	UpdateStatus(s *entity.Sale) error
	// NextSequence incrementa y devuelve la secuencia del día (fila contador
	// con upsert atómico, sin escanear el máximo existente).
	NextSequence(dateKey string) (int64, error)
	ListBySession(sessionID string, limit, offset int) ([]*entity.Sale, error)
}
