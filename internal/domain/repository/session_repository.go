package repository

import (
	"github.com/shopspring/decimal"
	"github.com/restoqly/restopos-api/internal/domain/entity"
)

// SessionRepository define el puerto de sesiones de caja. Create se apoya en
// el índice único parcial (una sesión OPEN por caja) y devuelve
// domain.ErrSessionAlreadyOpen ante la violación.
type SessionRepository interface {
	Create(s *entity.CashSession) error
	GetByID(id string) (*entity.CashSession, error)
	GetByIDForUpdate(id string) (*entity.CashSession, error)
	FindOpenByRegister(registerID string) (*entity.CashSession, error)
	Update(s *entity.CashSession) error
	// SumPaymentsByMethod suma los pagos del método dado sobre las ventas
	// COMPLETED de la sesión (las anuladas no restan; ver nota de arqueo).
	SumPaymentsByMethod(sessionID, method string) (decimal.Decimal, error)
}
