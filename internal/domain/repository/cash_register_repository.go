package repository

import "github.com/restoqly/restopos-api/internal/domain/entity"

// CashRegisterRepository define el puerto del directorio de cajas registradoras.
type CashRegisterRepository interface {
	GetByID(id string) (*entity.CashRegister, error)
	ListByBranch(branchID string) ([]*entity.CashRegister, error)
}
