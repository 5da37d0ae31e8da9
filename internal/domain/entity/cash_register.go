package entity

import "time"

// CashRegister es una caja registradora física de una sucursal.
type CashRegister struct {
	ID        string
	BranchID  string
	Code      string
	Name      string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
