package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una sesión de caja.
const (
	SessionStatusOpen   = "OPEN"
	SessionStatusClosed = "CLOSED"
)

// CashSession es el turno de un cajero sobre una caja registradora, delimitado
// por apertura y arqueo de cierre. A lo sumo una sesión OPEN por caja.
// ExpectedCash y CashDifference se calculan al cierre:
// expected = openingCash + Σ pagos en efectivo; difference = actual − expected.
type CashSession struct {
	ID             string
	CashRegisterID string
	UserID         string
	OpenedAt       time.Time
	ClosedAt       *time.Time
	OpeningCash    decimal.Decimal
	ExpectedCash   decimal.Decimal
	ActualCash     decimal.Decimal
	CashDifference decimal.Decimal
	TotalSales     decimal.Decimal // total vendido en la sesión
	CardSales      decimal.Decimal // acumulado de pagos con tarjeta
	TransferSales  decimal.Decimal // acumulado de pagos por transferencia
	Status         string
	Notes          string
}
