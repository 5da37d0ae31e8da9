package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de un lote.
// Un lote agotado o dañado puede volver a AVAILABLE si una anulación
// de venta le devuelve cantidad.
const (
	LotStatusAvailable = "AVAILABLE"
	LotStatusReserved  = "RESERVED"
	LotStatusExpired   = "EXPIRED"
	LotStatusDamaged   = "DAMAGED"
	LotStatusSoldOut   = "SOLD_OUT"
)

// Lot representa un lote (batch) de un producto recibido en una bodega.
// LotNumber es el número del proveedor y puede repetirse entre bodegas;
// InternalCode se genera con formato INT-<YYMM>-<secuencia> y es único en el sistema.
// Los lotes nunca se eliminan físicamente: un lote agotado queda como rastro de auditoría.
type Lot struct {
	ID               string
	ProductID        string
	WarehouseID      string
	LotNumber        string
	InternalCode     string
	InitialQuantity  decimal.Decimal
	CurrentQuantity  decimal.Decimal
	ReservedQuantity decimal.Decimal
	UnitCost         decimal.Decimal
	EntryDate        time.Time
	ProductionDate   *time.Time
	ExpiryDate       *time.Time
	Status           string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TotalCost devuelve el costo total del lote (cantidad actual × costo unitario).
func (l *Lot) TotalCost() decimal.Decimal {
	return l.CurrentQuantity.Mul(l.UnitCost)
}

// AvailableQuantity devuelve la cantidad disponible para asignar (actual − reservada).
func (l *Lot) AvailableQuantity() decimal.Decimal {
	return l.CurrentQuantity.Sub(l.ReservedQuantity)
}

// IsExpired indica si el lote tiene fecha de vencimiento anterior a now.
func (l *Lot) IsExpired(now time.Time) bool {
	return l.ExpiryDate != nil && l.ExpiryDate.Before(now)
}
