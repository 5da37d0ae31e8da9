package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementTypePurchase   = "PURCHASE"
	MovementTypeSale       = "SALE"
	MovementTypeTransfer   = "TRANSFER"
	MovementTypeAdjustment = "ADJUSTMENT"
	MovementTypeWaste      = "WASTE"
	MovementTypeInitial    = "INITIAL"
)

// Tipos de referencia usados en Movement.ReferenceType.
const (
	ReferenceTypeSale       = "Sale"
	ReferenceTypeTransfer   = "Transfer"
	ReferenceTypeAdjustment = "Adjustment"
	ReferenceTypeWaste      = "Waste"
)

// Movement es el registro inmutable de un cambio de cantidad sobre un lote.
// Cantidad positiva = entrada, negativa = salida. Nunca se actualiza ni se
// borra después de creado: el libro de movimientos es la pista de auditoría
// del inventario.
type Movement struct {
	ID            string
	Type          string
	ReferenceType string // "Sale", "Transfer", "Adjustment", "Waste"; vacío para movimientos directos
	ReferenceID   string
	ProductID     string
	LotID         string // opcional; vacío cuando el movimiento no toca un lote concreto
	WarehouseID   string
	Quantity      decimal.Decimal
	UnitCost      decimal.Decimal
	TotalCost     decimal.Decimal
	UserID        string
	Notes         string
	CreatedAt     time.Time
}

// ValidMovementType indica si t es uno de los tipos de movimiento conocidos.
func ValidMovementType(t string) bool {
	switch t {
	case MovementTypePurchase, MovementTypeSale, MovementTypeTransfer,
		MovementTypeAdjustment, MovementTypeWaste, MovementTypeInitial:
		return true
	}
	return false
}
