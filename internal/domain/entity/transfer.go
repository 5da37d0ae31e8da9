package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transfer registra un traslado de cantidad de un lote entre bodegas.
// Es distinto de los dos Movements (salida y entrada) que el traslado genera;
// aquí queda el documento del traslado en sí. Nunca se actualiza.
type Transfer struct {
	ID              string
	FromWarehouseID string
	ToWarehouseID   string
	ProductID       string
	LotID           string // lote origen
	Quantity        decimal.Decimal
	UnitCost        decimal.Decimal // copiado del lote origen
	Notes           string
	UserID          string
	CreatedAt       time.Time
}
