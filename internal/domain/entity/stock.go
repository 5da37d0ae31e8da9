package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockSummary agrega los lotes AVAILABLE de un par (producto, bodega):
// AvailableQuantity = TotalQuantity − ReservedQuantity y AverageUnitCost es
// el costo promedio ponderado (Σ costo total / Σ cantidad).
type StockSummary struct {
	ProductID         string
	WarehouseID       string
	TotalQuantity     decimal.Decimal
	ReservedQuantity  decimal.Decimal
	AvailableQuantity decimal.Decimal
	AverageUnitCost   decimal.Decimal
	LotCount          int
	EarliestExpiry    *time.Time
}
