package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de merma.
const (
	WasteTypeExpiry      = "EXPIRY"
	WasteTypeDamage      = "DAMAGE"
	WasteTypeTheft       = "THEFT"
	WasteTypeTemperature = "TEMPERATURE"
	WasteTypeQuality     = "QUALITY"
	WasteTypeOther       = "OTHER"
)

// WasteRecord documenta una pérdida de inventario (merma). Genera un Movement
// negativo y, si referencia un lote, descuenta su cantidad.
type WasteRecord struct {
	ID            string
	WarehouseID   string
	ProductID     string
	LotID         string // opcional
	Type          string
	Quantity      decimal.Decimal
	UnitCost      decimal.Decimal
	TotalCost     decimal.Decimal
	Reason        string
	ResponsibleID string // usuario responsable, opcional
	PhotoURL      string // evidencia fotográfica, opcional
	CreatedBy     string
	CreatedAt     time.Time
}

// ValidWasteType indica si t es un tipo de merma conocido.
func ValidWasteType(t string) bool {
	switch t {
	case WasteTypeExpiry, WasteTypeDamage, WasteTypeTheft,
		WasteTypeTemperature, WasteTypeQuality, WasteTypeOther:
		return true
	}
	return false
}
