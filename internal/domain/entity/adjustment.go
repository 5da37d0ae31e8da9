package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del documento de ajuste. APPLIED y CANCELLED son terminales:
// solo DRAFT puede aprobarse, solo APPROVED puede aplicarse y un ajuste
// aplicado jamás se anula.
const (
	AdjustmentStatusDraft     = "DRAFT"
	AdjustmentStatusApproved  = "APPROVED"
	AdjustmentStatusApplied   = "APPLIED"
	AdjustmentStatusCancelled = "CANCELLED"
)

// Tipos de ajuste de inventario.
const (
	AdjustmentTypePhysicalCount = "PHYSICAL_COUNT"
	AdjustmentTypeDamage        = "DAMAGE"
	AdjustmentTypeLoss          = "LOSS"
	AdjustmentTypeCorrection    = "CORRECTION"
)

// Adjustment es un documento de conciliación de inventario contra conteo físico.
// Los ítems son inmutables después de la creación; solo cambian el estado y
// los campos de quién aprobó/aplicó.
type Adjustment struct {
	ID          string
	WarehouseID string
	Type        string
	Status      string
	Notes       string
	CreatedBy   string
	CreatedAt   time.Time
	ApprovedBy  string
	ApprovedAt  *time.Time
	AppliedBy   string
	AppliedAt   *time.Time
	Items       []AdjustmentItem
}

// AdjustmentItem es una línea del ajuste: cantidad de sistema (snapshot al
// crear), cantidad física contada y los campos derivados.
type AdjustmentItem struct {
	ID               string
	AdjustmentID     string
	ProductID        string
	LotID            string
	SystemQuantity   decimal.Decimal
	PhysicalQuantity decimal.Decimal
	Difference       decimal.Decimal // physical − system
	UnitCost         decimal.Decimal
	CostImpact       decimal.Decimal // difference × unit cost
	Reason           string
}

// NewAdjustmentItem construye una línea con Difference y CostImpact derivados.
func NewAdjustmentItem(productID, lotID string, systemQty, physicalQty, unitCost decimal.Decimal, reason string) AdjustmentItem {
	diff := physicalQty.Sub(systemQty)
	return AdjustmentItem{
		ProductID:        productID,
		LotID:            lotID,
		SystemQuantity:   systemQty,
		PhysicalQuantity: physicalQty,
		Difference:       diff,
		UnitCost:         unitCost,
		CostImpact:       diff.Mul(unitCost),
		Reason:           reason,
	}
}

// ValidAdjustmentType indica si t es un tipo de ajuste conocido.
func ValidAdjustmentType(t string) bool {
	switch t {
	case AdjustmentTypePhysicalCount, AdjustmentTypeDamage, AdjustmentTypeLoss, AdjustmentTypeCorrection:
		return true
	}
	return false
}
