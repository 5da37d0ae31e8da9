package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/restoqly/restopos-api/internal/domain/entity"
)

// CreateLotRequest body para POST /api/inventory/lots.
type CreateLotRequest struct {
	ProductID      string          `json:"product_id" validate:"required"`
	WarehouseID    string          `json:"warehouse_id" validate:"required"`
	LotNumber      string          `json:"lot_number" validate:"required"`
	Quantity       decimal.Decimal `json:"quantity"`
	UnitCost       decimal.Decimal `json:"unit_cost"`
	ProductionDate *time.Time      `json:"production_date,omitempty"`
	ExpiryDate     *time.Time      `json:"expiry_date,omitempty"`
}

// LotResponse salida de un lote.
type LotResponse struct {
	ID                string          `json:"id"`
	ProductID         string          `json:"product_id"`
	WarehouseID       string          `json:"warehouse_id"`
	LotNumber         string          `json:"lot_number"`
	InternalCode      string          `json:"internal_code"`
	InitialQuantity   decimal.Decimal `json:"initial_quantity"`
	CurrentQuantity   decimal.Decimal `json:"current_quantity"`
	ReservedQuantity  decimal.Decimal `json:"reserved_quantity"`
	AvailableQuantity decimal.Decimal `json:"available_quantity"`
	UnitCost          decimal.Decimal `json:"unit_cost"`
	EntryDate         time.Time       `json:"entry_date"`
	ProductionDate    *time.Time      `json:"production_date,omitempty"`
	ExpiryDate        *time.Time      `json:"expiry_date,omitempty"`
	Status            string          `json:"status"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// ToLotResponse convierte la entidad de dominio a su DTO.
func ToLotResponse(l *entity.Lot) LotResponse {
	return LotResponse{
		ID:                l.ID,
		ProductID:         l.ProductID,
		WarehouseID:       l.WarehouseID,
		LotNumber:         l.LotNumber,
		InternalCode:      l.InternalCode,
		InitialQuantity:   l.InitialQuantity,
		CurrentQuantity:   l.CurrentQuantity,
		ReservedQuantity:  l.ReservedQuantity,
		AvailableQuantity: l.AvailableQuantity(),
		UnitCost:          l.UnitCost,
		EntryDate:         l.EntryDate,
		ProductionDate:    l.ProductionDate,
		ExpiryDate:        l.ExpiryDate,
		Status:            l.Status,
		CreatedAt:         l.CreatedAt,
		UpdatedAt:         l.UpdatedAt,
	}
}

// ToLotResponses convierte una lista de lotes.
func ToLotResponses(lots []*entity.Lot) []LotResponse {
	out := make([]LotResponse, 0, len(lots))
	for _, l := range lots {
		out = append(out, ToLotResponse(l))
	}
	return out
}

// RegisterMovementRequest body para POST /api/inventory/movements.
type RegisterMovementRequest struct {
	Type          string           `json:"type" validate:"required"`
	ProductID     string           `json:"product_id" validate:"required"`
	WarehouseID   string           `json:"warehouse_id" validate:"required"`
	LotID         string           `json:"lot_id,omitempty"`
	LotNumber     string           `json:"lot_number,omitempty"`
	Quantity      decimal.Decimal  `json:"quantity"`
	UnitCost      *decimal.Decimal `json:"unit_cost,omitempty"`
	ReferenceType string           `json:"reference_type,omitempty"`
	ReferenceID   string           `json:"reference_id,omitempty"`
	Notes         string           `json:"notes,omitempty"`
}

// MovementResponse salida de un movimiento de inventario.
type MovementResponse struct {
	ID            string          `json:"id"`
	Type          string          `json:"type"`
	ReferenceType string          `json:"reference_type,omitempty"`
	ReferenceID   string          `json:"reference_id,omitempty"`
	ProductID     string          `json:"product_id"`
	LotID         string          `json:"lot_id,omitempty"`
	WarehouseID   string          `json:"warehouse_id"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	TotalCost     decimal.Decimal `json:"total_cost"`
	UserID        string          `json:"user_id"`
	Notes         string          `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ToMovementResponses convierte una lista de movimientos.
func ToMovementResponses(movs []*entity.Movement) []MovementResponse {
	out := make([]MovementResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, MovementResponse{
			ID:            m.ID,
			Type:          m.Type,
			ReferenceType: m.ReferenceType,
			ReferenceID:   m.ReferenceID,
			ProductID:     m.ProductID,
			LotID:         m.LotID,
			WarehouseID:   m.WarehouseID,
			Quantity:      m.Quantity,
			UnitCost:      m.UnitCost,
			TotalCost:     m.TotalCost,
			UserID:        m.UserID,
			Notes:         m.Notes,
			CreatedAt:     m.CreatedAt,
		})
	}
	return out
}

// StockSummaryResponse fila del resumen de stock agregado por producto/bodega.
type StockSummaryResponse struct {
	ProductID         string          `json:"product_id"`
	WarehouseID       string          `json:"warehouse_id"`
	TotalQuantity     decimal.Decimal `json:"total_quantity"`
	ReservedQuantity  decimal.Decimal `json:"reserved_quantity"`
	AvailableQuantity decimal.Decimal `json:"available_quantity"`
	AverageUnitCost   decimal.Decimal `json:"average_unit_cost"`
	LotCount          int             `json:"lot_count"`
	EarliestExpiry    *time.Time      `json:"earliest_expiry,omitempty"`
}

// ToStockSummaryResponses convierte las filas del resumen.
func ToStockSummaryResponses(rows []*entity.StockSummary) []StockSummaryResponse {
	out := make([]StockSummaryResponse, 0, len(rows))
	for _, s := range rows {
		out = append(out, StockSummaryResponse{
			ProductID:         s.ProductID,
			WarehouseID:       s.WarehouseID,
			TotalQuantity:     s.TotalQuantity,
			ReservedQuantity:  s.ReservedQuantity,
			AvailableQuantity: s.AvailableQuantity,
			AverageUnitCost:   s.AverageUnitCost,
			LotCount:          s.LotCount,
			EarliestExpiry:    s.EarliestExpiry,
		})
	}
	return out
}

// TransferRequest body para POST /api/inventory/transfers.
type TransferRequest struct {
	LotID         string          `json:"lot_id" validate:"required"`
	ToWarehouseID string          `json:"to_warehouse_id" validate:"required"`
	Quantity      decimal.Decimal `json:"quantity"`
	Notes         string          `json:"notes,omitempty"`
}

// TransferResponse salida de un traslado entre bodegas.
type TransferResponse struct {
	ID              string          `json:"id"`
	FromWarehouseID string          `json:"from_warehouse_id"`
	ToWarehouseID   string          `json:"to_warehouse_id"`
	ProductID       string          `json:"product_id"`
	LotID           string          `json:"lot_id"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
	Notes           string          `json:"notes,omitempty"`
	UserID          string          `json:"user_id"`
	CreatedAt       time.Time       `json:"created_at"`
}

// ToTransferResponse convierte la entidad de traslado.
func ToTransferResponse(t *entity.Transfer) TransferResponse {
	return TransferResponse{
		ID:              t.ID,
		FromWarehouseID: t.FromWarehouseID,
		ToWarehouseID:   t.ToWarehouseID,
		ProductID:       t.ProductID,
		LotID:           t.LotID,
		Quantity:        t.Quantity,
		UnitCost:        t.UnitCost,
		Notes:           t.Notes,
		UserID:          t.UserID,
		CreatedAt:       t.CreatedAt,
	}
}

// AdjustmentItemRequest línea de un ajuste: lote y cantidad física contada.
type AdjustmentItemRequest struct {
	LotID            string          `json:"lot_id" validate:"required"`
	PhysicalQuantity decimal.Decimal `json:"physical_quantity"`
	Reason           string          `json:"reason,omitempty"`
}

// CreateAdjustmentRequest body para POST /api/inventory/adjustments.
type CreateAdjustmentRequest struct {
	WarehouseID string                  `json:"warehouse_id" validate:"required"`
	Type        string                  `json:"type" validate:"required"`
	Notes       string                  `json:"notes,omitempty"`
	Items       []AdjustmentItemRequest `json:"items" validate:"required,min=1"`
}

// AdjustmentItemResponse línea de ajuste con los campos derivados.
type AdjustmentItemResponse struct {
	ID               string          `json:"id"`
	ProductID        string          `json:"product_id"`
	LotID            string          `json:"lot_id"`
	SystemQuantity   decimal.Decimal `json:"system_quantity"`
	PhysicalQuantity decimal.Decimal `json:"physical_quantity"`
	Difference       decimal.Decimal `json:"difference"`
	UnitCost         decimal.Decimal `json:"unit_cost"`
	CostImpact       decimal.Decimal `json:"cost_impact"`
	Reason           string          `json:"reason,omitempty"`
}

// AdjustmentResponse salida de un documento de ajuste.
type AdjustmentResponse struct {
	ID          string                   `json:"id"`
	WarehouseID string                   `json:"warehouse_id"`
	Type        string                   `json:"type"`
	Status      string                   `json:"status"`
	Notes       string                   `json:"notes,omitempty"`
	CreatedBy   string                   `json:"created_by"`
	CreatedAt   time.Time                `json:"created_at"`
	ApprovedBy  string                   `json:"approved_by,omitempty"`
	ApprovedAt  *time.Time               `json:"approved_at,omitempty"`
	AppliedBy   string                   `json:"applied_by,omitempty"`
	AppliedAt   *time.Time               `json:"applied_at,omitempty"`
	Items       []AdjustmentItemResponse `json:"items"`
}

// ToAdjustmentResponse convierte la entidad de ajuste con sus líneas.
func ToAdjustmentResponse(a *entity.Adjustment) AdjustmentResponse {
	items := make([]AdjustmentItemResponse, 0, len(a.Items))
	for _, it := range a.Items {
		items = append(items, AdjustmentItemResponse{
			ID:               it.ID,
			ProductID:        it.ProductID,
			LotID:            it.LotID,
			SystemQuantity:   it.SystemQuantity,
			PhysicalQuantity: it.PhysicalQuantity,
			Difference:       it.Difference,
			UnitCost:         it.UnitCost,
			CostImpact:       it.CostImpact,
			Reason:           it.Reason,
		})
	}
	return AdjustmentResponse{
		ID:          a.ID,
		WarehouseID: a.WarehouseID,
		Type:        a.Type,
		Status:      a.Status,
		Notes:       a.Notes,
		CreatedBy:   a.CreatedBy,
		CreatedAt:   a.CreatedAt,
		ApprovedBy:  a.ApprovedBy,
		ApprovedAt:  a.ApprovedAt,
		AppliedBy:   a.AppliedBy,
		AppliedAt:   a.AppliedAt,
		Items:       items,
	}
}

// ToAdjustmentResponses convierte una lista de ajustes.
func ToAdjustmentResponses(list []*entity.Adjustment) []AdjustmentResponse {
	out := make([]AdjustmentResponse, 0, len(list))
	for _, a := range list {
		out = append(out, ToAdjustmentResponse(a))
	}
	return out
}

// RecordWasteRequest body para POST /api/inventory/waste.
type RecordWasteRequest struct {
	ProductID     string          `json:"product_id" validate:"required"`
	WarehouseID   string          `json:"warehouse_id" validate:"required"`
	LotID         string          `json:"lot_id,omitempty"`
	Quantity      decimal.Decimal `json:"quantity"`
	Type          string          `json:"type" validate:"required"`
	Reason        string          `json:"reason,omitempty"`
	ResponsibleID string          `json:"responsible_id,omitempty"`
	PhotoURL      string          `json:"photo_url,omitempty"`
}

// WasteResponse salida de un registro de merma.
type WasteResponse struct {
	ID            string          `json:"id"`
	WarehouseID   string          `json:"warehouse_id"`
	ProductID     string          `json:"product_id"`
	LotID         string          `json:"lot_id,omitempty"`
	Type          string          `json:"type"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	TotalCost     decimal.Decimal `json:"total_cost"`
	Reason        string          `json:"reason,omitempty"`
	ResponsibleID string          `json:"responsible_id,omitempty"`
	PhotoURL      string          `json:"photo_url,omitempty"`
	CreatedBy     string          `json:"created_by"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ToWasteResponse convierte la entidad de merma.
func ToWasteResponse(w *entity.WasteRecord) WasteResponse {
	return WasteResponse{
		ID:            w.ID,
		WarehouseID:   w.WarehouseID,
		ProductID:     w.ProductID,
		LotID:         w.LotID,
		Type:          w.Type,
		Quantity:      w.Quantity,
		UnitCost:      w.UnitCost,
		TotalCost:     w.TotalCost,
		Reason:        w.Reason,
		ResponsibleID: w.ResponsibleID,
		PhotoURL:      w.PhotoURL,
		CreatedBy:     w.CreatedBy,
		CreatedAt:     w.CreatedAt,
	}
}

// ToWasteResponses convierte una lista de mermas.
func ToWasteResponses(list []*entity.WasteRecord) []WasteResponse {
	out := make([]WasteResponse, 0, len(list))
	for _, w := range list {
		out = append(out, ToWasteResponse(w))
	}
	return out
}
