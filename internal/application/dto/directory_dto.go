package dto

import (
	"time"

	"github.com/restoqly/restopos-api/internal/domain/entity"
)

// WarehouseResponse salida de una bodega del directorio.
type WarehouseResponse struct {
	ID        string    `json:"id"`
	BranchID  string    `json:"branch_id"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ToWarehouseResponses convierte la lista de bodegas.
func ToWarehouseResponses(list []*entity.Warehouse) []WarehouseResponse {
	out := make([]WarehouseResponse, 0, len(list))
	for _, w := range list {
		out = append(out, WarehouseResponse{
			ID:        w.ID,
			BranchID:  w.BranchID,
			Name:      w.Name,
			Address:   w.Address,
			CreatedAt: w.CreatedAt,
		})
	}
	return out
}

// CashRegisterResponse salida de una caja registradora del directorio.
type CashRegisterResponse struct {
	ID        string    `json:"id"`
	BranchID  string    `json:"branch_id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// ToCashRegisterResponses convierte la lista de cajas.
func ToCashRegisterResponses(list []*entity.CashRegister) []CashRegisterResponse {
	out := make([]CashRegisterResponse, 0, len(list))
	for _, r := range list {
		out = append(out, CashRegisterResponse{
			ID:        r.ID,
			BranchID:  r.BranchID,
			Code:      r.Code,
			Name:      r.Name,
			Active:    r.Active,
			CreatedAt: r.CreatedAt,
		})
	}
	return out
}
