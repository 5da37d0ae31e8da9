package entity

import "time"

// Warehouse representa una bodega/almacén de una sucursal. Las consultas de
// stock de venta se acotan por BranchID a través de las bodegas de la sucursal.
type Warehouse struct {
	ID        string
	BranchID  string
	Name      string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
