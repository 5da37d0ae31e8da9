package repository

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/restoqly/restopos-api/internal/domain/entity"
)

// LotRepository define el puerto de acceso a lotes. Las variantes ForUpdate
// bloquean las filas (SELECT FOR UPDATE) y deben usarse dentro de una
// transacción; FindAvailable* entrega siempre orden PEPS (entry_date ASC,
// id ASC) que además fija el orden de adquisición de locks.
type LotRepository interface {
	Create(lot *entity.Lot) error
	GetByID(id string) (*entity.Lot, error)
	GetByIDForUpdate(id string) (*entity.Lot, error)
	// FindByNumber busca por la clave natural (producto, bodega, número de lote del proveedor).
	FindByNumber(productID, warehouseID, lotNumber string) (*entity.Lot, error)
	FindAvailable(productID, warehouseID string) ([]*entity.Lot, error)
	FindAvailableForUpdate(productID, warehouseID string) ([]*entity.Lot, error)
	// FindAvailableByBranchForUpdate abarca todas las bodegas de la sucursal en un solo orden PEPS.
	FindAvailableByBranchForUpdate(productID, branchID string) ([]*entity.Lot, error)
	Update(lot *entity.Lot) error
	// AvailableQuantityByBranch suma el disponible del producto en las bodegas de la sucursal.
	AvailableQuantityByBranch(productID, branchID string) (decimal.Decimal, error)
	// StockSummary agrega lotes AVAILABLE por (producto, bodega); filtros vacíos = sin filtro.
	StockSummary(productID, warehouseID string) ([]*entity.StockSummary, error)
	// MarkExpired pasa a EXPIRED los lotes AVAILABLE vencidos; devuelve filas afectadas.
	MarkExpired(now time.Time) (int64, error)
	// MaxInternalSequence devuelve la mayor secuencia usada para los códigos
	// internos de la bodega con el prefijo dado (ej. "INT-2608-").
	MaxInternalSequence(warehouseID, prefix string) (int, error)
}
