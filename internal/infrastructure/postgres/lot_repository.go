package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/restoqly/restopos-api/internal/domain/entity"
	"github.com/restoqly/restopos-api/internal/domain/repository"
)

var _ repository.LotRepository = (*LotRepo)(nil)

const lotColumns = `id, product_id, warehouse_id, lot_number, internal_code,
	initial_quantity, current_quantity, reserved_quantity, unit_cost,
	entry_date, production_date, expiry_date, status, created_at, updated_at`

// LotRepo implementación de LotRepository sobre PostgreSQL (usable con pool o tx).
type LotRepo struct {
	q Querier
}

// NewLotRepository construye el adaptador de lotes. Pasar pool o tx (Querier).
func NewLotRepository(q Querier) *LotRepo {
	return &LotRepo{q: q}
}

// Create persiste un lote. Mapea las violaciones de unicidad a errores de
// dominio (código interno, clave natural del lote).
func (r *LotRepo) Create(lot *entity.Lot) error {
	query := `
		INSERT INTO lots (id, product_id, warehouse_id, lot_number, internal_code,
			initial_quantity, current_quantity, reserved_quantity, unit_cost,
			entry_date, production_date, expiry_date, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		lot.ID, lot.ProductID, lot.WarehouseID, lot.LotNumber, lot.InternalCode,
		lot.InitialQuantity, lot.CurrentQuantity, lot.ReservedQuantity, lot.UnitCost,
		lot.EntryDate, lot.ProductionDate, lot.ExpiryDate, lot.Status,
		lot.CreatedAt, lot.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return uniqueViolationError(err)
		}
		return fmt.Errorf("insert lot: %w", err)
	}
	return nil
}

// GetByID obtiene un lote por ID.
func (r *LotRepo) GetByID(id string) (*entity.Lot, error) {
	query := `SELECT ` + lotColumns + ` FROM lots WHERE id = $1`
	return r.scanOne(query, id)
}

// GetByIDForUpdate obtiene el lote bloqueando su fila (SELECT FOR UPDATE).
func (r *LotRepo) GetByIDForUpdate(id string) (*entity.Lot, error) {
	query := `SELECT ` + lotColumns + ` FROM lots WHERE id = $1 FOR UPDATE`
	return r.scanOne(query, id)
}

// FindByNumber busca por la clave natural (producto, bodega, número de proveedor).
func (r *LotRepo) FindByNumber(productID, warehouseID, lotNumber string) (*entity.Lot, error) {
	query := `SELECT ` + lotColumns + ` FROM lots
		WHERE product_id = $1 AND warehouse_id = $2 AND lot_number = $3`
	return r.scanOne(query, productID, warehouseID, lotNumber)
}

// FindAvailable devuelve lotes AVAILABLE en orden PEPS. warehouseID vacío
// consulta todas las bodegas.
func (r *LotRepo) FindAvailable(productID, warehouseID string) ([]*entity.Lot, error) {
	return r.findAvailable(productID, warehouseID, false)
}

// FindAvailableForUpdate igual que FindAvailable pero bloqueando las filas.
// El ORDER BY fija el orden de adquisición de locks: todo consumidor recorre
// los lotes en el mismo orden PEPS, lo que evita deadlocks entre ventas
// concurrentes del mismo producto.
func (r *LotRepo) FindAvailableForUpdate(productID, warehouseID string) ([]*entity.Lot, error) {
	return r.findAvailable(productID, warehouseID, true)
}

func (r *LotRepo) findAvailable(productID, warehouseID string, lock bool) ([]*entity.Lot, error) {
	query := `SELECT ` + lotColumns + ` FROM lots
		WHERE product_id = $1 AND status = 'AVAILABLE'`
	args := []any{productID}
	if warehouseID != "" {
		query += ` AND warehouse_id = $2`
		args = append(args, warehouseID)
	}
	query += ` ORDER BY entry_date ASC, id ASC`
	if lock {
		query += ` FOR UPDATE`
	}
	return r.scanMany(query, args...)
}

// FindAvailableByBranchForUpdate abarca todas las bodegas de la sucursal en
// un solo orden PEPS, con lock.
func (r *LotRepo) FindAvailableByBranchForUpdate(productID, branchID string) ([]*entity.Lot, error) {
	query := `
		SELECT l.id, l.product_id, l.warehouse_id, l.lot_number, l.internal_code,
			l.initial_quantity, l.current_quantity, l.reserved_quantity, l.unit_cost,
			l.entry_date, l.production_date, l.expiry_date, l.status, l.created_at, l.updated_at
		FROM lots l
		JOIN warehouses w ON w.id = l.warehouse_id
		WHERE l.product_id = $1 AND w.branch_id = $2 AND l.status = 'AVAILABLE'
		ORDER BY l.entry_date ASC, l.id ASC
		FOR UPDATE OF l`
	return r.scanMany(query, productID, branchID)
}

// Update persiste cantidad, costo y estado del lote.
func (r *LotRepo) Update(lot *entity.Lot) error {
	query := `
		UPDATE lots SET current_quantity = $2, reserved_quantity = $3,
			initial_quantity = $4, unit_cost = $5, status = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		lot.ID, lot.CurrentQuantity, lot.ReservedQuantity,
		lot.InitialQuantity, lot.UnitCost, lot.Status, lot.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update lot: %w", err)
	}
	return nil
}

// AvailableQuantityByBranch suma el disponible del producto en las bodegas de
// la sucursal.
func (r *LotRepo) AvailableQuantityByBranch(productID, branchID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(l.current_quantity - l.reserved_quantity), 0)
		FROM lots l
		JOIN warehouses w ON w.id = l.warehouse_id
		WHERE l.product_id = $1 AND w.branch_id = $2 AND l.status = 'AVAILABLE'`
	var total decimal.Decimal
	err := r.q.QueryRow(context.Background(), query, productID, branchID).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("available quantity by branch: %w", err)
	}
	return total, nil
}

// StockSummary agrega lotes AVAILABLE por (producto, bodega); filtros vacíos
// no acotan.
func (r *LotRepo) StockSummary(productID, warehouseID string) ([]*entity.StockSummary, error) {
	query := `
		SELECT product_id, warehouse_id,
			SUM(current_quantity), SUM(reserved_quantity),
			SUM(current_quantity - reserved_quantity),
			CASE WHEN SUM(current_quantity) > 0
				THEN SUM(current_quantity * unit_cost) / SUM(current_quantity)
				ELSE 0 END,
			COUNT(*), MIN(expiry_date)
		FROM lots WHERE status = 'AVAILABLE'`
	args := []any{}
	pos := 1
	if productID != "" {
		query += fmt.Sprintf(" AND product_id = $%d", pos)
		args = append(args, productID)
		pos++
	}
	if warehouseID != "" {
		query += fmt.Sprintf(" AND warehouse_id = $%d", pos)
		args = append(args, warehouseID)
	}
	query += ` GROUP BY product_id, warehouse_id ORDER BY product_id, warehouse_id`

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("stock summary: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockSummary
	for rows.Next() {
		var s entity.StockSummary
		if err := rows.Scan(&s.ProductID, &s.WarehouseID, &s.TotalQuantity,
			&s.ReservedQuantity, &s.AvailableQuantity, &s.AverageUnitCost,
			&s.LotCount, &s.EarliestExpiry); err != nil {
			return nil, fmt.Errorf("scan stock summary: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// MarkExpired pasa a EXPIRED los lotes AVAILABLE ya vencidos. Idempotente.
func (r *LotRepo) MarkExpired(now time.Time) (int64, error) {
	query := `
		UPDATE lots SET status = 'EXPIRED', updated_at = $1
		WHERE status = 'AVAILABLE' AND expiry_date IS NOT NULL AND expiry_date < $1`
	tag, err := r.q.Exec(context.Background(), query, now)
	if err != nil {
		return 0, fmt.Errorf("mark expired: %w", err)
	}
	return tag.RowsAffected(), nil
}

// MaxInternalSequence devuelve la mayor secuencia usada en los códigos
// internos de la bodega con el prefijo dado (ej. "INT-2608-").
func (r *LotRepo) MaxInternalSequence(warehouseID, prefix string) (int, error) {
	query := `
		SELECT COALESCE(MAX(CAST(SUBSTRING(internal_code FROM LENGTH($2) + 1) AS INTEGER)), 0)
		FROM lots
		WHERE warehouse_id = $1 AND internal_code LIKE $2 || '%'`
	var max int
	err := r.q.QueryRow(context.Background(), query, warehouseID, prefix).Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("max internal sequence: %w", err)
	}
	return max, nil
}

func (r *LotRepo) scanOne(query string, args ...any) (*entity.Lot, error) {
	var l entity.Lot
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&l.ID, &l.ProductID, &l.WarehouseID, &l.LotNumber, &l.InternalCode,
		&l.InitialQuantity, &l.CurrentQuantity, &l.ReservedQuantity, &l.UnitCost,
		&l.EntryDate, &l.ProductionDate, &l.ExpiryDate, &l.Status,
		&l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lot: %w", err)
	}
	return &l, nil
}

func (r *LotRepo) scanMany(query string, args ...any) ([]*entity.Lot, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("query lots: %w", err)
	}
	defer rows.Close()
	var list []*entity.Lot
	for rows.Next() {
		var l entity.Lot
		if err := rows.Scan(
			&l.ID, &l.ProductID, &l.WarehouseID, &l.LotNumber, &l.InternalCode,
			&l.InitialQuantity, &l.CurrentQuantity, &l.ReservedQuantity, &l.UnitCost,
			&l.EntryDate, &l.ProductionDate, &l.ExpiryDate, &l.Status,
			&l.CreatedAt, &l.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan lot: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
