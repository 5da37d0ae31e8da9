package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/restoqly/restopos-api/internal/domain/entity"
	"github.com/restoqly/restopos-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = `id, type, reference_type, reference_id, product_id,
	lot_id, warehouse_id, quantity, unit_cost, total_cost, user_id, notes, created_at`

// MovementRepo implementación del libro de movimientos sobre PostgreSQL
// (usable con pool o tx). Solo inserta y consulta.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste un movimiento.
func (r *MovementRepo) Create(m *entity.Movement) error {
	query := `
		INSERT INTO movements (id, type, reference_type, reference_id, product_id,
			lot_id, warehouse_id, quantity, unit_cost, total_cost, user_id, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	lotID := (*string)(nil)
	if m.LotID != "" {
		lotID = &m.LotID
	}
	refType := (*string)(nil)
	if m.ReferenceType != "" {
		refType = &m.ReferenceType
	}
	refID := (*string)(nil)
	if m.ReferenceID != "" {
		refID = &m.ReferenceID
	}
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.Type, refType, refID, m.ProductID,
		lotID, m.WarehouseID, m.Quantity, m.UnitCost, m.TotalCost,
		m.UserID, m.Notes, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// ListByWarehouse lista movimientos de una bodega en un rango de fechas.
func (r *MovementRepo) ListByWarehouse(warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	return r.listFiltered("warehouse_id", warehouseID, from, to, limit, offset)
}

// ListByProduct lista movimientos de un producto en un rango de fechas.
func (r *MovementRepo) ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	return r.listFiltered("product_id", productID, from, to, limit, offset)
}

func (r *MovementRepo) listFiltered(column, value string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE ` + column + ` = $1`
	args := []any{value}
	pos := 2
	if from != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)
	return r.scanMany(query, args...)
}

// ListByLot devuelve la historia completa de un lote, en orden cronológico.
func (r *MovementRepo) ListByLot(lotID string) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements
		WHERE lot_id = $1 ORDER BY created_at ASC`
	return r.scanMany(query, lotID)
}

// ListByReference devuelve los movimientos de un documento (venta, traslado,
// ajuste, merma), en orden cronológico.
func (r *MovementRepo) ListByReference(referenceType, referenceID string) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements
		WHERE reference_type = $1 AND reference_id = $2 ORDER BY created_at ASC, id ASC`
	return r.scanMany(query, referenceType, referenceID)
}

func (r *MovementRepo) scanMany(query string, args ...any) ([]*entity.Movement, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("query movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		var refType, refID, lotID *string
		if err := rows.Scan(&m.ID, &m.Type, &refType, &refID, &m.ProductID,
			&lotID, &m.WarehouseID, &m.Quantity, &m.UnitCost, &m.TotalCost,
			&m.UserID, &m.Notes, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		if refType != nil {
			m.ReferenceType = *refType
		}
		if refID != nil {
			m.ReferenceID = *refID
		}
		if lotID != nil {
			m.LotID = *lotID
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
