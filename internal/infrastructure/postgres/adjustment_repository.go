package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/restoqly/restopos-api/internal/domain/entity"
	"github.com/restoqly/restopos-api/internal/domain/repository"
)

var _ repository.AdjustmentRepository = (*AdjustmentRepo)(nil)

// AdjustmentRepo implementación de AdjustmentRepository sobre PostgreSQL
// (usable con pool o tx).
type AdjustmentRepo struct {
	q Querier
}

// NewAdjustmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAdjustmentRepository(q Querier) *AdjustmentRepo {
	return &AdjustmentRepo{q: q}
}

// Create persiste el documento con sus ítems.
func (r *AdjustmentRepo) Create(a *entity.Adjustment) error {
	query := `
		INSERT INTO adjustments (id, warehouse_id, type, status, notes, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.WarehouseID, a.Type, a.Status, a.Notes, a.CreatedBy, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert adjustment: %w", err)
	}
	itemQuery := `
		INSERT INTO adjustment_items (id, adjustment_id, product_id, lot_id,
			system_quantity, physical_quantity, difference, unit_cost, cost_impact, reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	for _, item := range a.Items {
		_, err := r.q.Exec(context.Background(), itemQuery,
			item.ID, item.AdjustmentID, item.ProductID, item.LotID,
			item.SystemQuantity, item.PhysicalQuantity, item.Difference,
			item.UnitCost, item.CostImpact, item.Reason,
		)
		if err != nil {
			return fmt.Errorf("insert adjustment item: %w", err)
		}
	}
	return nil
}

// GetByID devuelve el ajuste con sus ítems.
func (r *AdjustmentRepo) GetByID(id string) (*entity.Adjustment, error) {
	query := `
		SELECT id, warehouse_id, type, status, notes, created_by, created_at,
			approved_by, approved_at, applied_by, applied_at
		FROM adjustments WHERE id = $1`
	var a entity.Adjustment
	var approvedBy, appliedBy *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&a.ID, &a.WarehouseID, &a.Type, &a.Status, &a.Notes, &a.CreatedBy, &a.CreatedAt,
		&approvedBy, &a.ApprovedAt, &appliedBy, &a.AppliedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get adjustment: %w", err)
	}
	if approvedBy != nil {
		a.ApprovedBy = *approvedBy
	}
	if appliedBy != nil {
		a.AppliedBy = *appliedBy
	}
	if err := r.loadItems(&a); err != nil {
		return nil, err
	}
	return &a, nil
}

// UpdateStatus solo toca los campos de estado/aprobación; los ítems son inmutables.
func (r *AdjustmentRepo) UpdateStatus(a *entity.Adjustment) error {
	query := `
		UPDATE adjustments SET status = $2, approved_by = $3, approved_at = $4,
			applied_by = $5, applied_at = $6
		WHERE id = $1`
	approvedBy := (*string)(nil)
	if a.ApprovedBy != "" {
		approvedBy = &a.ApprovedBy
	}
	appliedBy := (*string)(nil)
	if a.AppliedBy != "" {
		appliedBy = &a.AppliedBy
	}
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.Status, approvedBy, a.ApprovedAt, appliedBy, a.AppliedAt,
	)
	if err != nil {
		return fmt.Errorf("update adjustment status: %w", err)
	}
	return nil
}

// ListByWarehouse lista ajustes de la bodega, más recientes primero, con ítems.
func (r *AdjustmentRepo) ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.Adjustment, error) {
	query := `
		SELECT id, warehouse_id, type, status, notes, created_by, created_at,
			approved_by, approved_at, applied_by, applied_at
		FROM adjustments WHERE warehouse_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, warehouseID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list adjustments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Adjustment
	for rows.Next() {
		var a entity.Adjustment
		var approvedBy, appliedBy *string
		if err := rows.Scan(&a.ID, &a.WarehouseID, &a.Type, &a.Status, &a.Notes,
			&a.CreatedBy, &a.CreatedAt, &approvedBy, &a.ApprovedAt, &appliedBy, &a.AppliedAt); err != nil {
			return nil, fmt.Errorf("scan adjustment: %w", err)
		}
		if approvedBy != nil {
			a.ApprovedBy = *approvedBy
		}
		if appliedBy != nil {
			a.AppliedBy = *appliedBy
		}
		list = append(list, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, a := range list {
		if err := r.loadItems(a); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func (r *AdjustmentRepo) loadItems(a *entity.Adjustment) error {
	query := `
		SELECT id, adjustment_id, product_id, lot_id, system_quantity,
			physical_quantity, difference, unit_cost, cost_impact, reason
		FROM adjustment_items WHERE adjustment_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, a.ID)
	if err != nil {
		return fmt.Errorf("load adjustment items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var item entity.AdjustmentItem
		if err := rows.Scan(&item.ID, &item.AdjustmentID, &item.ProductID, &item.LotID,
			&item.SystemQuantity, &item.PhysicalQuantity, &item.Difference,
			&item.UnitCost, &item.CostImpact, &item.Reason); err != nil {
			return fmt.Errorf("scan adjustment item: %w", err)
		}
		a.Items = append(a.Items, item)
	}
	return rows.Err()
}
