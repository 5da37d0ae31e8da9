package postgres

import (
	"context"
	"fmt"

	"github.com/restoqly/restopos-api/internal/domain/entity"
	"github.com/restoqly/restopos-api/internal/domain/repository"
)

var _ repository.WasteRepository = (*WasteRepo)(nil)

// WasteRepo implementación de WasteRepository sobre PostgreSQL (usable con pool o tx).
type WasteRepo struct {
	q Querier
}

// NewWasteRepository construye el adaptador. Pasar pool o tx (Querier).
func NewWasteRepository(q Querier) *WasteRepo {
	return &WasteRepo{q: q}
}

// Create persiste un registro de merma.
func (r *WasteRepo) Create(w *entity.WasteRecord) error {
	query := `
		INSERT INTO waste_records (id, warehouse_id, product_id, lot_id, type,
			quantity, unit_cost, total_cost, reason, responsible_id, photo_url,
			created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	lotID := (*string)(nil)
	if w.LotID != "" {
		lotID = &w.LotID
	}
	responsibleID := (*string)(nil)
	if w.ResponsibleID != "" {
		responsibleID = &w.ResponsibleID
	}
	_, err := r.q.Exec(context.Background(), query,
		w.ID, w.WarehouseID, w.ProductID, lotID, w.Type,
		w.Quantity, w.UnitCost, w.TotalCost, w.Reason, responsibleID, w.PhotoURL,
		w.CreatedBy, w.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert waste record: %w", err)
	}
	return nil
}

// ListByWarehouse lista mermas de la bodega, más recientes primero.
func (r *WasteRepo) ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.WasteRecord, error) {
	query := `
		SELECT id, warehouse_id, product_id, lot_id, type, quantity, unit_cost,
			total_cost, reason, responsible_id, photo_url, created_by, created_at
		FROM waste_records WHERE warehouse_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, warehouseID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list waste records: %w", err)
	}
	defer rows.Close()
	var list []*entity.WasteRecord
	for rows.Next() {
		var w entity.WasteRecord
		var lotID, responsibleID *string
		if err := rows.Scan(&w.ID, &w.WarehouseID, &w.ProductID, &lotID, &w.Type,
			&w.Quantity, &w.UnitCost, &w.TotalCost, &w.Reason, &responsibleID,
			&w.PhotoURL, &w.CreatedBy, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan waste record: %w", err)
		}
		if lotID != nil {
			w.LotID = *lotID
		}
		if responsibleID != nil {
			w.ResponsibleID = *responsibleID
		}
		list = append(list, &w)
	}
	return list, rows.Err()
}
