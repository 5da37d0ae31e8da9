package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/restoqly/restopos-api/internal/domain/entity"
	"github.com/restoqly/restopos-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `id, number, session_id, cash_register_id, subtotal,
	tax_amount, discount_amount, total_amount, status, cashier_id, created_at, updated_at`

// SaleRepo implementación de SaleRepository sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste la cabecera de la venta.
func (r *SaleRepo) Create(s *entity.Sale) error {
	query := `
		INSERT INTO sales (id, number, session_id, cash_register_id, subtotal,
			tax_amount, discount_amount, total_amount, status, cashier_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.Number, s.SessionID, s.CashRegisterID, s.Subtotal,
		s.TaxAmount, s.DiscountAmount, s.TotalAmount, s.Status, s.CashierID,
		s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de venta.
func (r *SaleRepo) CreateItem(item *entity.SaleItem) error {
	query := `
		INSERT INTO sale_items (id, sale_id, product_id, quantity, unit_price,
			tax_rate, tax_amount, discount_pct, discount_amount, subtotal, total,
			unit_cost, total_cost, lot_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	lotID := (*string)(nil)
	if item.LotID != "" {
		lotID = &item.LotID
	}
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.SaleID, item.ProductID, item.Quantity, item.UnitPrice,
		item.TaxRate, item.TaxAmount, item.DiscountPct, item.DiscountAmount,
		item.Subtotal, item.Total, item.UnitCost, item.TotalCost, lotID,
	)
	if err != nil {
		return fmt.Errorf("insert sale item: %w", err)
	}
	return nil
}

// CreatePayment persiste un pago de la venta.
func (r *SaleRepo) CreatePayment(p *entity.SalePayment) error {
	query := `
		INSERT INTO sale_payments (id, sale_id, method, amount, reference, card_last4, paid_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.SaleID, p.Method, p.Amount, p.Reference, p.CardLast4, p.PaidAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale payment: %w", err)
	}
	return nil
}

// GetByID devuelve la venta con ítems y pagos cargados.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1`
	var s entity.Sale
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.Number, &s.SessionID, &s.CashRegisterID, &s.Subtotal,
		&s.TaxAmount, &s.DiscountAmount, &s.TotalAmount, &s.Status, &s.CashierID,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	if err := r.loadItems(&s); err != nil {
		return nil, err
	}
	if err := r.loadPayments(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

// UpdateStatus actualiza el estado de la venta.
func (r *SaleRepo) UpdateStatus(s *entity.Sale) error {
	query := `UPDATE sales SET status = $2, updated_at = $3 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, s.ID, s.Status, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update sale status: %w", err)
	}
	return nil
}

// NextSequence incrementa y devuelve la secuencia de folios del día. Upsert
// atómico sobre la fila contador: dos ventas concurrentes obtienen secuencias
// distintas sin escanear el máximo existente.
func (r *SaleRepo) NextSequence(dateKey string) (int64, error) {
	query := `
		INSERT INTO sale_counters (date_key, last_seq)
		VALUES ($1, 1)
		ON CONFLICT (date_key) DO UPDATE SET last_seq = sale_counters.last_seq + 1
		RETURNING last_seq`
	var seq int64
	err := r.q.QueryRow(context.Background(), query, dateKey).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next sale sequence: %w", err)
	}
	return seq, nil
}

// ListBySession lista las ventas de una sesión (cabeceras, sin ítems).
func (r *SaleRepo) ListBySession(sessionID string, limit, offset int) ([]*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE session_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, sessionID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(&s.ID, &s.Number, &s.SessionID, &s.CashRegisterID,
			&s.Subtotal, &s.TaxAmount, &s.DiscountAmount, &s.TotalAmount,
			&s.Status, &s.CashierID, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

func (r *SaleRepo) loadItems(s *entity.Sale) error {
	query := `
		SELECT id, sale_id, product_id, quantity, unit_price, tax_rate, tax_amount,
			discount_pct, discount_amount, subtotal, total, unit_cost, total_cost, lot_id
		FROM sale_items WHERE sale_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, s.ID)
	if err != nil {
		return fmt.Errorf("load sale items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var item entity.SaleItem
		var lotID *string
		if err := rows.Scan(&item.ID, &item.SaleID, &item.ProductID, &item.Quantity,
			&item.UnitPrice, &item.TaxRate, &item.TaxAmount, &item.DiscountPct,
			&item.DiscountAmount, &item.Subtotal, &item.Total, &item.UnitCost,
			&item.TotalCost, &lotID); err != nil {
			return fmt.Errorf("scan sale item: %w", err)
		}
		if lotID != nil {
			item.LotID = *lotID
		}
		s.Items = append(s.Items, item)
	}
	return rows.Err()
}

func (r *SaleRepo) loadPayments(s *entity.Sale) error {
	query := `
		SELECT id, sale_id, method, amount, reference, card_last4, paid_at
		FROM sale_payments WHERE sale_id = $1 ORDER BY paid_at`
	rows, err := r.q.Query(context.Background(), query, s.ID)
	if err != nil {
		return fmt.Errorf("load sale payments: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var p entity.SalePayment
		if err := rows.Scan(&p.ID, &p.SaleID, &p.Method, &p.Amount,
			&p.Reference, &p.CardLast4, &p.PaidAt); err != nil {
			return fmt.Errorf("scan sale payment: %w", err)
		}
		s.Payments = append(s.Payments, p)
	}
	return rows.Err()
}
