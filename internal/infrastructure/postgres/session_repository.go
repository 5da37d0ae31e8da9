package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/restoqly/restopos-api/internal/domain/entity"
	"github.com/restoqly/restopos-api/internal/domain/repository"
)

var _ repository.SessionRepository = (*SessionRepo)(nil)

const sessionColumns = `id, cash_register_id, user_id, opened_at, closed_at,
	opening_cash, expected_cash, actual_cash, cash_difference,
	total_sales, card_sales, transfer_sales, status, notes`

// SessionRepo implementación de SessionRepository sobre PostgreSQL (usable con
// pool o tx). La unicidad de sesión OPEN por caja la garantiza el índice único
// parcial cash_sessions_one_open_per_register.
type SessionRepo struct {
	q Querier
}

// NewSessionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSessionRepository(q Querier) *SessionRepo {
	return &SessionRepo{q: q}
}

// Create persiste la sesión; la carrera entre dos aperturas la decide el
// índice único parcial y se mapea a ErrSessionAlreadyOpen.
func (r *SessionRepo) Create(s *entity.CashSession) error {
	query := `
		INSERT INTO cash_sessions (id, cash_register_id, user_id, opened_at, closed_at,
			opening_cash, expected_cash, actual_cash, cash_difference,
			total_sales, card_sales, transfer_sales, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.CashRegisterID, s.UserID, s.OpenedAt, s.ClosedAt,
		s.OpeningCash, s.ExpectedCash, s.ActualCash, s.CashDifference,
		s.TotalSales, s.CardSales, s.TransferSales, s.Status, s.Notes,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return uniqueViolationError(err)
		}
		return fmt.Errorf("insert cash session: %w", err)
	}
	return nil
}

// GetByID obtiene una sesión por ID.
func (r *SessionRepo) GetByID(id string) (*entity.CashSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM cash_sessions WHERE id = $1`
	return r.scanOne(query, id)
}

// GetByIDForUpdate obtiene la sesión bloqueando su fila (SELECT FOR UPDATE).
func (r *SessionRepo) GetByIDForUpdate(id string) (*entity.CashSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM cash_sessions WHERE id = $1 FOR UPDATE`
	return r.scanOne(query, id)
}

// FindOpenByRegister devuelve la sesión OPEN de la caja, si existe.
func (r *SessionRepo) FindOpenByRegister(registerID string) (*entity.CashSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM cash_sessions
		WHERE cash_register_id = $1 AND status = 'OPEN'`
	return r.scanOne(query, registerID)
}

// Update persiste acumulados, arqueo y estado.
func (r *SessionRepo) Update(s *entity.CashSession) error {
	query := `
		UPDATE cash_sessions SET closed_at = $2, expected_cash = $3, actual_cash = $4,
			cash_difference = $5, total_sales = $6, card_sales = $7,
			transfer_sales = $8, status = $9, notes = $10
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.ClosedAt, s.ExpectedCash, s.ActualCash,
		s.CashDifference, s.TotalSales, s.CardSales,
		s.TransferSales, s.Status, s.Notes,
	)
	if err != nil {
		return fmt.Errorf("update cash session: %w", err)
	}
	return nil
}

// SumPaymentsByMethod suma los pagos del método sobre las ventas COMPLETED de
// la sesión; las anuladas quedan fuera del arqueo.
func (r *SessionRepo) SumPaymentsByMethod(sessionID, method string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(p.amount), 0)
		FROM sale_payments p
		JOIN sales s ON s.id = p.sale_id
		WHERE s.session_id = $1 AND s.status = 'COMPLETED' AND p.method = $2`
	var total decimal.Decimal
	err := r.q.QueryRow(context.Background(), query, sessionID, method).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum payments by method: %w", err)
	}
	return total, nil
}

func (r *SessionRepo) scanOne(query string, args ...any) (*entity.CashSession, error) {
	var s entity.CashSession
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&s.ID, &s.CashRegisterID, &s.UserID, &s.OpenedAt, &s.ClosedAt,
		&s.OpeningCash, &s.ExpectedCash, &s.ActualCash, &s.CashDifference,
		&s.TotalSales, &s.CardSales, &s.TransferSales, &s.Status, &s.Notes,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cash session: %w", err)
	}
	return &s, nil
}
