package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/restoqly/restopos-api/internal/domain/entity"
	"github.com/restoqly/restopos-api/internal/domain/repository"
)

var _ repository.CashRegisterRepository = (*CashRegisterRepo)(nil)

// CashRegisterRepo implementación del directorio de cajas sobre PostgreSQL.
type CashRegisterRepo struct {
	pool *pgxpool.Pool
}

// NewCashRegisterRepository construye el adaptador.
func NewCashRegisterRepository(pool *pgxpool.Pool) *CashRegisterRepo {
	return &CashRegisterRepo{pool: pool}
}

// GetByID obtiene una caja por ID.
func (r *CashRegisterRepo) GetByID(id string) (*entity.CashRegister, error) {
	query := `
		SELECT id, branch_id, code, name, active, created_at, updated_at
		FROM cash_registers WHERE id = $1`
	var c entity.CashRegister
	err := r.pool.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.BranchID, &c.Code, &c.Name, &c.Active, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cash register: %w", err)
	}
	return &c, nil
}

// ListByBranch lista las cajas de una sucursal.
func (r *CashRegisterRepo) ListByBranch(branchID string) ([]*entity.CashRegister, error) {
	query := `
		SELECT id, branch_id, code, name, active, created_at, updated_at
		FROM cash_registers WHERE branch_id = $1 ORDER BY code`
	rows, err := r.pool.Query(context.Background(), query, branchID)
	if err != nil {
		return nil, fmt.Errorf("list cash registers: %w", err)
	}
	defer rows.Close()
	var list []*entity.CashRegister
	for rows.Next() {
		var c entity.CashRegister
		if err := rows.Scan(&c.ID, &c.BranchID, &c.Code, &c.Name, &c.Active,
			&c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan cash register: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
