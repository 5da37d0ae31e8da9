package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/restoqly/restopos-api/internal/application/inventory"
	"github.com/restoqly/restopos-api/internal/application/sales"
	"github.com/restoqly/restopos-api/internal/domain/repository"
)

// Ensure TxRunner implements inventory.TxRunner and sales.TxRunner.
var _ inventory.TxRunner = (*TxRunner)(nil)
var _ sales.TxRunner = (*salesTxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con los repos de inventario atados a
// la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	lotRepo repository.LotRepository,
	movRepo repository.MovementRepository,
	transferRepo repository.TransferRepository,
	adjustmentRepo repository.AdjustmentRepository,
	wasteRepo repository.WasteRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	lotRepo := NewLotRepository(tx)
	movRepo := NewMovementRepository(tx)
	transferRepo := NewTransferRepository(tx)
	adjustmentRepo := NewAdjustmentRepository(tx)
	wasteRepo := NewWasteRepository(tx)

	if err := fn(lotRepo, movRepo, transferRepo, adjustmentRepo, wasteRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Sales devuelve la vista del runner para el pipeline de ventas.
func (r *TxRunner) Sales() sales.TxRunner {
	return &salesTxRunner{pool: r.pool}
}

// salesTxRunner variante con los repos que toca una venta.
type salesTxRunner struct {
	pool *pgxpool.Pool
}

func (r *salesTxRunner) Run(ctx context.Context, fn func(
	lotRepo repository.LotRepository,
	movRepo repository.MovementRepository,
	saleRepo repository.SaleRepository,
	sessionRepo repository.SessionRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	lotRepo := NewLotRepository(tx)
	movRepo := NewMovementRepository(tx)
	saleRepo := NewSaleRepository(tx)
	sessionRepo := NewSessionRepository(tx)

	if err := fn(lotRepo, movRepo, saleRepo, sessionRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
