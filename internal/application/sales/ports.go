package sales

import (
	"context"

	"github.com/restoqly/restopos-api/internal/domain/entity"
	"github.com/restoqly/restopos-api/internal/domain/repository"
)

// TxRunner ejecuta el pipeline de venta dentro de una transacción de BD.
// La venta toca cuatro tablas (lotes, movimientos, ventas, sesiones) y todo
// debe confirmar o revertir junto.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		lotRepo repository.LotRepository,
		movRepo repository.MovementRepository,
		saleRepo repository.SaleRepository,
		sessionRepo repository.SessionRepository,
	) error) error
}

// ReceiptGenerator produce el ticket de una venta. productNames resuelve
// ProductID a nombre para imprimir.
type ReceiptGenerator interface {
	Generate(sale *entity.Sale, productNames map[string]string) ([]byte, error)
}
