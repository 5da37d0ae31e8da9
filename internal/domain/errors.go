package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias de infraestructura).
var (
	ErrNotFound              = errors.New("recurso no encontrado")
	ErrInvalidInput          = errors.New("entrada inválida")
	ErrInvalidState          = errors.New("transición de estado no permitida")
	ErrInsufficientStock     = errors.New("stock insuficiente")
	ErrDuplicateLot          = errors.New("ya existe un lote con ese número para el producto y la bodega")
	ErrDuplicateInternalCode = errors.New("código interno de lote duplicado")
	ErrExhaustedRetries      = errors.New("reintentos agotados al generar el código interno de lote")
	ErrPaymentMismatch       = errors.New("los pagos no cuadran con el total de la venta")
	ErrSessionClosed         = errors.New("la sesión de caja no está abierta")
	ErrSessionAlreadyOpen    = errors.New("ya existe una sesión abierta para esta caja")
	ErrRegisterInactive      = errors.New("caja registradora inactiva")
	ErrProductInactive       = errors.New("producto inactivo")
	ErrSaleAlreadyCancelled  = errors.New("la venta ya fue anulada")
	ErrUnauthorized          = errors.New("no autorizado")
	ErrEmailAlreadyExists    = errors.New("el email ya está registrado")
)

// StockShortfallError detalla un faltante de stock en una asignación PEPS.
// Envuelve ErrInsufficientStock para que errors.Is siga funcionando en los callers.
type StockShortfallError struct {
	ProductID string
	Requested decimal.Decimal
	Available decimal.Decimal
}

func (e *StockShortfallError) Error() string {
	return fmt.Sprintf("stock insuficiente para producto %s: faltan %s (solicitado %s, disponible %s)",
		e.ProductID, e.Missing().String(), e.Requested.String(), e.Available.String())
}

func (e *StockShortfallError) Unwrap() error { return ErrInsufficientStock }

// Missing devuelve la cantidad faltante (solicitado − disponible).
func (e *StockShortfallError) Missing() decimal.Decimal {
	return e.Requested.Sub(e.Available)
}
