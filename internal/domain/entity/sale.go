package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una venta. Una venta anulada es terminal.
const (
	SaleStatusCompleted = "COMPLETED"
	SaleStatusCancelled = "CANCELLED"
)

// Métodos de pago.
const (
	PaymentMethodCash     = "CASH"
	PaymentMethodCard     = "CARD"
	PaymentMethodTransfer = "TRANSFER"
	PaymentMethodOther    = "OTHER"
)

// Sale es una transacción de punto de venta completada (o anulada).
// Number tiene formato V<YYYYMMDD><secuencia de 6 dígitos> y es único global.
// Invariante de totales: Subtotal + TaxAmount − DiscountAmount == TotalAmount.
type Sale struct {
	ID             string
	Number         string
	SessionID      string
	CashRegisterID string
	Subtotal       decimal.Decimal
	TaxAmount      decimal.Decimal
	DiscountAmount decimal.Decimal
	TotalAmount    decimal.Decimal
	Status         string
	CashierID      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Items          []SaleItem
	Payments       []SalePayment
}

// SaleItem es una línea de venta. LotID apunta al primer lote asignado;
// cuando la línea consumió varios lotes el detalle completo queda en los
// Movements de la venta.
type SaleItem struct {
	ID             string
	SaleID         string
	ProductID      string
	Quantity       decimal.Decimal
	UnitPrice      decimal.Decimal
	TaxRate        decimal.Decimal
	TaxAmount      decimal.Decimal
	DiscountPct    decimal.Decimal
	DiscountAmount decimal.Decimal
	Subtotal       decimal.Decimal // unitPrice × quantity, antes de descuento
	Total          decimal.Decimal // subtotal − descuento + impuesto
	UnitCost       decimal.Decimal // costo promedio de los lotes asignados
	TotalCost      decimal.Decimal
	LotID          string
}

// SalePayment es un pago aplicado a la venta.
type SalePayment struct {
	ID        string
	SaleID    string
	Method    string
	Amount    decimal.Decimal
	Reference string // voucher, autorización, etc.
	CardLast4 string
	PaidAt    time.Time
}

// ValidPaymentMethod indica si m es un método de pago conocido.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodTransfer, PaymentMethodOther:
		return true
	}
	return false
}
