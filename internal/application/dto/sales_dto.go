package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/restoqly/restopos-api/internal/domain/entity"
)

// SaleItemRequest línea del body de venta. UnitPrice nulo usa el precio de catálogo.
type SaleItemRequest struct {
	ProductID   string           `json:"product_id" validate:"required"`
	Quantity    decimal.Decimal  `json:"quantity"`
	UnitPrice   *decimal.Decimal `json:"unit_price,omitempty"`
	DiscountPct decimal.Decimal  `json:"discount_pct"`
}

// SalePaymentRequest pago del body de venta.
type SalePaymentRequest struct {
	Method    string          `json:"method" validate:"required,oneof=CASH CARD TRANSFER OTHER"`
	Amount    decimal.Decimal `json:"amount"`
	Reference string          `json:"reference,omitempty"`
	CardLast4 string          `json:"card_last4,omitempty"`
}

// CreateSaleRequest body para POST /api/sales.
type CreateSaleRequest struct {
	SessionID string               `json:"session_id" validate:"required"`
	Items     []SaleItemRequest    `json:"items" validate:"required,min=1"`
	Payments  []SalePaymentRequest `json:"payments" validate:"required,min=1"`
}

// CancelSaleRequest body para POST /api/sales/:id/cancel.
type CancelSaleRequest struct {
	Reason string `json:"reason,omitempty"`
}

// SaleItemResponse línea de venta persistida.
type SaleItemResponse struct {
	ID             string          `json:"id"`
	ProductID      string          `json:"product_id"`
	Quantity       decimal.Decimal `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	TaxRate        decimal.Decimal `json:"tax_rate"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	DiscountPct    decimal.Decimal `json:"discount_pct"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	Total          decimal.Decimal `json:"total"`
	LotID          string          `json:"lot_id,omitempty"`
}

// SalePaymentResponse pago aplicado a la venta.
type SalePaymentResponse struct {
	ID        string          `json:"id"`
	Method    string          `json:"method"`
	Amount    decimal.Decimal `json:"amount"`
	Reference string          `json:"reference,omitempty"`
	CardLast4 string          `json:"card_last4,omitempty"`
	PaidAt    time.Time       `json:"paid_at"`
}

// SaleResponse salida de una venta con sus líneas y pagos.
type SaleResponse struct {
	ID             string                `json:"id"`
	Number         string                `json:"number"`
	SessionID      string                `json:"session_id"`
	CashRegisterID string                `json:"cash_register_id"`
	Subtotal       decimal.Decimal       `json:"subtotal"`
	TaxAmount      decimal.Decimal       `json:"tax_amount"`
	DiscountAmount decimal.Decimal       `json:"discount_amount"`
	TotalAmount    decimal.Decimal       `json:"total_amount"`
	Status         string                `json:"status"`
	CashierID      string                `json:"cashier_id"`
	CreatedAt      time.Time             `json:"created_at"`
	Items          []SaleItemResponse    `json:"items"`
	Payments       []SalePaymentResponse `json:"payments"`
}

// ToSaleResponse convierte la entidad de venta a su DTO. Los campos de costo
// (UnitCost, TotalCost) no se exponen por HTTP.
func ToSaleResponse(s *entity.Sale) SaleResponse {
	items := make([]SaleItemResponse, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, SaleItemResponse{
			ID:             it.ID,
			ProductID:      it.ProductID,
			Quantity:       it.Quantity,
			UnitPrice:      it.UnitPrice,
			TaxRate:        it.TaxRate,
			TaxAmount:      it.TaxAmount,
			DiscountPct:    it.DiscountPct,
			DiscountAmount: it.DiscountAmount,
			Subtotal:       it.Subtotal,
			Total:          it.Total,
			LotID:          it.LotID,
		})
	}
	payments := make([]SalePaymentResponse, 0, len(s.Payments))
	for _, p := range s.Payments {
		payments = append(payments, SalePaymentResponse{
			ID:        p.ID,
			Method:    p.Method,
			Amount:    p.Amount,
			Reference: p.Reference,
			CardLast4: p.CardLast4,
			PaidAt:    p.PaidAt,
		})
	}
	return SaleResponse{
		ID:             s.ID,
		Number:         s.Number,
		SessionID:      s.SessionID,
		CashRegisterID: s.CashRegisterID,
		Subtotal:       s.Subtotal,
		TaxAmount:      s.TaxAmount,
		DiscountAmount: s.DiscountAmount,
		TotalAmount:    s.TotalAmount,
		Status:         s.Status,
		CashierID:      s.CashierID,
		CreatedAt:      s.CreatedAt,
		Items:          items,
		Payments:       payments,
	}
}

// OpenSessionRequest body para POST /api/sessions/open.
type OpenSessionRequest struct {
	CashRegisterID string          `json:"cash_register_id" validate:"required"`
	OpeningCash    decimal.Decimal `json:"opening_cash"`
}

// CloseSessionRequest body para POST /api/sessions/:id/close.
type CloseSessionRequest struct {
	ActualCash decimal.Decimal `json:"actual_cash"`
	Notes      string          `json:"notes,omitempty"`
}

// SessionResponse salida de una sesión de caja. Los campos de arqueo solo
// tienen valor después del cierre.
type SessionResponse struct {
	ID             string          `json:"id"`
	CashRegisterID string          `json:"cash_register_id"`
	UserID         string          `json:"user_id"`
	OpenedAt       time.Time       `json:"opened_at"`
	ClosedAt       *time.Time      `json:"closed_at,omitempty"`
	OpeningCash    decimal.Decimal `json:"opening_cash"`
	ExpectedCash   decimal.Decimal `json:"expected_cash"`
	ActualCash     decimal.Decimal `json:"actual_cash"`
	CashDifference decimal.Decimal `json:"cash_difference"`
	TotalSales     decimal.Decimal `json:"total_sales"`
	CardSales      decimal.Decimal `json:"card_sales"`
	TransferSales  decimal.Decimal `json:"transfer_sales"`
	Status         string          `json:"status"`
	Notes          string          `json:"notes,omitempty"`
}

// ToSessionResponse convierte la entidad de sesión.
func ToSessionResponse(s *entity.CashSession) SessionResponse {
	return SessionResponse{
		ID:             s.ID,
		CashRegisterID: s.CashRegisterID,
		UserID:         s.UserID,
		OpenedAt:       s.OpenedAt,
		ClosedAt:       s.ClosedAt,
		OpeningCash:    s.OpeningCash,
		ExpectedCash:   s.ExpectedCash,
		ActualCash:     s.ActualCash,
		CashDifference: s.CashDifference,
		TotalSales:     s.TotalSales,
		CardSales:      s.CardSales,
		TransferSales:  s.TransferSales,
		Status:         s.Status,
		Notes:          s.Notes,
	}
}
