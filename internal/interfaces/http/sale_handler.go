package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/restoqly/restopos-api/internal/application/dto"
	"github.com/restoqly/restopos-api/internal/application/sales"
)

// SaleHandler maneja el punto de venta: crear, consultar, anular y ticket.
type SaleHandler struct {
	create  *sales.CreateSaleUseCase
	cancel  *sales.CancelSaleUseCase
	receipt *sales.ReceiptUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(create *sales.CreateSaleUseCase, cancel *sales.CancelSaleUseCase, receipt *sales.ReceiptUseCase) *SaleHandler {
	return &SaleHandler{create: create, cancel: cancel, receipt: receipt}
}

// CreateSale godoc
// @Summary      Registrar venta
// @Description  Asigna folio del día, consume stock PEPS sobre las bodegas de la sucursal y acumula en la sesión.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "session_id, items, payments"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) CreateSale(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	items := make([]sales.SaleItemInput, 0, len(in.Items))
	for _, it := range in.Items {
		var unitPrice *decimal.Decimal
		if it.UnitPrice != nil {
			p := *it.UnitPrice
			unitPrice = &p
		}
		items = append(items, sales.SaleItemInput{
			ProductID:   it.ProductID,
			Quantity:    it.Quantity,
			UnitPrice:   unitPrice,
			DiscountPct: it.DiscountPct,
		})
	}
	payments := make([]sales.SalePaymentInput, 0, len(in.Payments))
	for _, p := range in.Payments {
		payments = append(payments, sales.SalePaymentInput{
			Method:    p.Method,
			Amount:    p.Amount,
			Reference: p.Reference,
			CardLast4: p.CardLast4,
		})
	}
	sale, err := h.create.CreateSale(c.Context(), sales.CreateSaleInput{
		SessionID: in.SessionID,
		CashierID: GetUserID(c),
		Items:     items,
		Payments:  payments,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToSaleResponse(sale))
}

// GetSale godoc
// @Summary      Obtener venta con líneas y pagos
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *SaleHandler) GetSale(c *fiber.Ctx) error {
	sale, err := h.receipt.GetSale(c.Context(), c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(dto.ToSaleResponse(sale))
}

// CancelSale godoc
// @Summary      Anular venta
// @Description  Restaura la cantidad exacta en los mismos lotes consumidos; los acumulados de sesión no se revierten.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la venta"
// @Param        body  body  dto.CancelSaleRequest  false  "reason"
// @Success      200   {object}  dto.SaleResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/cancel [post]
func (h *SaleHandler) CancelSale(c *fiber.Ctx) error {
	var in dto.CancelSaleRequest
	// Body opcional: solo lleva el motivo.
	_ = c.BodyParser(&in)
	sale, err := h.cancel.CancelSale(c.Context(), c.Params("id"), GetUserID(c), in.Reason)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(dto.ToSaleResponse(sale))
}

// ListSessionSales godoc
// @Summary      Ventas de una sesión de caja
// @Description  Encabezados sin ítems ni pagos; detalle con GET /api/sales/:id.
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID de la sesión"
// @Param        limit   query  int     false  "Límite (default 50)"
// @Param        offset  query  int     false  "Offset"
// @Success      200  {array}   dto.SaleResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/sessions/{id}/sales [get]
func (h *SaleHandler) ListSessionSales(c *fiber.Ctx) error {
	list, err := h.receipt.ListSessionSales(c.Context(), c.Params("id"), c.QueryInt("limit"), c.QueryInt("offset"))
	if err != nil {
		return writeDomainError(c, err)
	}
	out := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		out = append(out, dto.ToSaleResponse(s))
	}
	return c.JSON(out)
}

// GetReceipt godoc
// @Summary      Ticket de venta en PDF
// @Tags         sales
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la venta"
// @Success      200  {file}  file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/receipt [get]
func (h *SaleHandler) GetReceipt(c *fiber.Ctx) error {
	data, err := h.receipt.GenerateReceipt(c.Context(), c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="ticket.pdf"`)
	return c.Send(data)
}
