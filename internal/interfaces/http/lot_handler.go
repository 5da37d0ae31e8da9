package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/restoqly/restopos-api/internal/application/dto"
	"github.com/restoqly/restopos-api/internal/application/inventory"
)

// LotHandler maneja las peticiones HTTP de lotes y stock (protegido).
type LotHandler struct {
	uc *inventory.LotUseCase
}

// NewLotHandler construye el handler.
func NewLotHandler(uc *inventory.LotUseCase) *LotHandler {
	return &LotHandler{uc: uc}
}

// CreateLot godoc
// @Summary      Dar de alta un lote
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLotRequest  true  "product_id, warehouse_id, lot_number, quantity, unit_cost"
// @Success      201   {object}  dto.LotResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/lots [post]
func (h *LotHandler) CreateLot(c *fiber.Ctx) error {
	var in dto.CreateLotRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	lot, err := h.uc.CreateLot(c.Context(), inventory.CreateLotInput{
		ProductID:      in.ProductID,
		WarehouseID:    in.WarehouseID,
		LotNumber:      in.LotNumber,
		Quantity:       in.Quantity,
		UnitCost:       in.UnitCost,
		ProductionDate: in.ProductionDate,
		ExpiryDate:     in.ExpiryDate,
		UserID:         GetUserID(c),
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToLotResponse(lot))
}

// ListAvailableLots godoc
// @Summary      Lotes disponibles en orden PEPS
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id    query  string  true  "Producto"
// @Param        warehouse_id  query  string  true  "Bodega"
// @Success      200  {array}   dto.LotResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/lots [get]
func (h *LotHandler) ListAvailableLots(c *fiber.Ctx) error {
	productID := c.Query("product_id")
	warehouseID := c.Query("warehouse_id")
	if productID == "" || warehouseID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id y warehouse_id son requeridos"})
	}
	lots, err := h.uc.FindAvailableLots(c.Context(), productID, warehouseID)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(dto.ToLotResponses(lots))
}

// GetStockSummary godoc
// @Summary      Resumen de stock por producto y bodega
// @Description  Agrega los lotes AVAILABLE; ambos filtros son opcionales.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id    query  string  false  "Filtrar por producto"
// @Param        warehouse_id  query  string  false  "Filtrar por bodega"
// @Success      200  {array}   dto.StockSummaryResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory/stock [get]
func (h *LotHandler) GetStockSummary(c *fiber.Ctx) error {
	rows, err := h.uc.GetStockSummary(c.Context(), c.Query("product_id"), c.Query("warehouse_id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(dto.ToStockSummaryResponses(rows))
}

// MarkExpiredLots godoc
// @Summary      Marcar lotes vencidos
// @Description  Pasa a EXPIRED los lotes AVAILABLE cuya fecha de vencimiento ya pasó. Idempotente.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]int64
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory/lots/mark-expired [post]
func (h *LotHandler) MarkExpiredLots(c *fiber.Ctx) error {
	n, err := h.uc.MarkExpiredLots(c.Context())
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(fiber.Map{"expired": n})
}
