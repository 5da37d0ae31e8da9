package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/restoqly/restopos-api/internal/application/dto"
	"github.com/restoqly/restopos-api/internal/application/inventory"
)

// WasteHandler maneja el registro y consulta de mermas (protegido).
type WasteHandler struct {
	uc *inventory.WasteUseCase
}

// NewWasteHandler construye el handler.
func NewWasteHandler(uc *inventory.WasteUseCase) *WasteHandler {
	return &WasteHandler{uc: uc}
}

// RecordWaste godoc
// @Summary      Registrar merma
// @Description  Descuenta del lote indicado o asigna PEPS si no se indica; el costo real descontado queda en el registro.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordWasteRequest  true  "product_id, warehouse_id, quantity, type"
// @Success      201   {object}  dto.WasteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/waste [post]
func (h *WasteHandler) RecordWaste(c *fiber.Ctx) error {
	var in dto.RecordWasteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	record, err := h.uc.RecordWaste(c.Context(), inventory.RecordWasteInput{
		ProductID:     in.ProductID,
		WarehouseID:   in.WarehouseID,
		LotID:         in.LotID,
		Quantity:      in.Quantity,
		Type:          in.Type,
		Reason:        in.Reason,
		ResponsibleID: in.ResponsibleID,
		PhotoURL:      in.PhotoURL,
		UserID:        GetUserID(c),
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToWasteResponse(record))
}

// ListWaste godoc
// @Summary      Mermas de una bodega
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  string  true   "Bodega"
// @Param        limit         query  int     false  "Límite (default 50)"
// @Param        offset        query  int     false  "Offset"
// @Success      200  {array}   dto.WasteResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/waste [get]
func (h *WasteHandler) ListWaste(c *fiber.Ctx) error {
	list, err := h.uc.ListByWarehouse(c.Context(), c.Query("warehouse_id"), c.QueryInt("limit"), c.QueryInt("offset"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(dto.ToWasteResponses(list))
}
