package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/restoqly/restopos-api/internal/application/dto"
	"github.com/restoqly/restopos-api/internal/application/inventory"
)

// DirectoryHandler expone el directorio de bodegas y cajas de la sucursal
// del token (protegido).
type DirectoryHandler struct {
	query *inventory.QueryUseCase
}

// NewDirectoryHandler construye el handler.
func NewDirectoryHandler(query *inventory.QueryUseCase) *DirectoryHandler {
	return &DirectoryHandler{query: query}
}

// ListWarehouses godoc
// @Summary      Bodegas de la sucursal del token
// @Tags         directory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.WarehouseResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/warehouses [get]
func (h *DirectoryHandler) ListWarehouses(c *fiber.Ctx) error {
	list, err := h.query.ListWarehouses(c.Context(), GetBranchID(c))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(dto.ToWarehouseResponses(list))
}

// ListCashRegisters godoc
// @Summary      Cajas registradoras de la sucursal del token
// @Tags         directory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.CashRegisterResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/cash-registers [get]
func (h *DirectoryHandler) ListCashRegisters(c *fiber.Ctx) error {
	list, err := h.query.ListCashRegisters(c.Context(), GetBranchID(c))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(dto.ToCashRegisterResponses(list))
}
