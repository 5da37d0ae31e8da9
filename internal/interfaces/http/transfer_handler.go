package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/restoqly/restopos-api/internal/application/dto"
	"github.com/restoqly/restopos-api/internal/application/inventory"
)

// TransferHandler maneja traslados entre bodegas (protegido).
type TransferHandler struct {
	uc    *inventory.TransferUseCase
	query *inventory.QueryUseCase
}

// NewTransferHandler construye el handler.
func NewTransferHandler(uc *inventory.TransferUseCase, query *inventory.QueryUseCase) *TransferHandler {
	return &TransferHandler{uc: uc, query: query}
}

// CreateTransfer godoc
// @Summary      Trasladar cantidad de un lote a otra bodega
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransferRequest  true  "lot_id, to_warehouse_id, quantity"
// @Success      201   {object}  dto.TransferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/transfers [post]
func (h *TransferHandler) CreateTransfer(c *fiber.Ctx) error {
	var in dto.TransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	transfer, err := h.uc.Transfer(c.Context(), inventory.TransferInput{
		LotID:         in.LotID,
		ToWarehouseID: in.ToWarehouseID,
		Quantity:      in.Quantity,
		Notes:         in.Notes,
		UserID:        GetUserID(c),
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToTransferResponse(transfer))
}

// GetTransfer godoc
// @Summary      Obtener un traslado
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del traslado"
// @Success      200  {object}  dto.TransferResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/transfers/{id} [get]
func (h *TransferHandler) GetTransfer(c *fiber.Ctx) error {
	transfer, err := h.query.GetTransfer(c.Context(), c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(dto.ToTransferResponse(transfer))
}

// ListTransfers godoc
// @Summary      Traslados de una bodega (origen o destino)
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  string  true   "Bodega"
// @Param        limit         query  int     false  "Límite (default 50)"
// @Param        offset        query  int     false  "Offset"
// @Success      200  {array}   dto.TransferResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/transfers [get]
func (h *TransferHandler) ListTransfers(c *fiber.Ctx) error {
	list, err := h.query.ListTransfersByWarehouse(c.Context(), c.Query("warehouse_id"), c.QueryInt("limit"), c.QueryInt("offset"))
	if err != nil {
		return writeDomainError(c, err)
	}
	out := make([]dto.TransferResponse, 0, len(list))
	for _, t := range list {
		out = append(out, dto.ToTransferResponse(t))
	}
	return c.JSON(out)
}
