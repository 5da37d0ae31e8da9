package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/restoqly/restopos-api/internal/application/dto"
	"github.com/restoqly/restopos-api/internal/application/inventory"
)

// MovementHandler maneja el registro y consulta de movimientos (protegido).
type MovementHandler struct {
	register *inventory.RegisterMovementUseCase
	query    *inventory.QueryUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(register *inventory.RegisterMovementUseCase, query *inventory.QueryUseCase) *MovementHandler {
	return &MovementHandler{register: register, query: query}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de inventario
// @Description  PURCHASE/INITIAL sin lot_id crean lote; SALE/WASTE/ADJUSTMENT negativo sin lot_id asignan PEPS.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "type, product_id, warehouse_id, quantity"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *MovementHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	err := h.register.RegisterMovement(c.Context(), inventory.MovementInput{
		Type:          in.Type,
		ProductID:     in.ProductID,
		WarehouseID:   in.WarehouseID,
		LotID:         in.LotID,
		LotNumber:     in.LotNumber,
		Quantity:      in.Quantity,
		UnitCost:      in.UnitCost,
		ReferenceType: in.ReferenceType,
		ReferenceID:   in.ReferenceID,
		UserID:        GetUserID(c),
		Notes:         in.Notes,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "movimiento registrado"})
}

// ListMovements godoc
// @Summary      Kardex de movimientos
// @Description  Filtra por warehouse_id o product_id (uno requerido) y rango de fechas opcional RFC3339.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  string  false  "Bodega"
// @Param        product_id    query  string  false  "Producto"
// @Param        from          query  string  false  "Desde (RFC3339)"
// @Param        to            query  string  false  "Hasta (RFC3339)"
// @Param        limit         query  int     false  "Límite (default 50)"
// @Param        offset        query  int     false  "Offset"
// @Success      200  {array}   dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [get]
func (h *MovementHandler) ListMovements(c *fiber.Ctx) error {
	warehouseID := c.Query("warehouse_id")
	productID := c.Query("product_id")
	if warehouseID == "" && productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "warehouse_id o product_id es requerido"})
	}
	from, err := parseTimeQuery(c, "from")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from debe ser RFC3339"})
	}
	to, err := parseTimeQuery(c, "to")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to debe ser RFC3339"})
	}
	limit := c.QueryInt("limit")
	offset := c.QueryInt("offset")

	if warehouseID != "" {
		list, err := h.query.ListMovementsByWarehouse(c.Context(), warehouseID, from, to, limit, offset)
		if err != nil {
			return writeDomainError(c, err)
		}
		return c.JSON(dto.ToMovementResponses(list))
	}
	list, err := h.query.ListMovementsByProduct(c.Context(), productID, from, to, limit, offset)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(dto.ToMovementResponses(list))
}

// ListLotMovements godoc
// @Summary      Historia de un lote
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del lote"
// @Success      200  {array}   dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/lots/{id}/movements [get]
func (h *MovementHandler) ListLotMovements(c *fiber.Ctx) error {
	list, err := h.query.ListMovementsByLot(c.Context(), c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(dto.ToMovementResponses(list))
}

func parseTimeQuery(c *fiber.Ctx, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
