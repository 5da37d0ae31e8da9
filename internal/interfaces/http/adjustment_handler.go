package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/restoqly/restopos-api/internal/application/dto"
	"github.com/restoqly/restopos-api/internal/application/inventory"
)

// AdjustmentHandler maneja el ciclo de vida de ajustes de inventario (protegido).
type AdjustmentHandler struct {
	uc *inventory.AdjustmentUseCase
}

// NewAdjustmentHandler construye el handler.
func NewAdjustmentHandler(uc *inventory.AdjustmentUseCase) *AdjustmentHandler {
	return &AdjustmentHandler{uc: uc}
}

// CreateAdjustment godoc
// @Summary      Crear ajuste de inventario (DRAFT)
// @Description  Toma snapshot de la cantidad de sistema de cada lote; no toca stock hasta aplicar.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAdjustmentRequest  true  "warehouse_id, type, items"
// @Success      201   {object}  dto.AdjustmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/adjustments [post]
func (h *AdjustmentHandler) CreateAdjustment(c *fiber.Ctx) error {
	var in dto.CreateAdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	items := make([]inventory.AdjustmentItemInput, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, inventory.AdjustmentItemInput{
			LotID:            it.LotID,
			PhysicalQuantity: it.PhysicalQuantity,
			Reason:           it.Reason,
		})
	}
	adj, err := h.uc.Create(c.Context(), inventory.CreateAdjustmentInput{
		WarehouseID: in.WarehouseID,
		Type:        in.Type,
		Notes:       in.Notes,
		Items:       items,
		UserID:      GetUserID(c),
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToAdjustmentResponse(adj))
}

// ApproveAdjustment godoc
// @Summary      Aprobar un ajuste DRAFT
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del ajuste"
// @Success      200  {object}  dto.AdjustmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inventory/adjustments/{id}/approve [post]
func (h *AdjustmentHandler) ApproveAdjustment(c *fiber.Ctx) error {
	adj, err := h.uc.Approve(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(dto.ToAdjustmentResponse(adj))
}

// ApplyAdjustment godoc
// @Summary      Aplicar un ajuste APPROVED
// @Description  Sobrescribe la cantidad de cada lote con la cantidad física contada y registra los movimientos.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del ajuste"
// @Success      200  {object}  dto.AdjustmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inventory/adjustments/{id}/apply [post]
func (h *AdjustmentHandler) ApplyAdjustment(c *fiber.Ctx) error {
	adj, err := h.uc.Apply(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(dto.ToAdjustmentResponse(adj))
}

// CancelAdjustment godoc
// @Summary      Cancelar un ajuste DRAFT o APPROVED
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del ajuste"
// @Success      200  {object}  dto.AdjustmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inventory/adjustments/{id}/cancel [post]
func (h *AdjustmentHandler) CancelAdjustment(c *fiber.Ctx) error {
	adj, err := h.uc.Cancel(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(dto.ToAdjustmentResponse(adj))
}

// GetAdjustment godoc
// @Summary      Obtener un ajuste con sus líneas
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del ajuste"
// @Success      200  {object}  dto.AdjustmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/adjustments/{id} [get]
func (h *AdjustmentHandler) GetAdjustment(c *fiber.Ctx) error {
	adj, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(dto.ToAdjustmentResponse(adj))
}

// ListAdjustments godoc
// @Summary      Ajustes de una bodega
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  string  true   "Bodega"
// @Param        limit         query  int     false  "Límite (default 50)"
// @Param        offset        query  int     false  "Offset"
// @Success      200  {array}   dto.AdjustmentResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/adjustments [get]
func (h *AdjustmentHandler) ListAdjustments(c *fiber.Ctx) error {
	list, err := h.uc.ListByWarehouse(c.Context(), c.Query("warehouse_id"), c.QueryInt("limit"), c.QueryInt("offset"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(dto.ToAdjustmentResponses(list))
}
