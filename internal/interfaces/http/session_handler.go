package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/restoqly/restopos-api/internal/application/dto"
	"github.com/restoqly/restopos-api/internal/application/sales"
)

// SessionHandler maneja apertura, cierre y consulta de sesiones de caja.
type SessionHandler struct {
	uc *sales.SessionUseCase
}

// NewSessionHandler construye el handler.
func NewSessionHandler(uc *sales.SessionUseCase) *SessionHandler {
	return &SessionHandler{uc: uc}
}

// OpenSession godoc
// @Summary      Abrir sesión de caja
// @Description  A lo sumo una sesión abierta por caja; la carrera la decide el índice único parcial.
// @Tags         sessions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OpenSessionRequest  true  "cash_register_id, opening_cash"
// @Success      201   {object}  dto.SessionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sessions/open [post]
func (h *SessionHandler) OpenSession(c *fiber.Ctx) error {
	var in dto.OpenSessionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	session, err := h.uc.OpenSession(c.Context(), sales.OpenSessionInput{
		CashRegisterID: in.CashRegisterID,
		UserID:         GetUserID(c),
		OpeningCash:    in.OpeningCash,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToSessionResponse(session))
}

// CloseSession godoc
// @Summary      Cerrar sesión de caja (arqueo)
// @Description  Esperado = fondo inicial + pagos en efectivo de ventas completadas; la diferencia queda registrada.
// @Tags         sessions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la sesión"
// @Param        body  body  dto.CloseSessionRequest  true  "actual_cash"
// @Success      200   {object}  dto.SessionResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sessions/{id}/close [post]
func (h *SessionHandler) CloseSession(c *fiber.Ctx) error {
	var in dto.CloseSessionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	session, err := h.uc.CloseSession(c.Context(), sales.CloseSessionInput{
		SessionID:  c.Params("id"),
		UserID:     GetUserID(c),
		ActualCash: in.ActualCash,
		Notes:      in.Notes,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(dto.ToSessionResponse(session))
}

// GetSession godoc
// @Summary      Obtener sesión de caja
// @Tags         sessions
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la sesión"
// @Success      200  {object}  dto.SessionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sessions/{id} [get]
func (h *SessionHandler) GetSession(c *fiber.Ctx) error {
	session, err := h.uc.GetSession(c.Context(), c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(dto.ToSessionResponse(session))
}
