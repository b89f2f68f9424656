package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gymflow-api/internal/application/dto"
	"github.com/jhoicas/gymflow-api/internal/application/membership"
)

// SubscriptionHandler gestión de suscripciones desde el back office.
type SubscriptionHandler struct {
	uc *membership.SubscriptionUseCase
}

// NewSubscriptionHandler construye el handler.
func NewSubscriptionHandler(uc *membership.SubscriptionUseCase) *SubscriptionHandler {
	return &SubscriptionHandler{uc: uc}
}

// List godoc
// @Summary      Listar suscripciones por estado
// @Tags         subscriptions
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "pending | active | expired | cancelled | rejected"
// @Success      200     {object}  dto.SubscriptionListResponse
// @Router       /api/admin/subscriptions [get]
func (h *SubscriptionHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListByStatus(c.UserContext(), c.Query("status"), pageFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener suscripción
// @Tags         subscriptions
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la suscripción"
// @Success      200  {object}  dto.SubscriptionResponse
// @Router       /api/admin/subscriptions/{id} [get]
func (h *SubscriptionHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetUserID(c), true, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateCash godoc
// @Summary      Registrar pago en efectivo cobrado
// @Tags         subscriptions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSubscriptionRequest  true  "user_id, plan, duración, precio y cupón"
// @Success      201   {object}  dto.SubscriptionResponse
// @Router       /api/admin/subscriptions/cash [post]
func (h *SubscriptionHandler) CreateCash(c *fiber.Ctx) error {
	var in dto.CreateSubscriptionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateCash(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Approve godoc
// @Summary      Aprobar solicitud en efectivo
// @Tags         subscriptions
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la suscripción"
// @Success      200  {object}  dto.SubscriptionResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/admin/subscriptions/{id}/approve [post]
func (h *SubscriptionHandler) Approve(c *fiber.Ctx) error {
	out, err := h.uc.ApproveCash(c.UserContext(), GetUserID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Reject godoc
// @Summary      Rechazar solicitud en efectivo
// @Tags         subscriptions
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la suscripción"
// @Success      200  {object}  dto.SubscriptionResponse
// @Router       /api/admin/subscriptions/{id}/reject [post]
func (h *SubscriptionHandler) Reject(c *fiber.Ctx) error {
	out, err := h.uc.RejectCash(c.UserContext(), GetUserID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ChangeStatus godoc
// @Summary      Cambiar estado de una suscripción
// @Tags         subscriptions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                               true  "ID de la suscripción"
// @Param        body  body  dto.ChangeSubscriptionStatusRequest  true  "nuevo estado"
// @Success      200   {object}  dto.SubscriptionResponse
// @Router       /api/admin/subscriptions/{id}/status [patch]
func (h *SubscriptionHandler) ChangeStatus(c *fiber.Ctx) error {
	var in dto.ChangeSubscriptionStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.ChangeStatus(c.UserContext(), c.Params("id"), in.Status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
