package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gymflow-api/internal/application/dto"
	"github.com/jhoicas/gymflow-api/internal/application/membership"
	"github.com/jhoicas/gymflow-api/internal/application/usecase"
)

// MeHandler rutas del socio autenticado: perfil, suscripciones y recibos.
type MeHandler struct {
	users    *usecase.UserUseCase
	subs     *membership.SubscriptionUseCase
	receipts *membership.ReceiptUseCase
}

// NewMeHandler construye el handler.
func NewMeHandler(users *usecase.UserUseCase, subs *membership.SubscriptionUseCase, receipts *membership.ReceiptUseCase) *MeHandler {
	return &MeHandler{users: users, subs: subs, receipts: receipts}
}

// Profile godoc
// @Summary      Perfil del usuario autenticado
// @Tags         me
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UserResponse
// @Router       /api/me [get]
func (h *MeHandler) Profile(c *fiber.Ctx) error {
	out, err := h.users.GetByID(c.UserContext(), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListSubscriptions godoc
// @Summary      Historial de suscripciones del socio
// @Tags         me
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SubscriptionListResponse
// @Router       /api/me/subscriptions [get]
func (h *MeHandler) ListSubscriptions(c *fiber.Ctx) error {
	out, err := h.subs.ListMine(c.UserContext(), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// BuyOnline godoc
// @Summary      Compra con pago online confirmado
// @Description  La suscripción queda activa y se habilita el acceso biométrico. El bloque "biometric" es informativo.
// @Tags         me
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSubscriptionRequest  true  "plan, duración, precio y cupón"
// @Success      201   {object}  dto.SubscriptionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/me/subscriptions [post]
func (h *MeHandler) BuyOnline(c *fiber.Ctx) error {
	var in dto.CreateSubscriptionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.subs.CreateOnline(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// RequestCash godoc
// @Summary      Solicitar pago en efectivo
// @Description  Queda pendiente hasta que un administrador la apruebe.
// @Tags         me
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSubscriptionRequest  true  "plan, duración, precio y cupón"
// @Success      201   {object}  dto.SubscriptionResponse
// @Router       /api/me/subscriptions/cash [post]
func (h *MeHandler) RequestCash(c *fiber.Ctx) error {
	var in dto.CreateSubscriptionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.subs.RequestCash(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Receipt godoc
// @Summary      Descargar recibo en PDF
// @Tags         me
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la suscripción"
// @Success      200
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/me/subscriptions/{id}/receipt [get]
func (h *MeHandler) Receipt(c *fiber.Ctx) error {
	pdf, filename, err := h.receipts.Download(c.UserContext(), GetUserID(c), IsAdmin(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdf)
}
