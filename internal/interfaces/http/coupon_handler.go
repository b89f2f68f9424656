package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gymflow-api/internal/application/dto"
	"github.com/jhoicas/gymflow-api/internal/application/usecase"
)

// CouponHandler cupones de descuento (solo admin).
type CouponHandler struct {
	uc *usecase.CouponUseCase
}

// NewCouponHandler construye el handler.
func NewCouponHandler(uc *usecase.CouponUseCase) *CouponHandler {
	return &CouponHandler{uc: uc}
}

// Create godoc
// @Summary      Crear cupón
// @Tags         coupons
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCouponRequest  true  "código, porcentaje, usos y vencimiento"
// @Success      201   {object}  dto.CouponResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/admin/coupons [post]
func (h *CouponHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCouponRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar cupones
// @Tags         coupons
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CouponListResponse
// @Router       /api/admin/coupons [get]
func (h *CouponHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), pageFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Deactivate godoc
// @Summary      Desactivar cupón
// @Tags         coupons
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del cupón"
// @Success      200  {object}  dto.CouponResponse
// @Router       /api/admin/coupons/{id}/deactivate [patch]
func (h *CouponHandler) Deactivate(c *fiber.Ctx) error {
	out, err := h.uc.Deactivate(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
