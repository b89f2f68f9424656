package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gymflow-api/internal/application/dto"
)

// Sweeper barrido de vencimientos bajo demanda.
type Sweeper interface {
	Sweep(ctx context.Context) (dto.SweepReport, error)
}

// SweepHandler expone el barrido al back office.
type SweepHandler struct {
	sweeper Sweeper
}

// NewSweepHandler construye el handler.
func NewSweepHandler(s Sweeper) *SweepHandler {
	return &SweepHandler{sweeper: s}
}

// Run godoc
// @Summary      Vencer suscripciones y sincronizar bloqueos
// @Tags         subscriptions
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SweepReport
// @Router       /api/admin/sweep [post]
func (h *SweepHandler) Run(c *fiber.Ctx) error {
	report, err := h.sweeper.Sweep(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(report)
}
