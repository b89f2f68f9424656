package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	appbio "github.com/jhoicas/gymflow-api/internal/application/biometric"
	"github.com/jhoicas/gymflow-api/internal/application/dto"
	"github.com/jhoicas/gymflow-api/internal/domain/entity"
)

// BiometricService operaciones del coordinador que expone el back office.
type BiometricService interface {
	Enroll(ctx context.Context, userID int64, name string) dto.BiometricResult
	Block(ctx context.Context, userID int64, name string) dto.BiometricResult
	Unblock(ctx context.Context, userID int64, name string) dto.BiometricResult
	Disable(ctx context.Context, userID int64, name string) dto.BiometricResult
	SyncBlockStatus(ctx context.Context, userID int64, name string) dto.BiometricResult
	EnrollFingerprint(ctx context.Context, userID int64, name string, opts appbio.FingerprintOptions) dto.BiometricResult
}

// UserLoader resuelve el usuario para tomar su nombre cuando la petición no lo trae.
type UserLoader interface {
	Load(ctx context.Context, id int64) (*entity.User, error)
}

// biometricRequest cuerpo opcional; Name sobrescribe el nombre registrado.
type biometricRequest struct {
	Name        string `json:"name"`
	FingerIndex int    `json:"finger_index"`
	Overwrite   bool   `json:"overwrite"`
}

// BiometricHandler acciones manuales sobre el acceso por huella de un socio.
// El resultado siempre se devuelve con 200: Success y Results describen qué pasó en cada lector.
type BiometricHandler struct {
	svc   BiometricService
	users UserLoader
}

// NewBiometricHandler construye el handler.
func NewBiometricHandler(svc BiometricService, users UserLoader) *BiometricHandler {
	return &BiometricHandler{svc: svc, users: users}
}

// Enroll godoc
// @Summary      Enrolar socio en todos los lectores activos
// @Tags         biometric
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del usuario"
// @Success      200  {object}  dto.BiometricResult
// @Router       /api/admin/users/{id}/biometric/enroll [post]
func (h *BiometricHandler) Enroll(c *fiber.Ctx) error {
	return h.run(c, plain(h.svc.Enroll))
}

// Block godoc
// @Summary      Bloquear acceso biométrico
// @Tags         biometric
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del usuario"
// @Success      200  {object}  dto.BiometricResult
// @Router       /api/admin/users/{id}/biometric/block [post]
func (h *BiometricHandler) Block(c *fiber.Ctx) error {
	return h.run(c, plain(h.svc.Block))
}

// Unblock godoc
// @Summary      Desbloquear acceso biométrico
// @Tags         biometric
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del usuario"
// @Success      200  {object}  dto.BiometricResult
// @Router       /api/admin/users/{id}/biometric/unblock [post]
func (h *BiometricHandler) Unblock(c *fiber.Ctx) error {
	return h.run(c, plain(h.svc.Unblock))
}

// Disable godoc
// @Summary      Borrar al socio de los lectores
// @Tags         biometric
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del usuario"
// @Success      200  {object}  dto.BiometricResult
// @Router       /api/admin/users/{id}/biometric/disable [post]
func (h *BiometricHandler) Disable(c *fiber.Ctx) error {
	return h.run(c, plain(h.svc.Disable))
}

// Sync godoc
// @Summary      Alinear bloqueo con el estado de la suscripción
// @Tags         biometric
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del usuario"
// @Success      200  {object}  dto.BiometricResult
// @Router       /api/admin/users/{id}/biometric/sync [post]
func (h *BiometricHandler) Sync(c *fiber.Ctx) error {
	return h.run(c, plain(h.svc.SyncBlockStatus))
}

// Fingerprint godoc
// @Summary      Solicitar captura de huella en los lectores
// @Tags         biometric
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                           true  "ID del usuario"
// @Param        body  body  dto.EnrollFingerprintRequest  true  "dedo y sobrescritura"
// @Success      200   {object}  dto.BiometricResult
// @Router       /api/admin/users/{id}/biometric/fingerprint [post]
func (h *BiometricHandler) Fingerprint(c *fiber.Ctx) error {
	return h.run(c, func(ctx context.Context, userID int64, name string, in biometricRequest) dto.BiometricResult {
		return h.svc.EnrollFingerprint(ctx, userID, name, appbio.FingerprintOptions{
			FingerIndex: in.FingerIndex,
			Overwrite:   in.Overwrite,
		})
	})
}

type biometricOp func(ctx context.Context, userID int64, name string, in biometricRequest) dto.BiometricResult

func plain(f func(ctx context.Context, userID int64, name string) dto.BiometricResult) biometricOp {
	return func(ctx context.Context, userID int64, name string, _ biometricRequest) dto.BiometricResult {
		return f(ctx, userID, name)
	}
}

func (h *BiometricHandler) run(c *fiber.Ctx, op biometricOp) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badID(c)
	}
	var in biometricRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		user, err := h.users.Load(c.UserContext(), id)
		if err != nil {
			return writeError(c, err)
		}
		name = user.Name
	}
	return c.JSON(op(c.UserContext(), id, name, in))
}
