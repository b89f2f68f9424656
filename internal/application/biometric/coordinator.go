package biometric

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jhoicas/gymflow-api/internal/application/dto"
	"github.com/jhoicas/gymflow-api/internal/application/ports"
	domainbio "github.com/jhoicas/gymflow-api/internal/domain/biometric"
	"github.com/jhoicas/gymflow-api/internal/domain/entity"
	"github.com/jhoicas/gymflow-api/internal/domain/repository"
)

// Mensajes de error del coordinador.
const (
	MsgNameRequired      = "user name is required"
	MsgUserNotFound      = "user not found"
	MsgLoadUserFailed    = "failed to load user"
	MsgPersistFailed     = "failed to update biometric status"
	MsgAlreadyActive     = "Biometric access already active"
	MsgNotEnrolled       = "User is not enrolled in biometric access"
	MsgSubscriptionCheck = "failed to read subscription status"
)

// Coordinator mantiene alineados los flags biométricos del usuario con los eventos
// de negocio (compra, vencimiento, acciones del administrador).
//
// Ninguna operación toma lock sobre la fila del usuario ni envuelve en transacción
// el "fan-out y luego actualizar flags": dos disparos concurrentes pueden competir.
// Todas devuelven un dto.BiometricResult y nunca un error.
type Coordinator struct {
	users  repository.UserRepository
	subs   ports.SubscriptionChecker
	fanout *FanOut
	log    zerolog.Logger
}

// NewCoordinator construye el coordinador.
func NewCoordinator(users repository.UserRepository, subs ports.SubscriptionChecker, fanout *FanOut, log zerolog.Logger) *Coordinator {
	return &Coordinator{users: users, subs: subs, fanout: fanout, log: log}
}

// Enroll registra al usuario en todos los lectores activos (Unenrolled → Enrolled-Active).
// Con éxito agregado persiste el código de empleado y ambos flags en true.
func (c *Coordinator) Enroll(ctx context.Context, userID int64, name string) dto.BiometricResult {
	ctx = context.WithoutCancel(ctx)
	user, fail := c.loadUser(ctx, userID, name, dto.BiometricActionEnroll)
	if fail != nil {
		return *fail
	}
	return c.enroll(ctx, user, name)
}

// Unblock desbloquea al usuario en todos los lectores (Enrolled-Blocked → Enrolled-Active).
// Un usuario sin enrolar no se envía a los lectores.
func (c *Coordinator) Unblock(ctx context.Context, userID int64, name string) dto.BiometricResult {
	ctx = context.WithoutCancel(ctx)
	user, fail := c.loadUser(ctx, userID, name, dto.BiometricActionUnblock)
	if fail != nil {
		return *fail
	}
	if !user.IsBioMetricActive {
		return notEnrolled(dto.BiometricActionUnblock)
	}
	return c.setAccess(ctx, user, name, true)
}

// Block bloquea al usuario en todos los lectores (Enrolled-Active → Enrolled-Blocked).
func (c *Coordinator) Block(ctx context.Context, userID int64, name string) dto.BiometricResult {
	ctx = context.WithoutCancel(ctx)
	user, fail := c.loadUser(ctx, userID, name, dto.BiometricActionBlock)
	if fail != nil {
		return *fail
	}
	if !user.IsBioMetricActive {
		return notEnrolled(dto.BiometricActionBlock)
	}
	return c.setAccess(ctx, user, name, false)
}

// Disable borra al usuario de los lectores y deja ambos flags en false sin importar
// cuántos lectores procesaron el borrado. Es la única transición que confía en el
// estado local aunque haya fallos parciales; llamarla dos veces deja {false,false}.
func (c *Coordinator) Disable(ctx context.Context, userID int64, name string) dto.BiometricResult {
	ctx = context.WithoutCancel(ctx)
	user, fail := c.loadUser(ctx, userID, name, dto.BiometricActionDisable)
	if fail != nil {
		return *fail
	}

	res := c.fanout.Run(ctx, IntentDelete, user.ID, name, FingerprintOptions{})

	rec := entity.AccessRecord{
		BiometricDeviceID: user.BiometricDeviceID,
		IsBioMetricActive: false,
		BioMetricAccess:   false,
	}
	if err := c.users.UpdateBiometricAccess(ctx, user.ID, rec); err != nil {
		c.log.Error().Err(err).Int64("user_id", user.ID).Msg("no se pudo resetear el acceso biométrico")
		return persistFailure(dto.BiometricActionDisable, res)
	}
	return toResult(dto.BiometricActionDisable, res)
}

// EnrollFingerprint pide a cada lector activo capturar la huella indicada.
// No cambia flags; el usuario debe estar enrolado.
func (c *Coordinator) EnrollFingerprint(ctx context.Context, userID int64, name string, opts FingerprintOptions) dto.BiometricResult {
	ctx = context.WithoutCancel(ctx)
	user, fail := c.loadUser(ctx, userID, name, dto.BiometricActionFingerprint)
	if fail != nil {
		return *fail
	}
	if !user.IsBioMetricActive {
		return notEnrolled(dto.BiometricActionFingerprint)
	}
	res := c.fanout.Run(ctx, IntentFingerprint, user.ID, name, opts)
	return toResult(dto.BiometricActionFingerprint, res)
}

// HandleSubscriptionPurchase es el punto de entrada usado por la compra online, el
// cobro en efectivo y la aprobación de efectivo. Elige exactamente una rama:
//   - sin enrolar            → Enroll
//   - enrolado y bloqueado   → Unblock
//   - enrolado y con acceso  → skipped (sin fan-out)
func (c *Coordinator) HandleSubscriptionPurchase(ctx context.Context, userID int64, name string) dto.BiometricResult {
	ctx = context.WithoutCancel(ctx)
	user, fail := c.loadUser(ctx, userID, name, "")
	if fail != nil {
		return *fail
	}

	switch user.BiometricState() {
	case entity.BiometricUnenrolled:
		return c.enroll(ctx, user, name)
	case entity.BiometricEnrolledBlocked:
		return c.setAccess(ctx, user, name, true)
	default:
		c.log.Debug().Int64("user_id", user.ID).Msg("acceso biométrico ya activo, se omite")
		return dto.BiometricResult{
			Success: true,
			Message: MsgAlreadyActive,
			Action:  dto.BiometricActionSkipped,
			Results: []dto.DeviceOperationResult{},
		}
	}
}

// SyncBlockStatus lee si la suscripción está activa y empuja a los lectores el
// estado deseado: desbloquear si está activa, bloquear si no. Siempre reenvía
// aunque los flags ya coincidan, para reparar lectores desalineados.
func (c *Coordinator) SyncBlockStatus(ctx context.Context, userID int64, name string) dto.BiometricResult {
	ctx = context.WithoutCancel(ctx)
	user, fail := c.loadUser(ctx, userID, name, "")
	if fail != nil {
		return *fail
	}
	if !user.IsBioMetricActive {
		return dto.BiometricResult{
			Success: true,
			Message: MsgNotEnrolled,
			Action:  dto.BiometricActionSkipped,
			Results: []dto.DeviceOperationResult{},
		}
	}

	active, err := c.subs.HasActiveSubscription(ctx, user.ID)
	if err != nil {
		c.log.Error().Err(err).Int64("user_id", user.ID).Msg("no se pudo consultar la suscripción")
		return dto.BiometricResult{Success: false, Message: MsgSubscriptionCheck, Results: []dto.DeviceOperationResult{}}
	}
	return c.setAccess(ctx, user, name, active)
}

func (c *Coordinator) enroll(ctx context.Context, user *entity.User, name string) dto.BiometricResult {
	res := c.fanout.Run(ctx, IntentEnroll, user.ID, name, FingerprintOptions{})
	if !res.Success {
		return toResult(dto.BiometricActionEnroll, res)
	}

	rec := entity.AccessRecord{
		BiometricDeviceID: domainbio.EmployeeCode(user.ID),
		IsBioMetricActive: true,
		BioMetricAccess:   true,
	}
	if err := c.users.UpdateBiometricAccess(ctx, user.ID, rec); err != nil {
		c.log.Error().Err(err).Int64("user_id", user.ID).Msg("enrolado en lectores pero no se pudo persistir")
		return persistFailure(dto.BiometricActionEnroll, res)
	}
	return toResult(dto.BiometricActionEnroll, res)
}

func (c *Coordinator) setAccess(ctx context.Context, user *entity.User, name string, allow bool) dto.BiometricResult {
	intent, action := IntentBlock, dto.BiometricActionBlock
	if allow {
		intent, action = IntentUnblock, dto.BiometricActionUnblock
	}

	res := c.fanout.Run(ctx, intent, user.ID, name, FingerprintOptions{})
	if !res.Success {
		return toResult(action, res)
	}

	rec := user.AccessRecord
	rec.BioMetricAccess = allow
	if err := c.users.UpdateBiometricAccess(ctx, user.ID, rec); err != nil {
		c.log.Error().Err(err).Int64("user_id", user.ID).Bool("allow", allow).Msg("lectores actualizados pero no se pudo persistir")
		return persistFailure(action, res)
	}
	return toResult(action, res)
}

func (c *Coordinator) loadUser(ctx context.Context, userID int64, name, action string) (*entity.User, *dto.BiometricResult) {
	if strings.TrimSpace(name) == "" {
		return nil, &dto.BiometricResult{Success: false, Message: MsgNameRequired, Action: action, Results: []dto.DeviceOperationResult{}}
	}
	user, err := c.users.GetByID(ctx, userID)
	if err != nil {
		c.log.Error().Err(err).Int64("user_id", userID).Msg("no se pudo leer el usuario")
		return nil, &dto.BiometricResult{Success: false, Message: MsgLoadUserFailed, Action: action, Results: []dto.DeviceOperationResult{}}
	}
	if user == nil {
		return nil, &dto.BiometricResult{Success: false, Message: MsgUserNotFound, Action: action, Results: []dto.DeviceOperationResult{}}
	}
	return user, nil
}

func toResult(action string, res entity.FanOutResult) dto.BiometricResult {
	out := dto.BiometricResult{
		Success: res.Success,
		Message: res.Message,
		Action:  action,
		Results: make([]dto.DeviceOperationResult, 0, len(res.Results)),
	}
	for _, r := range res.Results {
		out.Results = append(out.Results, dto.DeviceOperationResult{
			DeviceID:     r.DeviceID,
			SerialNumber: r.SerialNumber,
			Success:      r.Success,
			Message:      r.Message,
		})
	}
	return out
}

func notEnrolled(action string) dto.BiometricResult {
	return dto.BiometricResult{
		Success: false,
		Message: MsgNotEnrolled,
		Action:  action,
		Results: []dto.DeviceOperationResult{},
	}
}

// persistFailure conserva los resultados por dispositivo: el efecto en los lectores no se deshace.
func persistFailure(action string, res entity.FanOutResult) dto.BiometricResult {
	out := toResult(action, res)
	out.Success = false
	out.Message = MsgPersistFailed
	return out
}
