// Package biometric coordina el acceso por huella de los socios a través de
// todos los lectores activos: fan-out secuencial de comandos y conciliación de
// los flags is_bio_metric_active / bio_metric_access.
package biometric

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/xid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/gymflow-api/internal/application/ports"
	domainbio "github.com/jhoicas/gymflow-api/internal/domain/biometric"
	"github.com/jhoicas/gymflow-api/internal/domain/entity"
	"github.com/jhoicas/gymflow-api/internal/domain/repository"
)

// Intent intención lógica que se replica en cada lector activo.
type Intent int

const (
	IntentEnroll Intent = iota
	IntentDelete
	IntentBlock
	IntentUnblock
	IntentFingerprint
)

func (i Intent) String() string {
	switch i {
	case IntentEnroll:
		return "enroll"
	case IntentDelete:
		return "delete"
	case IntentBlock:
		return "block"
	case IntentUnblock:
		return "unblock"
	case IntentFingerprint:
		return "fingerprint"
	}
	return "unknown"
}

// Mensajes sin dispositivos. La polaridad depende de la intención: borrar o
// desbloquear en ningún lado no deja nada pendiente; enrolar o bloquear sí.
const (
	MsgNoActiveDevices   = "No active biometric devices found"
	MsgNoDevicesToDelete = "No active devices to delete from"
	MsgNoDevicesUnblock  = "No active devices to unblock on"
)

// DefaultDeviceDelay pausa entre dispositivos consecutivos.
const DefaultDeviceDelay = 500 * time.Millisecond

// FingerprintOptions parámetros de EnrollUserFP.
type FingerprintOptions struct {
	FingerIndex int
	Overwrite   bool
}

// FanOut aplica una intención a cada lector activo, uno por uno.
type FanOut struct {
	devices repository.ActiveDeviceSource
	gateway ports.DeviceGateway
	delay   time.Duration
	sleep   func(ctx context.Context, d time.Duration)
	log     zerolog.Logger
}

// NewFanOut construye el fan-out. delay < 0 se trata como 0.
func NewFanOut(devices repository.ActiveDeviceSource, gateway ports.DeviceGateway, delay time.Duration, log zerolog.Logger) *FanOut {
	if delay < 0 {
		delay = 0
	}
	return &FanOut{
		devices: devices,
		gateway: gateway,
		delay:   delay,
		sleep:   sleepCtx,
		log:     log,
	}
}

// Run ejecuta la intención sobre todos los lectores activos.
//
// Los dispositivos se recorren en el orden del registro, sin paralelismo y con una
// pausa fija entre uno y otro. Un fallo no detiene el recorrido y los éxitos
// parciales no se deshacen: el agregado es exitoso si al menos un lector aceptó.
func (f *FanOut) Run(ctx context.Context, intent Intent, userID int64, name string, fp FingerprintOptions) entity.FanOutResult {
	opID := xid.New().String()
	log := f.log.With().
		Str("op_id", opID).
		Str("intent", intent.String()).
		Int64("user_id", userID).
		Logger()

	devices, err := f.devices.ListActive(ctx)
	if err != nil {
		log.Error().Err(err).Msg("no se pudo leer la lista de dispositivos activos")
		return entity.FanOutResult{
			Success: false,
			Message: fmt.Sprintf("failed to load active devices: %v", err),
			Results: []entity.DeviceOperationResult{},
		}
	}

	if len(devices) == 0 {
		res := noDevicesResult(intent)
		log.Warn().Bool("success", res.Success).Msg(res.Message)
		return res
	}

	code := domainbio.EmployeeCode(userID)
	results := make([]entity.DeviceOperationResult, 0, len(devices))
	for i, d := range devices {
		cmd := ports.DeviceCommand{
			EmployeeCode: code,
			EmployeeName: name,
			SerialNumber: d.SerialNo,
			FingerIndex:  fp.FingerIndex,
			Overwrite:    fp.Overwrite,
		}
		out := f.dispatch(ctx, intent, cmd)
		results = append(results, entity.DeviceOperationResult{
			DeviceID:     d.ID,
			SerialNumber: d.SerialNo,
			Success:      out.Success,
			Message:      out.Message,
		})
		log.Debug().
			Int64("device_id", d.ID).
			Str("serial_no", d.SerialNo).
			Bool("success", out.Success).
			Int("status", out.StatusCode).
			Msg(out.Message)

		if i < len(devices)-1 && f.delay > 0 {
			f.sleep(ctx, f.delay)
		}
	}

	agg := entity.FanOutResult{Results: results}
	ok := agg.Succeeded()
	agg.Success = ok > 0
	agg.Message = fmt.Sprintf("%s %d/%d device(s)", verb(intent), ok, len(results))

	ev := log.Info()
	if !agg.Success {
		ev = log.Warn()
	}
	ev.Int("succeeded", ok).Int("devices", len(results)).Msg(agg.Message)
	return agg
}

func (f *FanOut) dispatch(ctx context.Context, intent Intent, cmd ports.DeviceCommand) ports.DispatchResult {
	switch intent {
	case IntentEnroll:
		return f.gateway.AddEmployee(ctx, cmd)
	case IntentDelete:
		return f.gateway.DeleteUser(ctx, cmd)
	case IntentBlock:
		return f.gateway.SetBlocked(ctx, cmd, true)
	case IntentUnblock:
		return f.gateway.SetBlocked(ctx, cmd, false)
	case IntentFingerprint:
		return f.gateway.EnrollFingerprint(ctx, cmd)
	}
	return ports.DispatchResult{Success: false, Message: "unknown biometric intent"}
}

func noDevicesResult(intent Intent) entity.FanOutResult {
	res := entity.FanOutResult{NoDevices: true, Results: []entity.DeviceOperationResult{}}
	switch intent {
	case IntentDelete:
		res.Success, res.Message = true, MsgNoDevicesToDelete
	case IntentUnblock:
		res.Success, res.Message = true, MsgNoDevicesUnblock
	default:
		res.Success, res.Message = false, MsgNoActiveDevices
	}
	return res
}

func verb(intent Intent) string {
	switch intent {
	case IntentEnroll:
		return "Added to"
	case IntentDelete:
		return "Deleted from"
	case IntentBlock:
		return "Blocked on"
	case IntentUnblock:
		return "Unblocked on"
	case IntentFingerprint:
		return "Fingerprint enrollment sent to"
	}
	return "Processed on"
}

// sleepCtx duerme d; si ctx ya terminó no espera, pero el recorrido sigue.
func sleepCtx(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
