package biometric

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gymflow-api/internal/application/ports"
)

func newTestFanOut(src *fakeDevices, gw *fakeGateway) *FanOut {
	return NewFanOut(src, gw, 0, zerolog.Nop())
}

// Para N dispositivos con k éxitos: éxito agregado si y solo si k ≥ 1 y N resultados en orden.
func TestFanOut_ExitoAgregadoConAlMenosUno(t *testing.T) {
	serials := []string{"S1", "S2", "S3", "S4"}
	for k := 0; k <= len(serials); k++ {
		t.Run(fmt.Sprintf("k=%d", k), func(t *testing.T) {
			failing := serials[k:]
			gw := newFakeGateway(failing...)
			f := newTestFanOut(devices(serials...), gw)

			res := f.Run(context.Background(), IntentEnroll, 7, "Ana", FingerprintOptions{})

			require.Len(t, res.Results, len(serials))
			for i, r := range res.Results {
				assert.Equal(t, int64(i+1), r.DeviceID, "orden del registro")
				assert.Equal(t, serials[i], r.SerialNumber)
				assert.Equal(t, i < k, r.Success)
			}
			assert.Equal(t, k >= 1, res.Success)
			assert.Equal(t, fmt.Sprintf("Added to %d/%d device(s)", k, len(serials)), res.Message)
		})
	}
}

func TestFanOut_SinDispositivos_PolaridadPorIntencion(t *testing.T) {
	cases := []struct {
		intent  Intent
		success bool
		msg     string
	}{
		{IntentEnroll, false, "No active biometric devices found"},
		{IntentBlock, false, "No active biometric devices found"},
		{IntentFingerprint, false, "No active biometric devices found"},
		{IntentDelete, true, "No active devices to delete from"},
		{IntentUnblock, true, "No active devices to unblock on"},
	}
	for _, tc := range cases {
		t.Run(tc.intent.String(), func(t *testing.T) {
			gw := newFakeGateway()
			res := newTestFanOut(devices(), gw).Run(context.Background(), tc.intent, 1, "Ana", FingerprintOptions{})

			assert.Equal(t, tc.success, res.Success)
			assert.Equal(t, tc.msg, res.Message)
			assert.True(t, res.NoDevices)
			assert.Empty(t, res.Results)
			assert.Empty(t, gw.actions(), "sin dispositivos no hay llamadas al gateway")
		})
	}
}

func TestFanOut_ErrorLeyendoDispositivos(t *testing.T) {
	gw := newFakeGateway()
	src := &fakeDevices{err: errors.New("db caída")}
	res := newTestFanOut(src, gw).Run(context.Background(), IntentDelete, 1, "Ana", FingerprintOptions{})

	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "failed to load active devices")
	assert.Empty(t, gw.actions())
}

func TestFanOut_MapeaIntencionAComando(t *testing.T) {
	gw := newFakeGateway()
	f := newTestFanOut(devices("S1"), gw)

	f.Run(context.Background(), IntentEnroll, 42, "Ana", FingerprintOptions{})
	f.Run(context.Background(), IntentDelete, 42, "Ana", FingerprintOptions{})
	f.Run(context.Background(), IntentBlock, 42, "Ana", FingerprintOptions{})
	f.Run(context.Background(), IntentUnblock, 42, "Ana", FingerprintOptions{})
	f.Run(context.Background(), IntentFingerprint, 42, "Ana", FingerprintOptions{FingerIndex: 3, Overwrite: true})

	require.Len(t, gw.calls, 5)
	assert.Equal(t, []string{
		ports.ActionAddEmployee, ports.ActionDeleteUser, ports.ActionBlock, ports.ActionBlock, ports.ActionEnrollFP,
	}, gw.actions())
	assert.True(t, gw.calls[2].Block)
	assert.False(t, gw.calls[3].Block)
	assert.Equal(t, 3, gw.calls[4].Cmd.FingerIndex)
	assert.True(t, gw.calls[4].Cmd.Overwrite)
	for _, c := range gw.calls {
		assert.Equal(t, "000042", c.Cmd.EmployeeCode)
		assert.Equal(t, "Ana", c.Cmd.EmployeeName)
		assert.Equal(t, "S1", c.Cmd.SerialNumber)
	}
}

// La pausa se aplica entre dispositivos consecutivos, no después del último.
func TestFanOut_PausaEntreDispositivos(t *testing.T) {
	gw := newFakeGateway("S2")
	f := NewFanOut(devices("S1", "S2", "S3"), gw, 500*time.Millisecond, zerolog.Nop())

	var pauses []time.Duration
	f.sleep = func(_ context.Context, d time.Duration) { pauses = append(pauses, d) }

	res := f.Run(context.Background(), IntentBlock, 1, "Ana", FingerprintOptions{})

	assert.Equal(t, []time.Duration{500 * time.Millisecond, 500 * time.Millisecond}, pauses)
	assert.Equal(t, "Blocked on 2/3 device(s)", res.Message)
	assert.Len(t, gw.calls, 3, "un fallo no corta el recorrido")
}

// Con el contexto cancelado se siguen intentando todos los dispositivos.
func TestFanOut_ContextoCanceladoNoCortaElRecorrido(t *testing.T) {
	gw := newFakeGateway()
	f := NewFanOut(devices("S1", "S2"), gw, time.Hour, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		f.Run(ctx, IntentDelete, 1, "Ana", FingerprintOptions{})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("el fan-out no debe esperar la pausa con el contexto terminado")
	}
	assert.Len(t, gw.calls, 2)
}

func TestNewFanOut_DelayNegativo(t *testing.T) {
	f := NewFanOut(devices(), newFakeGateway(), -time.Second, zerolog.Nop())
	assert.Equal(t, time.Duration(0), f.delay)
}
