package biometric

import (
	"context"
	"net/http"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appbio "github.com/jhoicas/gymflow-api/internal/application/biometric"
	"github.com/jhoicas/gymflow-api/internal/domain/entity"
)

type staticDevices []*entity.Device

func (s staticDevices) ListActive(context.Context) ([]*entity.Device, error) {
	return s, nil
}

// Enrolamiento real contra el gateway: A responde 200 {} y B responde 500.
func TestEscenario_EnrolamientoParcialContraGateway(t *testing.T) {
	srv, reqs := newGatewayServer(t, func(w http.ResponseWriter, serial string) {
		if serial == "B" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{}`))
	})
	client := NewGatewayClient(srv.URL, testCreds(), 0, nil)
	devices := staticDevices{{ID: 1, SerialNo: "A", IsActive: true}, {ID: 2, SerialNo: "B", IsActive: true}}

	fan := appbio.NewFanOut(devices, client, 0, zerolog.Nop())
	res := fan.Run(context.Background(), appbio.IntentEnroll, 7, "Ana", appbio.FingerprintOptions{})

	assert.True(t, res.Success)
	assert.Equal(t, "Added to 1/2 device(s)", res.Message)
	require.Len(t, res.Results, 2)
	assert.True(t, res.Results[0].Success)
	assert.Equal(t, "A", res.Results[0].SerialNumber)
	assert.False(t, res.Results[1].Success)
	assert.Equal(t, "gateway returned HTTP 500", res.Results[1].Message)

	require.Len(t, *reqs, 2)
	for _, r := range *reqs {
		assert.Equal(t, "000007", r.Params["EmployeeCode"])
	}
}
