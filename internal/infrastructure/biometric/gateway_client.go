// Package biometric implementa el puerto DeviceGateway contra el webhook HTTP
// que reenvía comandos a los lectores de huella por número de serie.
package biometric

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jhoicas/gymflow-api/internal/application/ports"
)

// Verificar en tiempo de compilación que GatewayClient implementa DeviceGateway.
var _ ports.DeviceGateway = (*GatewayClient)(nil)

// maxResponseBytes límite de lectura de la respuesta del gateway.
const maxResponseBytes = 64 * 1024

// Credentials credenciales fijas que el gateway exige en cada comando.
type Credentials struct {
	APIKey   string
	UserName string
	Password string
}

// CommandObserver recibe el resultado de cada comando (métricas). Puede ser nil.
type CommandObserver interface {
	ObserveCommand(action string, success bool, elapsed time.Duration)
}

// GatewayClient envía un POST por comando y normaliza la respuesta.
// Usa net/http de la stdlib, igual que los demás adaptadores HTTP del proyecto.
type GatewayClient struct {
	url        string
	creds      Credentials
	httpClient *http.Client
	observer   CommandObserver
}

// NewGatewayClient construye el cliente. timeout 0 deja el comportamiento por
// defecto de http.Client (sin límite propio).
func NewGatewayClient(url string, creds Credentials, timeout time.Duration, observer CommandObserver) *GatewayClient {
	return &GatewayClient{
		url:        url,
		creds:      creds,
		httpClient: &http.Client{Timeout: timeout},
		observer:   observer,
	}
}

// ── Estructuras del protocolo del gateway ────────────────────────────────────

type gatewayRequest struct {
	Action string        `json:"action"`
	Params gatewayParams `json:"params"`
}

// gatewayParams respeta los nombres de campo que espera el gateway; los opcionales
// se omiten cuando la acción no los usa.
type gatewayParams struct {
	APIKey            string  `json:"APIKey"`
	EmployeeCode      string  `json:"EmployeeCode"`
	EmployeeName      *string `json:"EmployeeName,omitempty"`
	CardNumber        *string `json:"CardNumber,omitempty"`
	SerialNumber      string  `json:"SerialNumber"`
	UserName          string  `json:"UserName"`
	UserPassword      string  `json:"UserPassword"`
	CommandID         int     `json:"CommandId"`
	FingerIndexNumber *int    `json:"FingerIndexNumber,omitempty"`
	IsOverWrite       *bool   `json:"isOverWrite,omitempty"`
	IsBlock           *bool   `json:"IsBlock,omitempty"`
}

// ── Implementación del puerto ────────────────────────────────────────────────

// AddEmployee registra el código de empleado y su nombre en el lector.
func (c *GatewayClient) AddEmployee(ctx context.Context, cmd ports.DeviceCommand) ports.DispatchResult {
	p := c.baseParams(cmd)
	name := ASCIIName(cmd.EmployeeName)
	card := ""
	p.EmployeeName = &name
	p.CardNumber = &card
	return c.send(ctx, ports.ActionAddEmployee, p)
}

// DeleteUser elimina al empleado del lector.
func (c *GatewayClient) DeleteUser(ctx context.Context, cmd ports.DeviceCommand) ports.DispatchResult {
	return c.send(ctx, ports.ActionDeleteUser, c.baseParams(cmd))
}

// EnrollFingerprint pone al lector en modo captura para el dedo indicado.
func (c *GatewayClient) EnrollFingerprint(ctx context.Context, cmd ports.DeviceCommand) ports.DispatchResult {
	p := c.baseParams(cmd)
	finger := cmd.FingerIndex
	overwrite := cmd.Overwrite
	p.FingerIndexNumber = &finger
	p.IsOverWrite = &overwrite
	return c.send(ctx, ports.ActionEnrollFP, p)
}

// SetBlocked bloquea (block=true) o desbloquea al empleado en el lector.
func (c *GatewayClient) SetBlocked(ctx context.Context, cmd ports.DeviceCommand, block bool) ports.DispatchResult {
	p := c.baseParams(cmd)
	p.IsBlock = &block
	return c.send(ctx, ports.ActionBlock, p)
}

func (c *GatewayClient) baseParams(cmd ports.DeviceCommand) gatewayParams {
	return gatewayParams{
		APIKey:       c.creds.APIKey,
		EmployeeCode: cmd.EmployeeCode,
		SerialNumber: cmd.SerialNumber,
		UserName:     c.creds.UserName,
		UserPassword: c.creds.Password,
		CommandID:    1,
	}
}

// send hace el POST y nunca devuelve error: cualquier fallo queda en DispatchResult.
func (c *GatewayClient) send(ctx context.Context, action string, params gatewayParams) ports.DispatchResult {
	start := time.Now()
	res := c.do(ctx, action, params)
	if c.observer != nil {
		c.observer.ObserveCommand(action, res.Success, time.Since(start))
	}
	return res
}

func (c *GatewayClient) do(ctx context.Context, action string, params gatewayParams) ports.DispatchResult {
	body, err := json.Marshal(gatewayRequest{Action: action, Params: params})
	if err != nil {
		return ports.DispatchResult{Success: false, Message: fmt.Sprintf("gateway: serializar comando: %v", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return ports.DispatchResult{Success: false, Message: fmt.Sprintf("gateway: crear request: %v", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, text/plain, */*")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ports.DispatchResult{Success: false, Message: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return ports.DispatchResult{Success: false, StatusCode: resp.StatusCode, Message: fmt.Sprintf("gateway: leer respuesta: %v", err)}
	}

	data := parseBody(raw)
	ok := resp.StatusCode >= 200 && resp.StatusCode < 300
	return ports.DispatchResult{
		Success:    ok,
		StatusCode: resp.StatusCode,
		Message:    responseMessage(ok, resp.StatusCode, data),
		Data:       data,
	}
}

// parseBody intenta JSON; las respuestas exitosas del gateway no siempre lo son,
// así que ante error se devuelve {"raw": texto}.
func parseBody(raw []byte) any {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return map[string]any{"raw": string(raw)}
	}
	return v
}

func responseMessage(ok bool, status int, data any) string {
	if m, isMap := data.(map[string]any); isMap {
		for _, key := range []string{"message", "Message", "msg"} {
			if s, isStr := m[key].(string); isStr && strings.TrimSpace(s) != "" {
				if ok {
					return s
				}
				return fmt.Sprintf("gateway returned HTTP %d: %s", status, s)
			}
		}
	}
	if ok {
		return fmt.Sprintf("gateway accepted command (HTTP %d)", status)
	}
	return fmt.Sprintf("gateway returned HTTP %d", status)
}
