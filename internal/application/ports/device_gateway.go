package ports

import "context"

// Acciones que entiende el gateway de lectores de huella.
const (
	ActionAddEmployee = "AddEmployee"
	ActionDeleteUser  = "DeleteUser"
	ActionEnrollFP    = "EnrollUserFP"
	ActionBlock       = "BlockUnblockUser"
)

// DeviceCommand datos de un comando dirigido a un lector concreto.
type DeviceCommand struct {
	EmployeeCode string
	EmployeeName string
	SerialNumber string
	FingerIndex  int  // solo EnrollUserFP
	Overwrite    bool // solo EnrollUserFP
}

// DispatchResult respuesta normalizada del gateway.
// Success refleja solo la aceptación HTTP (2xx); el gateway no confirma que el
// lector físico haya ejecutado el comando.
type DispatchResult struct {
	Success    bool
	StatusCode int
	Message    string
	Data       any
}

// DeviceGateway define el puerto de salida hacia el webhook de lectores biométricos.
// Ninguna operación devuelve error: fallos de red o de parseo se convierten en
// DispatchResult{Success: false}.
type DeviceGateway interface {
	AddEmployee(ctx context.Context, cmd DeviceCommand) DispatchResult
	DeleteUser(ctx context.Context, cmd DeviceCommand) DispatchResult
	EnrollFingerprint(ctx context.Context, cmd DeviceCommand) DispatchResult
	SetBlocked(ctx context.Context, cmd DeviceCommand, block bool) DispatchResult
}

// SubscriptionChecker responde si el usuario tiene hoy una suscripción activa.
type SubscriptionChecker interface {
	HasActiveSubscription(ctx context.Context, userID int64) (bool, error)
}
