package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// Estados de suscripción reflejados en la fila del usuario.
const (
	SubscriptionStatusNone     = "none"
	SubscriptionStatusActive   = "active"
	SubscriptionStatusInactive = "inactive"
	SubscriptionStatusExpired  = "expired"
)

// BiometricState estado informal del acceso biométrico de un usuario.
type BiometricState string

const (
	BiometricUnenrolled      BiometricState = "unenrolled"
	BiometricEnrolledActive  BiometricState = "enrolled_active"
	BiometricEnrolledBlocked BiometricState = "enrolled_blocked"
)

// AccessRecord es el subconjunto del perfil que solo modifica el coordinador biométrico.
//
// Invariante buscado (no atómico): con IsBioMetricActive en true, BioMetricAccess
// debería coincidir con "tiene suscripción activa". Con IsBioMetricActive en false
// BioMetricAccess no significa nada.
type AccessRecord struct {
	BiometricDeviceID string // código de empleado en los lectores
	IsBioMetricActive bool   // alguna vez se enroló con éxito
	BioMetricAccess   bool   // puede abrir los lectores ahora
}

// User representa un socio o un administrador del gimnasio.
type User struct {
	ID                 int64
	Email              string
	PasswordHash       string
	Name               string
	Phone              string
	Role               string
	SubscriptionStatus string
	AccessRecord
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BiometricState deriva el estado a partir de los flags persistidos.
func (u *User) BiometricState() BiometricState {
	switch {
	case !u.IsBioMetricActive:
		return BiometricUnenrolled
	case u.BioMetricAccess:
		return BiometricEnrolledActive
	default:
		return BiometricEnrolledBlocked
	}
}

// IsAdmin indica si el usuario tiene rol de administrador.
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }
