package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrUserNotFound        = errors.New("usuario no encontrado")
	ErrDeviceNotFound      = errors.New("dispositivo no encontrado")
	ErrEmailAlreadyExists  = errors.New("el email ya está registrado")
	ErrSerialAlreadyExists = errors.New("el número de serie ya está registrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrDuplicate           = errors.New("recurso duplicado")
	ErrUnauthorized        = errors.New("no autorizado")
	ErrForbidden           = errors.New("acceso denegado")
	ErrConflict            = errors.New("conflicto con el estado actual")
	ErrCouponInvalid       = errors.New("cupón inválido o vencido")
)
