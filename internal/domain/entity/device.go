package entity

import "time"

// Device representa un lector de huella registrado. SerialNo es el identificador
// que entiende el gateway externo; IsActive decide si participa en los fan-out.
type Device struct {
	ID         int64
	SerialNo   string
	DeviceName string
	Location   string
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
