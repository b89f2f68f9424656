package repository

import (
	"context"

	"github.com/jhoicas/gymflow-api/internal/domain/entity"
)

// ActiveDeviceSource es lo único que necesita el fan-out biométrico del registro de dispositivos.
type ActiveDeviceSource interface {
	// ListActive devuelve los dispositivos con is_active = true en orden de registro (id ascendente).
	ListActive(ctx context.Context) ([]*entity.Device, error)
}

// DeviceRepository define el puerto de persistencia para Device (DIP).
type DeviceRepository interface {
	ActiveDeviceSource
	Create(ctx context.Context, device *entity.Device) error
	GetByID(ctx context.Context, id int64) (*entity.Device, error)
	GetBySerial(ctx context.Context, serialNo string) (*entity.Device, error)
	Update(ctx context.Context, device *entity.Device) error
	List(ctx context.Context, limit, offset int) ([]*entity.Device, error)
	Delete(ctx context.Context, id int64) error
}
