package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/gymflow-api/internal/application/dto"
	"github.com/jhoicas/gymflow-api/internal/domain"
	"github.com/jhoicas/gymflow-api/internal/domain/entity"
	"github.com/jhoicas/gymflow-api/internal/domain/repository"
)

// DeviceUseCase administración del registro de lectores.
// Activar, desactivar o borrar un lector no toca a los usuarios ya enrolados en él.
type DeviceUseCase struct {
	repo repository.DeviceRepository
	now  func() time.Time
}

// NewDeviceUseCase construye el caso de uso.
func NewDeviceUseCase(repo repository.DeviceRepository) *DeviceUseCase {
	return &DeviceUseCase{repo: repo, now: time.Now}
}

// Create registra un lector. El serial es obligatorio y único.
func (uc *DeviceUseCase) Create(ctx context.Context, in dto.CreateDeviceRequest) (*dto.DeviceResponse, error) {
	serial := strings.TrimSpace(in.SerialNo)
	if serial == "" {
		return nil, fmt.Errorf("%w: serial_no requerido", domain.ErrInvalidInput)
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	now := uc.now().UTC()
	device := &entity.Device{
		SerialNo:   serial,
		DeviceName: strings.TrimSpace(in.DeviceName),
		Location:   strings.TrimSpace(in.Location),
		IsActive:   active,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(ctx, device); err != nil {
		return nil, err
	}
	return toDeviceResponse(device), nil
}

// GetByID obtiene un lector; ErrDeviceNotFound si no existe.
func (uc *DeviceUseCase) GetByID(ctx context.Context, id int64) (*dto.DeviceResponse, error) {
	device, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return toDeviceResponse(device), nil
}

// List lista lectores activos e inactivos.
func (uc *DeviceUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.DeviceListResponse, error) {
	page.Normalize()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.DeviceResponse, 0, len(list))
	for _, d := range list {
		items = append(items, *toDeviceResponse(d))
	}
	return &dto.DeviceListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Update aplica los campos presentes.
func (uc *DeviceUseCase) Update(ctx context.Context, id int64, in dto.UpdateDeviceRequest) (*dto.DeviceResponse, error) {
	device, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.SerialNo != nil {
		serial := strings.TrimSpace(*in.SerialNo)
		if serial == "" {
			return nil, fmt.Errorf("%w: serial_no no puede quedar vacío", domain.ErrInvalidInput)
		}
		device.SerialNo = serial
	}
	if in.DeviceName != nil {
		device.DeviceName = strings.TrimSpace(*in.DeviceName)
	}
	if in.Location != nil {
		device.Location = strings.TrimSpace(*in.Location)
	}
	device.UpdatedAt = uc.now().UTC()
	if err := uc.repo.Update(ctx, device); err != nil {
		return nil, err
	}
	return toDeviceResponse(device), nil
}

// SetActive incluye o excluye el lector de los próximos fan-out.
func (uc *DeviceUseCase) SetActive(ctx context.Context, id int64, active bool) (*dto.DeviceResponse, error) {
	device, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if device.IsActive == active {
		return toDeviceResponse(device), nil
	}
	device.IsActive = active
	device.UpdatedAt = uc.now().UTC()
	if err := uc.repo.Update(ctx, device); err != nil {
		return nil, err
	}
	return toDeviceResponse(device), nil
}

// Delete elimina el lector del registro.
func (uc *DeviceUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repo.Delete(ctx, id)
}

func (uc *DeviceUseCase) load(ctx context.Context, id int64) (*entity.Device, error) {
	device, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if device == nil {
		return nil, domain.ErrDeviceNotFound
	}
	return device, nil
}

func toDeviceResponse(d *entity.Device) *dto.DeviceResponse {
	return &dto.DeviceResponse{
		ID:         d.ID,
		SerialNo:   d.SerialNo,
		DeviceName: d.DeviceName,
		Location:   d.Location,
		IsActive:   d.IsActive,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}
