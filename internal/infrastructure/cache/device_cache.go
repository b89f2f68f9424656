// Package cache decora repositorios con una caché en memoria (otter).
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/maypok86/otter"
	"github.com/rs/zerolog"

	"github.com/jhoicas/gymflow-api/internal/domain/entity"
	"github.com/jhoicas/gymflow-api/internal/domain/repository"
)

var _ repository.DeviceRepository = (*DeviceCache)(nil)

const activeDevicesKey = "devices:active"

// DeviceCache guarda la lista de dispositivos activos durante ttl. Cualquier
// escritura a través del decorador invalida la entrada; escrituras hechas por
// otro proceso se ven como máximo ttl después.
type DeviceCache struct {
	repository.DeviceRepository
	store otter.Cache[string, []*entity.Device]
	log   zerolog.Logger
}

// NewDeviceCache envuelve repo. ttl <= 0 desactiva la caché y devuelve repo tal cual.
func NewDeviceCache(repo repository.DeviceRepository, ttl time.Duration, log zerolog.Logger) (repository.DeviceRepository, error) {
	if ttl <= 0 {
		return repo, nil
	}
	store, err := otter.MustBuilder[string, []*entity.Device](16).
		WithTTL(ttl).
		Build()
	if err != nil {
		return nil, fmt.Errorf("cache dispositivos: %w", err)
	}
	return &DeviceCache{DeviceRepository: repo, store: store, log: log}, nil
}

// ListActive sirve desde caché; en miss consulta el repositorio y guarda el resultado.
func (c *DeviceCache) ListActive(ctx context.Context) ([]*entity.Device, error) {
	if list, ok := c.store.Get(activeDevicesKey); ok {
		c.log.Trace().Int("devices", len(list)).Msg("dispositivos activos desde caché")
		return cloneDevices(list), nil
	}
	list, err := c.DeviceRepository.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	c.store.Set(activeDevicesKey, cloneDevices(list))
	return list, nil
}

func (c *DeviceCache) Create(ctx context.Context, device *entity.Device) error {
	defer c.Invalidate()
	return c.DeviceRepository.Create(ctx, device)
}

func (c *DeviceCache) Update(ctx context.Context, device *entity.Device) error {
	defer c.Invalidate()
	return c.DeviceRepository.Update(ctx, device)
}

func (c *DeviceCache) Delete(ctx context.Context, id int64) error {
	defer c.Invalidate()
	return c.DeviceRepository.Delete(ctx, id)
}

// Invalidate descarta la lista cacheada.
func (c *DeviceCache) Invalidate() {
	c.store.Delete(activeDevicesKey)
}

// Close libera los recursos de otter.
func (c *DeviceCache) Close() {
	c.store.Close()
}

// cloneDevices copia los dispositivos para que el llamador no modifique la caché.
func cloneDevices(in []*entity.Device) []*entity.Device {
	out := make([]*entity.Device, len(in))
	for i, d := range in {
		cp := *d
		out[i] = &cp
	}
	return out
}
