package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gymflow-api/internal/domain/entity"
	"github.com/jhoicas/gymflow-api/internal/domain/repository"
)

// countingRepo cuenta cuántas veces se consulta la lista de activos.
type countingRepo struct {
	repository.DeviceRepository
	list  []*entity.Device
	err   error
	calls int
}

func (r *countingRepo) ListActive(context.Context) ([]*entity.Device, error) {
	r.calls++
	return r.list, r.err
}

func (r *countingRepo) Create(_ context.Context, d *entity.Device) error {
	r.list = append(r.list, d)
	return nil
}

func (r *countingRepo) Update(context.Context, *entity.Device) error {
	return nil
}

func (r *countingRepo) Delete(context.Context, int64) error {
	return nil
}

func newCache(t *testing.T, repo repository.DeviceRepository) *DeviceCache {
	t.Helper()
	c, err := NewDeviceCache(repo, time.Minute, zerolog.Nop())
	require.NoError(t, err)
	dc, ok := c.(*DeviceCache)
	require.True(t, ok)
	t.Cleanup(dc.Close)
	return dc
}

func TestDeviceCache_SirveDesdeCache(t *testing.T) {
	repo := &countingRepo{list: []*entity.Device{{ID: 1, SerialNo: "A", IsActive: true}}}
	c := newCache(t, repo)

	for i := 0; i < 3; i++ {
		list, err := c.ListActive(context.Background())
		require.NoError(t, err)
		require.Len(t, list, 1)
	}
	assert.Equal(t, 1, repo.calls)
}

func TestDeviceCache_EscrituraInvalida(t *testing.T) {
	repo := &countingRepo{list: []*entity.Device{{ID: 1, SerialNo: "A", IsActive: true}}}
	c := newCache(t, repo)

	_, _ = c.ListActive(context.Background())
	require.NoError(t, c.Create(context.Background(), &entity.Device{ID: 2, SerialNo: "B", IsActive: true}))
	list, err := c.ListActive(context.Background())

	require.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, 2, repo.calls)

	require.NoError(t, c.Delete(context.Background(), 2))
	_, _ = c.ListActive(context.Background())
	assert.Equal(t, 3, repo.calls)
}

func TestDeviceCache_ErrorNoSeCachea(t *testing.T) {
	repo := &countingRepo{err: errors.New("db caída")}
	c := newCache(t, repo)

	_, err := c.ListActive(context.Background())
	require.Error(t, err)
	_, err = c.ListActive(context.Background())
	require.Error(t, err)
	assert.Equal(t, 2, repo.calls)
}

func TestDeviceCache_NoExponeEntradaCacheada(t *testing.T) {
	repo := &countingRepo{list: []*entity.Device{{ID: 1, SerialNo: "A", IsActive: true}}}
	c := newCache(t, repo)

	first, _ := c.ListActive(context.Background())
	first[0].SerialNo = "mutado"
	second, _ := c.ListActive(context.Background())

	assert.Equal(t, "A", second[0].SerialNo)
}

func TestNewDeviceCache_TTLCeroDevuelveRepo(t *testing.T) {
	repo := &countingRepo{}
	c, err := NewDeviceCache(repo, 0, zerolog.Nop())
	require.NoError(t, err)
	assert.Same(t, repo, c)
}
