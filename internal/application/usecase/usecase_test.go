package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gymflow-api/internal/application/dto"
	"github.com/jhoicas/gymflow-api/internal/domain"
	"github.com/jhoicas/gymflow-api/internal/domain/entity"
)

// ── Fakes ────────────────────────────────────────────────────────────────────

type memDevices struct {
	items  []*entity.Device
	nextID int64
}

func (m *memDevices) ListActive(context.Context) ([]*entity.Device, error) {
	out := make([]*entity.Device, 0)
	for _, d := range m.items {
		if d.IsActive {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *memDevices) Create(_ context.Context, d *entity.Device) error {
	for _, x := range m.items {
		if x.SerialNo == d.SerialNo {
			return domain.ErrSerialAlreadyExists
		}
	}
	m.nextID++
	d.ID = m.nextID
	cp := *d
	m.items = append(m.items, &cp)
	return nil
}

func (m *memDevices) GetByID(_ context.Context, id int64) (*entity.Device, error) {
	for _, d := range m.items {
		if d.ID == id {
			cp := *d
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memDevices) GetBySerial(_ context.Context, serial string) (*entity.Device, error) {
	for _, d := range m.items {
		if d.SerialNo == serial {
			return d, nil
		}
	}
	return nil, nil
}

func (m *memDevices) Update(_ context.Context, d *entity.Device) error {
	for i, x := range m.items {
		if x.ID == d.ID {
			cp := *d
			m.items[i] = &cp
			return nil
		}
	}
	return domain.ErrDeviceNotFound
}

func (m *memDevices) List(_ context.Context, limit, offset int) ([]*entity.Device, error) {
	if offset >= len(m.items) {
		return []*entity.Device{}, nil
	}
	end := offset + limit
	if end > len(m.items) {
		end = len(m.items)
	}
	return m.items[offset:end], nil
}

func (m *memDevices) Delete(_ context.Context, id int64) error {
	for i, d := range m.items {
		if d.ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return domain.ErrDeviceNotFound
}

type memCoupons struct {
	items map[string]*entity.Coupon
}

func (m *memCoupons) Create(_ context.Context, c *entity.Coupon) error {
	for _, x := range m.items {
		if x.Code == c.Code {
			return domain.ErrDuplicate
		}
	}
	m.items[c.ID] = c
	return nil
}

func (m *memCoupons) GetByID(_ context.Context, id string) (*entity.Coupon, error) {
	return m.items[id], nil
}

func (m *memCoupons) GetByCode(context.Context, string) (*entity.Coupon, error) {
	return nil, nil
}

func (m *memCoupons) List(context.Context, int, int) ([]*entity.Coupon, error) {
	out := make([]*entity.Coupon, 0, len(m.items))
	for _, c := range m.items {
		out = append(out, c)
	}
	return out, nil
}

func (m *memCoupons) Update(_ context.Context, c *entity.Coupon) error {
	m.items[c.ID] = c
	return nil
}

func (m *memCoupons) IncrementUsage(context.Context, string) error {
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// DeviceUseCase
// ──────────────────────────────────────────────────────────────────────────────

func TestDeviceUseCase_CreateYListActive(t *testing.T) {
	repo := &memDevices{}
	uc := NewDeviceUseCase(repo)
	inactive := false

	a, err := uc.Create(context.Background(), dto.CreateDeviceRequest{SerialNo: " SN-A ", DeviceName: "Entrada"})
	require.NoError(t, err)
	assert.Equal(t, "SN-A", a.SerialNo)
	assert.True(t, a.IsActive, "activo por defecto")

	_, err = uc.Create(context.Background(), dto.CreateDeviceRequest{SerialNo: "SN-B", IsActive: &inactive})
	require.NoError(t, err)

	active, err := repo.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "SN-A", active[0].SerialNo)
}

func TestDeviceUseCase_Validaciones(t *testing.T) {
	uc := NewDeviceUseCase(&memDevices{})

	_, err := uc.Create(context.Background(), dto.CreateDeviceRequest{SerialNo: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(context.Background(), dto.CreateDeviceRequest{SerialNo: "X"})
	require.NoError(t, err)
	_, err = uc.Create(context.Background(), dto.CreateDeviceRequest{SerialNo: "X"})
	assert.ErrorIs(t, err, domain.ErrSerialAlreadyExists)

	_, err = uc.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, domain.ErrDeviceNotFound)
}

func TestDeviceUseCase_UpdateYSetActive(t *testing.T) {
	uc := NewDeviceUseCase(&memDevices{})
	d, err := uc.Create(context.Background(), dto.CreateDeviceRequest{SerialNo: "SN"})
	require.NoError(t, err)

	loc := "Piso 2"
	updated, err := uc.Update(context.Background(), d.ID, dto.UpdateDeviceRequest{Location: &loc})
	require.NoError(t, err)
	assert.Equal(t, "Piso 2", updated.Location)
	assert.Equal(t, "SN", updated.SerialNo)

	empty := " "
	_, err = uc.Update(context.Background(), d.ID, dto.UpdateDeviceRequest{SerialNo: &empty})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	off, err := uc.SetActive(context.Background(), d.ID, false)
	require.NoError(t, err)
	assert.False(t, off.IsActive)

	got, err := uc.GetByID(context.Background(), d.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
}

func TestDeviceUseCase_ListPaginado(t *testing.T) {
	uc := NewDeviceUseCase(&memDevices{})
	for _, s := range []string{"A", "B", "C"} {
		_, err := uc.Create(context.Background(), dto.CreateDeviceRequest{SerialNo: s})
		require.NoError(t, err)
	}

	page, err := uc.List(context.Background(), dto.PageRequest{Limit: 2, Offset: 1})

	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "B", page.Items[0].SerialNo)
	assert.Equal(t, dto.PageResponse{Limit: 2, Offset: 1}, page.Page)
}

func TestDeviceUseCase_Delete(t *testing.T) {
	uc := NewDeviceUseCase(&memDevices{})
	d, err := uc.Create(context.Background(), dto.CreateDeviceRequest{SerialNo: "SN"})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(context.Background(), d.ID))
	assert.ErrorIs(t, uc.Delete(context.Background(), d.ID), domain.ErrDeviceNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// CouponUseCase
// ──────────────────────────────────────────────────────────────────────────────

func TestCouponUseCase_Create(t *testing.T) {
	uc := NewCouponUseCase(&memCoupons{items: map[string]*entity.Coupon{}})

	c, err := uc.Create(context.Background(), dto.CreateCouponRequest{Code: "verano-25", DiscountPercent: decimal.NewFromInt(25)})

	require.NoError(t, err)
	assert.Equal(t, "VERANO-25", c.Code)
	assert.True(t, c.IsActive)
	assert.Zero(t, c.UsedCount)

	_, err = uc.Create(context.Background(), dto.CreateCouponRequest{Code: "VERANO-25", DiscountPercent: decimal.NewFromInt(5)})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCouponUseCase_Validaciones(t *testing.T) {
	uc := NewCouponUseCase(&memCoupons{items: map[string]*entity.Coupon{}})
	past := time.Now().Add(-time.Hour)

	cases := []dto.CreateCouponRequest{
		{Code: "x", DiscountPercent: decimal.NewFromInt(10)},
		{Code: "VALIDO", DiscountPercent: decimal.Zero},
		{Code: "VALIDO", DiscountPercent: decimal.NewFromInt(101)},
		{Code: "VALIDO", DiscountPercent: decimal.NewFromInt(10), MaxUses: -1},
		{Code: "VALIDO", DiscountPercent: decimal.NewFromInt(10), ExpiresAt: &past},
	}
	for i, in := range cases {
		_, err := uc.Create(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "caso %d", i)
	}
}

func TestCouponUseCase_Deactivate(t *testing.T) {
	uc := NewCouponUseCase(&memCoupons{items: map[string]*entity.Coupon{}})
	c, err := uc.Create(context.Background(), dto.CreateCouponRequest{Code: "AMIGO", DiscountPercent: decimal.NewFromInt(10)})
	require.NoError(t, err)

	out, err := uc.Deactivate(context.Background(), c.ID)
	require.NoError(t, err)
	assert.False(t, out.IsActive)

	_, err = uc.Deactivate(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
