package postgres

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gymflow-api/internal/domain"
	"github.com/jhoicas/gymflow-api/internal/domain/entity"
	"github.com/jhoicas/gymflow-api/internal/domain/repository"
	"github.com/jhoicas/gymflow-api/pkg/config"
)

// Requiere una base PostgreSQL desechable: TEST_DATABASE_URL=postgres://...
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL no definido")
	}
	ctx := context.Background()
	pool, err := NewPool(ctx, config.DBConfig{DatabaseURL: dsn, ConnectRetries: 1}, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, Migrate(ctx, pool, zerolog.Nop()))
	return pool
}

func newMember(t *testing.T, users *UserRepo) *entity.User {
	t.Helper()
	now := time.Now().UTC()
	u := &entity.User{
		Email: uuid.NewString() + "@test.local", PasswordHash: "x", Name: "Ana",
		Role: entity.RoleMember, SubscriptionStatus: entity.SubscriptionStatusNone,
		CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, users.Create(context.Background(), u))
	return u
}

func TestIntegration_AccesoBiometricoYSuscripcionVigente(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	users := NewUserRepository(pool)
	subs := NewSubscriptionRepository(pool)
	u := newMember(t, users)

	rec := entity.AccessRecord{BiometricDeviceID: "000001", IsBioMetricActive: true, BioMetricAccess: true}
	require.NoError(t, users.UpdateBiometricAccess(ctx, u.ID, rec))
	got, err := users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, rec, got.AccessRecord)

	now := time.Now().UTC().Truncate(time.Second)
	sub := &entity.Subscription{
		ID: uuid.NewString(), UserID: u.ID, PlanName: "Mensual", DurationDays: 30,
		Price: decimal.NewFromInt(100), Total: decimal.NewFromInt(100),
		PaymentMethod: entity.PaymentOnline, CreatedAt: now,
	}
	sub.Activate(now.Add(-time.Hour))
	require.NoError(t, subs.Create(ctx, sub))

	current, err := subs.HasCurrent(ctx, u.ID, now)
	require.NoError(t, err)
	assert.True(t, current)

	expired, err := subs.ListExpiredActive(ctx, now.AddDate(0, 0, 31))
	require.NoError(t, err)
	ids := make([]string, 0, len(expired))
	for _, s := range expired {
		ids = append(ids, s.ID)
	}
	assert.Contains(t, ids, sub.ID)

	missing, err := users.GetByID(ctx, -1)
	require.NoError(t, err)
	assert.Nil(t, missing, "no encontrado devuelve (nil, nil)")
	assert.ErrorIs(t, users.UpdateSubscriptionStatus(ctx, -1, entity.SubscriptionStatusActive), domain.ErrUserNotFound)
}

func TestIntegration_DispositivosSerialUnico(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	devices := NewDeviceRepository(pool)
	serial := "T-" + uuid.NewString()[:8]

	d := &entity.Device{SerialNo: serial, IsActive: true, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	require.NoError(t, devices.Create(ctx, d))
	t.Cleanup(func() { _ = devices.Delete(ctx, d.ID) })

	err := devices.Create(ctx, &entity.Device{SerialNo: serial, CreatedAt: time.Now(), UpdatedAt: time.Now()})
	assert.ErrorIs(t, err, domain.ErrSerialAlreadyExists)

	d.IsActive = false
	require.NoError(t, devices.Update(ctx, d))
	active, err := devices.ListActive(ctx)
	require.NoError(t, err)
	for _, x := range active {
		assert.NotEqual(t, d.ID, x.ID, "un lector inactivo no aparece en ListActive")
	}
}

func TestIntegration_TxRunnerRevierteAlFallar(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	users := NewUserRepository(pool)
	coupons := NewCouponRepository(pool)
	u := newMember(t, users)

	code := "TX" + uuid.NewString()[:6]
	c := &entity.Coupon{
		ID: uuid.NewString(), Code: code, DiscountPercent: decimal.NewFromInt(10), MaxUses: 1,
		IsActive: true, CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	require.NoError(t, coupons.Create(ctx, c))

	boom := errors.New("boom")
	err := NewTxRunner(pool).RunMembership(ctx, func(_ repository.SubscriptionRepository, cp repository.CouponRepository, us repository.UserRepository) error {
		require.NoError(t, cp.IncrementUsage(ctx, c.ID))
		require.NoError(t, us.UpdateSubscriptionStatus(ctx, u.ID, entity.SubscriptionStatusActive))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	after, err := coupons.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Zero(t, after.UsedCount, "el rollback deshace el uso del cupón")
	got, err := users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.SubscriptionStatusNone, got.SubscriptionStatus)

	require.NoError(t, coupons.IncrementUsage(ctx, c.ID))
	assert.ErrorIs(t, coupons.IncrementUsage(ctx, c.ID), domain.ErrCouponInvalid, "max_uses agotado")
}
