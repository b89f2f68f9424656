// Package bootstrap arma el grafo de dependencias compartido por la API y gymctl.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	appauth "github.com/jhoicas/gymflow-api/internal/application/auth"
	appbio "github.com/jhoicas/gymflow-api/internal/application/biometric"
	"github.com/jhoicas/gymflow-api/internal/application/membership"
	"github.com/jhoicas/gymflow-api/internal/application/usecase"
	"github.com/jhoicas/gymflow-api/internal/domain/repository"
	infrabio "github.com/jhoicas/gymflow-api/internal/infrastructure/biometric"
	"github.com/jhoicas/gymflow-api/internal/infrastructure/cache"
	"github.com/jhoicas/gymflow-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/gymflow-api/internal/infrastructure/pdf"
	"github.com/jhoicas/gymflow-api/internal/infrastructure/postgres"
	"github.com/jhoicas/gymflow-api/pkg/config"
	"github.com/jhoicas/gymflow-api/pkg/logger"
)

// Container dependencias ya construidas.
type Container struct {
	Pool    *pgxpool.Pool
	Metrics *metrics.Service

	Devices repository.DeviceRepository
	Users   repository.UserRepository

	Coordinator    *appbio.Coordinator
	AuthUC         *appauth.AuthUseCase
	UserUC         *usecase.UserUseCase
	DeviceUC       *usecase.DeviceUseCase
	CouponUC       *usecase.CouponUseCase
	SubscriptionUC *membership.SubscriptionUseCase
	ReceiptUC      *membership.ReceiptUseCase
	Sweeper        *membership.AccessSweeper

	closers []func()
}

// New conecta a PostgreSQL, aplica migraciones si DB_AUTO_MIGRATE y arma los casos de uso.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Container, error) {
	pool, err := postgres.NewPool(ctx, cfg.DB, log.Component("postgres"))
	if err != nil {
		return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	c := &Container{Pool: pool, Metrics: metrics.NewService()}
	c.closers = append(c.closers, pool.Close)

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool, log.Component("migrate")); err != nil {
			c.Close()
			return nil, err
		}
	}

	devices, err := cache.NewDeviceCache(postgres.NewDeviceRepository(pool), cfg.Biometric.CacheTTL, log.Component("device_cache"))
	if err != nil {
		c.Close()
		return nil, err
	}
	if cl, ok := devices.(interface{ Close() }); ok {
		c.closers = append(c.closers, cl.Close)
	}
	c.Devices = devices
	c.Users = postgres.NewUserRepository(pool)
	subs := postgres.NewSubscriptionRepository(pool)
	coupons := postgres.NewCouponRepository(pool)

	if cfg.Biometric.GatewayURL == "" {
		log.Warn().Msg("BIOMETRIC_GATEWAY_URL vacío: los comandos a los lectores van a fallar")
	}
	gateway := infrabio.NewGatewayClient(cfg.Biometric.GatewayURL, infrabio.Credentials{
		APIKey:   cfg.Biometric.APIKey,
		UserName: cfg.Biometric.UserName,
		Password: cfg.Biometric.Password,
	}, cfg.Biometric.HTTPTimeout, c.Metrics)

	fanout := appbio.NewFanOut(devices, gateway, cfg.Biometric.DeviceDelay, log.Component("biometric_fanout"))
	c.Coordinator = appbio.NewCoordinator(c.Users, membership.NewActiveChecker(subs), fanout, log.Component("biometric"))

	c.AuthUC = appauth.NewAuthUseCase(c.Users, appauth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	c.UserUC = usecase.NewUserUseCase(c.Users)
	c.DeviceUC = usecase.NewDeviceUseCase(devices)
	c.CouponUC = usecase.NewCouponUseCase(coupons)
	c.SubscriptionUC = membership.NewSubscriptionUseCase(
		postgres.NewTxRunner(pool), subs, c.Users, c.Coordinator, log.Component("subscriptions"),
	)
	c.ReceiptUC = membership.NewReceiptUseCase(subs, c.Users, infrapdf.NewMarotoReceiptGenerator(), cfg.App.GymName)
	c.Sweeper = membership.NewAccessSweeper(subs, c.Users, c.Coordinator, cfg.Sweep.Concurrency, c.Metrics, log.Component("sweeper"))

	return c, nil
}

// Close libera recursos en orden inverso.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}
