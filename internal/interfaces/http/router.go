package http

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/jhoicas/gymflow-api/internal/application/auth"
	"github.com/jhoicas/gymflow-api/internal/application/membership"
	"github.com/jhoicas/gymflow-api/internal/application/usecase"
	"github.com/jhoicas/gymflow-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	UserUC         *usecase.UserUseCase
	DeviceUC       *usecase.DeviceUseCase
	CouponUC       *usecase.CouponUseCase
	SubscriptionUC *membership.SubscriptionUseCase
	ReceiptUC      *membership.ReceiptUseCase
	Biometric      BiometricService
	Sweeper        Sweeper
	Metrics        http.Handler // nil = sin /metrics
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics))
	}

	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Socio autenticado
	me := api.Group("/me", AuthMiddleware(deps.JWTSecret))
	meHandler := NewMeHandler(deps.UserUC, deps.SubscriptionUC, deps.ReceiptUC)
	me.Get("/", meHandler.Profile)
	me.Get("/subscriptions", meHandler.ListSubscriptions)
	me.Post("/subscriptions", meHandler.BuyOnline)
	me.Post("/subscriptions/cash", meHandler.RequestCash)
	me.Get("/subscriptions/:id/receipt", meHandler.Receipt)

	// Back office (JWT + rol admin)
	admin := api.Group("/admin", AuthMiddleware(deps.JWTSecret), RequireRole(entity.RoleAdmin))

	devices := admin.Group("/devices")
	deviceHandler := NewDeviceHandler(deps.DeviceUC)
	devices.Post("/", deviceHandler.Create)
	devices.Get("/", deviceHandler.List)
	devices.Get("/:id", deviceHandler.GetByID)
	devices.Put("/:id", deviceHandler.Update)
	devices.Patch("/:id/active", deviceHandler.SetActive)
	devices.Delete("/:id", deviceHandler.Delete)

	users := admin.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)

	bio := users.Group("/:id/biometric")
	bioHandler := NewBiometricHandler(deps.Biometric, deps.UserUC)
	bio.Post("/enroll", bioHandler.Enroll)
	bio.Post("/block", bioHandler.Block)
	bio.Post("/unblock", bioHandler.Unblock)
	bio.Post("/disable", bioHandler.Disable)
	bio.Post("/sync", bioHandler.Sync)
	bio.Post("/fingerprint", bioHandler.Fingerprint)

	subs := admin.Group("/subscriptions")
	subHandler := NewSubscriptionHandler(deps.SubscriptionUC)
	subs.Get("/", subHandler.List)
	subs.Post("/cash", subHandler.CreateCash)
	subs.Get("/:id", subHandler.GetByID)
	subs.Post("/:id/approve", subHandler.Approve)
	subs.Post("/:id/reject", subHandler.Reject)
	subs.Patch("/:id/status", subHandler.ChangeStatus)

	coupons := admin.Group("/coupons")
	couponHandler := NewCouponHandler(deps.CouponUC)
	coupons.Get("/", couponHandler.List)
	coupons.Post("/", couponHandler.Create)
	coupons.Patch("/:id/deactivate", couponHandler.Deactivate)

	admin.Post("/sweep", NewSweepHandler(deps.Sweeper).Run)
}
