package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSubscriptionRequest entrada común para compra online, cobro en efectivo y solicitud en efectivo.
// UserID solo se usa en el alta en efectivo hecha por un administrador.
type CreateSubscriptionRequest struct {
	UserID       int64           `json:"user_id"`
	PlanName     string          `json:"plan_name"`
	DurationDays int             `json:"duration_days"`
	Price        decimal.Decimal `json:"price"`
	CouponCode   string          `json:"coupon_code"`
}

// ChangeSubscriptionStatusRequest cambio de estado desde el back office.
type ChangeSubscriptionStatusRequest struct {
	Status string `json:"status"`
}

// SubscriptionResponse salida de una suscripción.
// Biometric solo aparece cuando la operación disparó el coordinador biométrico.
type SubscriptionResponse struct {
	ID            string           `json:"id"`
	UserID        int64            `json:"user_id"`
	PlanName      string           `json:"plan_name"`
	DurationDays  int              `json:"duration_days"`
	Price         decimal.Decimal  `json:"price"`
	Discount      decimal.Decimal  `json:"discount"`
	Total         decimal.Decimal  `json:"total"`
	CouponCode    string           `json:"coupon_code,omitempty"`
	PaymentMethod string           `json:"payment_method"`
	Status        string           `json:"status"`
	StartDate     *time.Time       `json:"start_date,omitempty"`
	EndDate       *time.Time       `json:"end_date,omitempty"`
	ApprovedBy    *int64           `json:"approved_by,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
	Biometric     *BiometricResult `json:"biometric,omitempty"`
}

// SubscriptionListResponse lista de suscripciones.
type SubscriptionListResponse struct {
	Items []SubscriptionResponse `json:"items"`
	Page  PageResponse           `json:"page"`
}

// SweepReport resumen de un barrido de vencimientos.
type SweepReport struct {
	ExpiredSubscriptions int `json:"expired_subscriptions"`
	UsersChecked         int `json:"users_checked"`
	UsersSynced          int `json:"users_synced"`
	SyncFailures         int `json:"sync_failures"`
}
