package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago.
const (
	PaymentOnline = "online"
	PaymentCash   = "cash"
)

// Estados de una suscripción.
const (
	SubStatusPending   = "pending"
	SubStatusActive    = "active"
	SubStatusExpired   = "expired"
	SubStatusCancelled = "cancelled"
	SubStatusRejected  = "rejected"
)

// Subscription membresía comprada por un socio. Price es el valor del plan, Total lo cobrado tras el cupón.
type Subscription struct {
	ID            string
	UserID        int64
	PlanName      string
	DurationDays  int
	Price         decimal.Decimal
	Discount      decimal.Decimal
	Total         decimal.Decimal
	CouponCode    string
	PaymentMethod string
	Status        string
	StartDate     time.Time
	EndDate       time.Time
	ApprovedBy    *int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsCurrent indica si la suscripción da acceso en el instante now.
func (s *Subscription) IsCurrent(now time.Time) bool {
	if s.Status != SubStatusActive {
		return false
	}
	return !now.Before(s.StartDate) && now.Before(s.EndDate)
}

// Activate pasa la suscripción a activa empezando en start.
func (s *Subscription) Activate(start time.Time) {
	s.Status = SubStatusActive
	s.StartDate = start
	s.EndDate = start.AddDate(0, 0, s.DurationDays)
	s.UpdatedAt = start
}

// IsValidSubscriptionStatus valida un estado recibido desde la API.
func IsValidSubscriptionStatus(status string) bool {
	switch status {
	case SubStatusPending, SubStatusActive, SubStatusExpired, SubStatusCancelled, SubStatusRejected:
		return true
	}
	return false
}
