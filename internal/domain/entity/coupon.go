package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Coupon descuento porcentual aplicable al crear una suscripción.
type Coupon struct {
	ID              string
	Code            string
	DiscountPercent decimal.Decimal
	MaxUses         int // 0 = ilimitado
	UsedCount       int
	ExpiresAt       *time.Time
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

var hundred = decimal.NewFromInt(100)

// Applicable indica si el cupón puede usarse en now.
func (c *Coupon) Applicable(now time.Time) bool {
	if !c.IsActive {
		return false
	}
	if c.ExpiresAt != nil && !now.Before(*c.ExpiresAt) {
		return false
	}
	if c.MaxUses > 0 && c.UsedCount >= c.MaxUses {
		return false
	}
	return true
}

// DiscountFor calcula el descuento sobre price redondeado a 2 decimales, nunca mayor que price.
func (c *Coupon) DiscountFor(price decimal.Decimal) decimal.Decimal {
	d := price.Mul(c.DiscountPercent).Div(hundred).Round(2)
	if d.GreaterThan(price) {
		return price
	}
	return d
}
