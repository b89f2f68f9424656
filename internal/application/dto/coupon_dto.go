package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCouponRequest entrada para crear un cupón.
type CreateCouponRequest struct {
	Code            string          `json:"code"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	MaxUses         int             `json:"max_uses"`
	ExpiresAt       *time.Time      `json:"expires_at"`
}

// CouponResponse salida de un cupón.
type CouponResponse struct {
	ID              string          `json:"id"`
	Code            string          `json:"code"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	MaxUses         int             `json:"max_uses"`
	UsedCount       int             `json:"used_count"`
	ExpiresAt       *time.Time      `json:"expires_at,omitempty"`
	IsActive        bool            `json:"is_active"`
	CreatedAt       time.Time       `json:"created_at"`
}

// CouponListResponse lista paginada de cupones.
type CouponListResponse struct {
	Items []CouponResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}
