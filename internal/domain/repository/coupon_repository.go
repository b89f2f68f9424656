package repository

import (
	"context"

	"github.com/jhoicas/gymflow-api/internal/domain/entity"
)

// CouponRepository define el puerto de persistencia para Coupon.
type CouponRepository interface {
	Create(ctx context.Context, coupon *entity.Coupon) error
	GetByID(ctx context.Context, id string) (*entity.Coupon, error)
	GetByCode(ctx context.Context, code string) (*entity.Coupon, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Coupon, error)
	Update(ctx context.Context, coupon *entity.Coupon) error
	IncrementUsage(ctx context.Context, id string) error
}
