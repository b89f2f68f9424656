package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/gymflow-api/internal/application/dto"
	"github.com/jhoicas/gymflow-api/internal/domain"
	"github.com/jhoicas/gymflow-api/internal/domain/entity"
	"github.com/jhoicas/gymflow-api/internal/domain/repository"
)

var couponCodePattern = regexp.MustCompile(`^[A-Z0-9_-]{3,32}$`)

// CouponUseCase administración de cupones de descuento.
type CouponUseCase struct {
	repo repository.CouponRepository
	now  func() time.Time
}

// NewCouponUseCase construye el caso de uso.
func NewCouponUseCase(repo repository.CouponRepository) *CouponUseCase {
	return &CouponUseCase{repo: repo, now: time.Now}
}

// Create crea un cupón activo. El código se guarda en mayúsculas.
func (uc *CouponUseCase) Create(ctx context.Context, in dto.CreateCouponRequest) (*dto.CouponResponse, error) {
	code := strings.ToUpper(strings.TrimSpace(in.Code))
	if !couponCodePattern.MatchString(code) {
		return nil, fmt.Errorf("%w: code debe tener 3 a 32 caracteres A-Z, 0-9, _ o -", domain.ErrInvalidInput)
	}
	if !in.DiscountPercent.IsPositive() || in.DiscountPercent.GreaterThan(decimal.NewFromInt(100)) {
		return nil, fmt.Errorf("%w: discount_percent debe estar entre 0 y 100", domain.ErrInvalidInput)
	}
	if in.MaxUses < 0 {
		return nil, fmt.Errorf("%w: max_uses no puede ser negativo", domain.ErrInvalidInput)
	}
	now := uc.now().UTC()
	if in.ExpiresAt != nil && !in.ExpiresAt.After(now) {
		return nil, fmt.Errorf("%w: expires_at debe ser futura", domain.ErrInvalidInput)
	}

	coupon := &entity.Coupon{
		ID:              uuid.New().String(),
		Code:            code,
		DiscountPercent: in.DiscountPercent.Round(2),
		MaxUses:         in.MaxUses,
		ExpiresAt:       in.ExpiresAt,
		IsActive:        true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.repo.Create(ctx, coupon); err != nil {
		return nil, err
	}
	return toCouponResponse(coupon), nil
}

// List lista cupones.
func (uc *CouponUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.CouponListResponse, error) {
	page.Normalize()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CouponResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCouponResponse(c))
	}
	return &dto.CouponListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Deactivate desactiva el cupón; las suscripciones ya creadas conservan su descuento.
func (uc *CouponUseCase) Deactivate(ctx context.Context, id string) (*dto.CouponResponse, error) {
	coupon, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if coupon == nil {
		return nil, domain.ErrNotFound
	}
	if !coupon.IsActive {
		return toCouponResponse(coupon), nil
	}
	coupon.IsActive = false
	coupon.UpdatedAt = uc.now().UTC()
	if err := uc.repo.Update(ctx, coupon); err != nil {
		return nil, err
	}
	return toCouponResponse(coupon), nil
}

func toCouponResponse(c *entity.Coupon) *dto.CouponResponse {
	return &dto.CouponResponse{
		ID:              c.ID,
		Code:            c.Code,
		DiscountPercent: c.DiscountPercent,
		MaxUses:         c.MaxUses,
		UsedCount:       c.UsedCount,
		ExpiresAt:       c.ExpiresAt,
		IsActive:        c.IsActive,
		CreatedAt:       c.CreatedAt,
	}
}
