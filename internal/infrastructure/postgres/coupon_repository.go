package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/gymflow-api/internal/domain"
	"github.com/jhoicas/gymflow-api/internal/domain/entity"
	"github.com/jhoicas/gymflow-api/internal/domain/repository"
)

var _ repository.CouponRepository = (*CouponRepo)(nil)

const couponColumns = `id, code, discount_percent, max_uses, used_count, expires_at, is_active, created_at, updated_at`

// CouponRepo implementación de CouponRepository sobre PostgreSQL.
type CouponRepo struct {
	q Querier
}

// NewCouponRepository construye el adaptador. Acepta pool o tx.
func NewCouponRepository(q Querier) *CouponRepo {
	return &CouponRepo{q: q}
}

// Create persiste el cupón; el código repetido devuelve ErrDuplicate.
func (r *CouponRepo) Create(ctx context.Context, c *entity.Coupon) error {
	query := `
		INSERT INTO coupons (id, code, discount_percent, max_uses, used_count, expires_at, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.Code, c.DiscountPercent, c.MaxUses, c.UsedCount, c.ExpiresAt, c.IsActive, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert coupon: %w", err)
	}
	return nil
}

// GetByID devuelve (nil, nil) si no existe.
func (r *CouponRepo) GetByID(ctx context.Context, id string) (*entity.Coupon, error) {
	return r.getOne(ctx, `SELECT `+couponColumns+` FROM coupons WHERE id = $1`, id)
}

// GetByCode busca por código exacto (se guardan en mayúsculas).
func (r *CouponRepo) GetByCode(ctx context.Context, code string) (*entity.Coupon, error) {
	return r.getOne(ctx, `SELECT `+couponColumns+` FROM coupons WHERE code = $1`, code)
}

// List lista cupones, más recientes primero.
func (r *CouponRepo) List(ctx context.Context, limit, offset int) ([]*entity.Coupon, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+couponColumns+` FROM coupons ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list coupons: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.Coupon, 0)
	for rows.Next() {
		c, err := scanCoupon(rows)
		if err != nil {
			return nil, fmt.Errorf("scan coupon: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Update guarda los campos editables (no el contador de usos).
func (r *CouponRepo) Update(ctx context.Context, c *entity.Coupon) error {
	query := `
		UPDATE coupons SET discount_percent = $2, max_uses = $3, expires_at = $4, is_active = $5, updated_at = $6
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, c.ID, c.DiscountPercent, c.MaxUses, c.ExpiresAt, c.IsActive, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update coupon: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// IncrementUsage suma un uso solo si el cupón sigue aplicable; si no, ErrCouponInvalid.
func (r *CouponRepo) IncrementUsage(ctx context.Context, id string) error {
	query := `
		UPDATE coupons SET used_count = used_count + 1, updated_at = NOW()
		WHERE id = $1 AND is_active
		  AND (max_uses = 0 OR used_count < max_uses)
		  AND (expires_at IS NULL OR expires_at > NOW())`
	tag, err := r.q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("increment coupon usage: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCouponInvalid
	}
	return nil
}

func (r *CouponRepo) getOne(ctx context.Context, query string, arg any) (*entity.Coupon, error) {
	c, err := scanCoupon(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get coupon: %w", err)
	}
	return c, nil
}

func scanCoupon(row pgx.Row) (*entity.Coupon, error) {
	var c entity.Coupon
	err := row.Scan(&c.ID, &c.Code, &c.DiscountPercent, &c.MaxUses, &c.UsedCount, &c.ExpiresAt,
		&c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
