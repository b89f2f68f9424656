package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/gymflow-api/internal/domain"
	"github.com/jhoicas/gymflow-api/internal/domain/entity"
	"github.com/jhoicas/gymflow-api/internal/domain/repository"
)

var _ repository.SubscriptionRepository = (*SubscriptionRepo)(nil)

const subscriptionColumns = `id, user_id, plan_name, duration_days, price, discount, total, coupon_code,
	payment_method, status, start_date, end_date, approved_by, created_at, updated_at`

// SubscriptionRepo implementación de SubscriptionRepository sobre PostgreSQL.
type SubscriptionRepo struct {
	q Querier
}

// NewSubscriptionRepository construye el adaptador. Acepta pool o tx.
func NewSubscriptionRepository(q Querier) *SubscriptionRepo {
	return &SubscriptionRepo{q: q}
}

// Create persiste la suscripción. Las pendientes se guardan sin fechas.
func (r *SubscriptionRepo) Create(ctx context.Context, s *entity.Subscription) error {
	query := `
		INSERT INTO subscriptions (id, user_id, plan_name, duration_days, price, discount, total, coupon_code,
			payment_method, status, start_date, end_date, approved_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.UserID, s.PlanName, s.DurationDays, s.Price, s.Discount, s.Total, s.CouponCode,
		s.PaymentMethod, s.Status, nullTime(s.StartDate), nullTime(s.EndDate), s.ApprovedBy,
		s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("insert subscription: %w", err)
	}
	return nil
}

// GetByID devuelve (nil, nil) si no existe.
func (r *SubscriptionRepo) GetByID(ctx context.Context, id string) (*entity.Subscription, error) {
	s, err := scanSubscription(r.q.QueryRow(ctx, `SELECT `+subscriptionColumns+` FROM subscriptions WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get subscription: %w", err)
	}
	return s, nil
}

// Update guarda estado, fechas y aprobación.
func (r *SubscriptionRepo) Update(ctx context.Context, s *entity.Subscription) error {
	query := `
		UPDATE subscriptions SET status = $2, start_date = $3, end_date = $4, approved_by = $5, updated_at = $6
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		s.ID, s.Status, nullTime(s.StartDate), nullTime(s.EndDate), s.ApprovedBy, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update subscription: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByUser historial del socio, más reciente primero.
func (r *SubscriptionRepo) ListByUser(ctx context.Context, userID int64) ([]*entity.Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE user_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, userID)
}

// ListByStatus filtra por estado; status vacío lista todas.
func (r *SubscriptionRepo) ListByStatus(ctx context.Context, status string, limit, offset int) ([]*entity.Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions
		WHERE ($1 = '' OR status = $1) ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.list(ctx, query, status, limit, offset)
}

// HasCurrent true si existe una suscripción activa que cubre now.
func (r *SubscriptionRepo) HasCurrent(ctx context.Context, userID int64, now time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM subscriptions
			WHERE user_id = $1 AND status = 'active' AND start_date <= $2 AND end_date > $2
		)`
	var exists bool
	if err := r.q.QueryRow(ctx, query, userID, now).Scan(&exists); err != nil {
		return false, fmt.Errorf("has current subscription: %w", err)
	}
	return exists, nil
}

// ListExpiredActive activas cuyo end_date ya pasó, las más antiguas primero.
func (r *SubscriptionRepo) ListExpiredActive(ctx context.Context, now time.Time) ([]*entity.Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions
		WHERE status = 'active' AND end_date <= $1 ORDER BY end_date`
	return r.list(ctx, query, now)
}

func (r *SubscriptionRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Subscription, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.Subscription, 0)
	for rows.Next() {
		s, err := scanSubscription(rows)
		if err != nil {
			return nil, fmt.Errorf("scan subscription: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func scanSubscription(row pgx.Row) (*entity.Subscription, error) {
	var (
		s          entity.Subscription
		start, end *time.Time
	)
	err := row.Scan(
		&s.ID, &s.UserID, &s.PlanName, &s.DurationDays, &s.Price, &s.Discount, &s.Total, &s.CouponCode,
		&s.PaymentMethod, &s.Status, &start, &end, &s.ApprovedBy, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	s.StartDate = fromNullTime(start)
	s.EndDate = fromNullTime(end)
	return &s, nil
}
