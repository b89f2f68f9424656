package repository

import (
	"context"
	"time"

	"github.com/jhoicas/gymflow-api/internal/domain/entity"
)

// SubscriptionRepository define el puerto de persistencia para Subscription.
type SubscriptionRepository interface {
	Create(ctx context.Context, sub *entity.Subscription) error
	GetByID(ctx context.Context, id string) (*entity.Subscription, error)
	Update(ctx context.Context, sub *entity.Subscription) error
	ListByUser(ctx context.Context, userID int64) ([]*entity.Subscription, error)
	ListByStatus(ctx context.Context, status string, limit, offset int) ([]*entity.Subscription, error)
	// HasCurrent informa si el usuario tiene una suscripción activa vigente en now.
	HasCurrent(ctx context.Context, userID int64, now time.Time) (bool, error)
	// ListExpiredActive suscripciones en estado active cuyo end_date ya pasó.
	ListExpiredActive(ctx context.Context, now time.Time) ([]*entity.Subscription, error)
}
