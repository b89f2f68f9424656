package membership

import (
	"context"
	"time"

	"github.com/jhoicas/gymflow-api/internal/application/ports"
	"github.com/jhoicas/gymflow-api/internal/domain/repository"
)

var _ ports.SubscriptionChecker = (*ActiveChecker)(nil)

// ActiveChecker responde si el socio tiene hoy una suscripción vigente.
type ActiveChecker struct {
	subs repository.SubscriptionRepository
	now  func() time.Time
}

// NewActiveChecker construye el verificador sobre el repositorio de suscripciones.
func NewActiveChecker(subs repository.SubscriptionRepository) *ActiveChecker {
	return &ActiveChecker{subs: subs, now: time.Now}
}

// HasActiveSubscription implementa ports.SubscriptionChecker.
func (c *ActiveChecker) HasActiveSubscription(ctx context.Context, userID int64) (bool, error) {
	return c.subs.HasCurrent(ctx, userID, c.now().UTC())
}
