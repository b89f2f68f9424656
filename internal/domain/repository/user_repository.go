package repository

import (
	"context"

	"github.com/jhoicas/gymflow-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// GetByID/GetByEmail devuelven (nil, nil) si no existe.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context, limit, offset int) ([]*entity.User, error)
	// ListEnrolled usuarios con is_bio_metric_active = true.
	ListEnrolled(ctx context.Context) ([]*entity.User, error)
	UpdateSubscriptionStatus(ctx context.Context, id int64, status string) error
	// UpdateBiometricAccess reemplaza los tres campos del AccessRecord (sin token de concurrencia).
	UpdateBiometricAccess(ctx context.Context, id int64, rec entity.AccessRecord) error
}
