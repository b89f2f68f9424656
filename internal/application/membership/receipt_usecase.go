package membership

import (
	"context"
	"fmt"

	"github.com/jhoicas/gymflow-api/internal/domain"
	"github.com/jhoicas/gymflow-api/internal/domain/entity"
	"github.com/jhoicas/gymflow-api/internal/domain/repository"
)

// ReceiptUseCase genera el recibo PDF de una suscripción pagada.
type ReceiptUseCase struct {
	subs      repository.SubscriptionRepository
	users     repository.UserRepository
	generator ReceiptGenerator
	gymName   string
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(subs repository.SubscriptionRepository, users repository.UserRepository, generator ReceiptGenerator, gymName string) *ReceiptUseCase {
	return &ReceiptUseCase{subs: subs, users: users, generator: generator, gymName: gymName}
}

// Download devuelve el PDF y su nombre de archivo.
//
// Retorna:
//   - domain.ErrNotFound      si la suscripción no existe.
//   - domain.ErrForbidden     si no es del socio y quien pide no es admin.
//   - domain.ErrInvalidInput  si la suscripción nunca se pagó (pending o rejected).
func (uc *ReceiptUseCase) Download(ctx context.Context, requesterID int64, isAdmin bool, subID string) ([]byte, string, error) {
	sub, err := uc.subs.GetByID(ctx, subID)
	if err != nil {
		return nil, "", fmt.Errorf("recibo: obtener suscripción: %w", err)
	}
	if sub == nil {
		return nil, "", domain.ErrNotFound
	}
	if !isAdmin && sub.UserID != requesterID {
		return nil, "", domain.ErrForbidden
	}
	if sub.Status == entity.SubStatusPending || sub.Status == entity.SubStatusRejected {
		return nil, "", fmt.Errorf("%w: la suscripción está en estado %s", domain.ErrInvalidInput, sub.Status)
	}

	user, err := uc.users.GetByID(ctx, sub.UserID)
	if err != nil {
		return nil, "", fmt.Errorf("recibo: obtener usuario: %w", err)
	}
	if user == nil {
		return nil, "", domain.ErrUserNotFound
	}

	pdf, err := uc.generator.GenerateReceipt(ctx, sub, user, uc.gymName)
	if err != nil {
		return nil, "", fmt.Errorf("recibo: generación fallida: %w", err)
	}
	return pdf, fmt.Sprintf("recibo_%s.pdf", shortID(sub.ID)), nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
