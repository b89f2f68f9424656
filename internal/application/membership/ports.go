// Package membership gestiona el ciclo de vida de las suscripciones y dispara el
// coordinador biométrico cuando una compra o un vencimiento cambia el acceso.
package membership

import (
	"context"

	"github.com/jhoicas/gymflow-api/internal/application/dto"
	"github.com/jhoicas/gymflow-api/internal/domain/entity"
	"github.com/jhoicas/gymflow-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con repos atados a ella.
type TxRunner interface {
	RunMembership(ctx context.Context, fn func(
		subs repository.SubscriptionRepository,
		coupons repository.CouponRepository,
		users repository.UserRepository,
	) error) error
}

// AccessCoordinator parte del coordinador biométrico que usan las suscripciones.
type AccessCoordinator interface {
	HandleSubscriptionPurchase(ctx context.Context, userID int64, name string) dto.BiometricResult
	Block(ctx context.Context, userID int64, name string) dto.BiometricResult
	SyncBlockStatus(ctx context.Context, userID int64, name string) dto.BiometricResult
}

// ReceiptGenerator genera el PDF del recibo de una suscripción.
type ReceiptGenerator interface {
	GenerateReceipt(ctx context.Context, sub *entity.Subscription, user *entity.User, gymName string) ([]byte, error)
}

// SweepObserver recibe los totales de cada barrido (métricas). Puede ser nil.
type SweepObserver interface {
	ObserveSweep(expired, synced, failures int)
}
