package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/gymflow-api/internal/application/membership"
	"github.com/jhoicas/gymflow-api/internal/domain/repository"
)

var _ membership.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunMembership inicia una transacción, ejecuta fn con los repos de suscripciones,
// cupones y usuarios atados a la tx y hace Commit o Rollback.
func (r *TxRunner) RunMembership(ctx context.Context, fn func(
	subs repository.SubscriptionRepository,
	coupons repository.CouponRepository,
	users repository.UserRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewSubscriptionRepository(tx), NewCouponRepository(tx), NewUserRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
