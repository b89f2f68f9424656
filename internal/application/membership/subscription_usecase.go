package membership

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/gymflow-api/internal/application/dto"
	"github.com/jhoicas/gymflow-api/internal/domain"
	"github.com/jhoicas/gymflow-api/internal/domain/entity"
	"github.com/jhoicas/gymflow-api/internal/domain/repository"
)

// SubscriptionUseCase casos de uso de suscripciones.
//
// La escritura de la suscripción se confirma antes de llamar al coordinador
// biométrico; su resultado es informativo y nunca revierte la suscripción.
type SubscriptionUseCase struct {
	tx     TxRunner
	subs   repository.SubscriptionRepository
	users  repository.UserRepository
	access AccessCoordinator
	now    func() time.Time
	log    zerolog.Logger
}

// NewSubscriptionUseCase construye el caso de uso.
func NewSubscriptionUseCase(
	tx TxRunner,
	subs repository.SubscriptionRepository,
	users repository.UserRepository,
	access AccessCoordinator,
	log zerolog.Logger,
) *SubscriptionUseCase {
	return &SubscriptionUseCase{
		tx:     tx,
		subs:   subs,
		users:  users,
		access: access,
		now:    func() time.Time { return time.Now().UTC() },
		log:    log,
	}
}

// CreateOnline registra una compra con pago online ya confirmado: la suscripción
// nace activa y se dispara el manejador de compra.
func (uc *SubscriptionUseCase) CreateOnline(ctx context.Context, userID int64, in dto.CreateSubscriptionRequest) (*dto.SubscriptionResponse, error) {
	return uc.createActive(ctx, userID, nil, entity.PaymentOnline, in)
}

// CreateCash registra un pago en efectivo ya cobrado por un administrador.
func (uc *SubscriptionUseCase) CreateCash(ctx context.Context, adminID int64, in dto.CreateSubscriptionRequest) (*dto.SubscriptionResponse, error) {
	if in.UserID <= 0 {
		return nil, fmt.Errorf("%w: user_id requerido", domain.ErrInvalidInput)
	}
	return uc.createActive(ctx, in.UserID, &adminID, entity.PaymentCash, in)
}

// RequestCash deja una solicitud de pago en efectivo pendiente de aprobación.
// El cupón se valida ahora pero su uso se cuenta al aprobar.
func (uc *SubscriptionUseCase) RequestCash(ctx context.Context, userID int64, in dto.CreateSubscriptionRequest) (*dto.SubscriptionResponse, error) {
	if err := validateCreate(in); err != nil {
		return nil, err
	}
	user, err := uc.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	sub := newSubscription(user.ID, entity.PaymentCash, in, now)

	err = uc.tx.RunMembership(ctx, func(subs repository.SubscriptionRepository, coupons repository.CouponRepository, _ repository.UserRepository) error {
		if _, err := applyCoupon(ctx, coupons, sub, now); err != nil {
			return err
		}
		return subs.Create(ctx, sub)
	})
	if err != nil {
		return nil, err
	}
	return toSubscriptionResponse(sub, nil), nil
}

// ApproveCash pasa una solicitud en efectivo de pending a active y dispara el
// manejador de compra.
func (uc *SubscriptionUseCase) ApproveCash(ctx context.Context, adminID int64, subID string) (*dto.SubscriptionResponse, error) {
	var (
		sub  *entity.Subscription
		user *entity.User
	)
	now := uc.now()

	err := uc.tx.RunMembership(ctx, func(subs repository.SubscriptionRepository, coupons repository.CouponRepository, users repository.UserRepository) error {
		var err error
		sub, err = loadPendingCash(ctx, subs, subID)
		if err != nil {
			return err
		}
		user, err = users.GetByID(ctx, sub.UserID)
		if err != nil {
			return fmt.Errorf("aprobar efectivo: obtener usuario: %w", err)
		}
		if user == nil {
			return domain.ErrUserNotFound
		}
		if err := countCoupon(ctx, coupons, sub); err != nil {
			return err
		}
		sub.Activate(now)
		sub.ApprovedBy = &adminID
		if err := subs.Update(ctx, sub); err != nil {
			return err
		}
		return users.UpdateSubscriptionStatus(ctx, user.ID, entity.SubscriptionStatusActive)
	})
	if err != nil {
		return nil, err
	}

	bio := uc.afterPurchase(ctx, user)
	return toSubscriptionResponse(sub, &bio), nil
}

// RejectCash rechaza una solicitud en efectivo pendiente. No toca el acceso.
func (uc *SubscriptionUseCase) RejectCash(ctx context.Context, adminID int64, subID string) (*dto.SubscriptionResponse, error) {
	sub, err := loadPendingCash(ctx, uc.subs, subID)
	if err != nil {
		return nil, err
	}
	sub.Status = entity.SubStatusRejected
	sub.ApprovedBy = &adminID
	sub.UpdatedAt = uc.now()
	if err := uc.subs.Update(ctx, sub); err != nil {
		return nil, err
	}
	return toSubscriptionResponse(sub, nil), nil
}

// ChangeStatus cambio de estado desde el back office.
//
// Al activar se dispara el manejador de compra. Al salir de active, si el socio
// ya no tiene otra suscripción vigente se actualiza su estado y se le bloquea en
// los lectores cuando tenía acceso.
func (uc *SubscriptionUseCase) ChangeStatus(ctx context.Context, subID, status string) (*dto.SubscriptionResponse, error) {
	if !entity.IsValidSubscriptionStatus(status) {
		return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, status)
	}

	var (
		sub       *entity.Subscription
		user      *entity.User
		prev      string
		hasActive bool
	)
	now := uc.now()

	err := uc.tx.RunMembership(ctx, func(subs repository.SubscriptionRepository, coupons repository.CouponRepository, users repository.UserRepository) error {
		var err error
		sub, err = subs.GetByID(ctx, subID)
		if err != nil {
			return fmt.Errorf("cambiar estado: obtener suscripción: %w", err)
		}
		if sub == nil {
			return domain.ErrNotFound
		}
		prev = sub.Status
		if prev == status {
			return nil
		}
		user, err = users.GetByID(ctx, sub.UserID)
		if err != nil {
			return fmt.Errorf("cambiar estado: obtener usuario: %w", err)
		}
		if user == nil {
			return domain.ErrUserNotFound
		}

		if status == entity.SubStatusActive {
			// Primera activación: el cupón se cuenta aquí igual que al aprobar.
			if sub.StartDate.IsZero() {
				if err := countCoupon(ctx, coupons, sub); err != nil {
					return err
				}
			}
			if sub.EndDate.IsZero() || !now.Before(sub.EndDate) {
				sub.Activate(now)
			} else {
				sub.Status = status
				sub.UpdatedAt = now
			}
		} else {
			sub.Status = status
			sub.UpdatedAt = now
		}
		if err := subs.Update(ctx, sub); err != nil {
			return err
		}

		if status == entity.SubStatusActive {
			return users.UpdateSubscriptionStatus(ctx, user.ID, entity.SubscriptionStatusActive)
		}
		if prev != entity.SubStatusActive {
			return nil
		}
		hasActive, err = subs.HasCurrent(ctx, user.ID, now)
		if err != nil {
			return err
		}
		if hasActive {
			return nil
		}
		return users.UpdateSubscriptionStatus(ctx, user.ID, userStatusAfter(status))
	})
	if err != nil {
		return nil, err
	}
	if prev == status {
		return toSubscriptionResponse(sub, nil), nil
	}

	switch {
	case status == entity.SubStatusActive:
		bio := uc.afterPurchase(ctx, user)
		return toSubscriptionResponse(sub, &bio), nil
	case prev == entity.SubStatusActive && !hasActive && user.IsBioMetricActive && user.BioMetricAccess:
		bio := uc.access.Block(ctx, user.ID, user.Name)
		if !bio.Success {
			uc.log.Warn().Int64("user_id", user.ID).Str("subscription_id", sub.ID).Msg("no se pudo bloquear en los lectores: " + bio.Message)
		}
		return toSubscriptionResponse(sub, &bio), nil
	}
	return toSubscriptionResponse(sub, nil), nil
}

// Get devuelve una suscripción; un socio solo ve las suyas.
func (uc *SubscriptionUseCase) Get(ctx context.Context, requesterID int64, isAdmin bool, subID string) (*dto.SubscriptionResponse, error) {
	sub, err := uc.subs.GetByID(ctx, subID)
	if err != nil {
		return nil, fmt.Errorf("obtener suscripción: %w", err)
	}
	if sub == nil {
		return nil, domain.ErrNotFound
	}
	if !isAdmin && sub.UserID != requesterID {
		return nil, domain.ErrForbidden
	}
	return toSubscriptionResponse(sub, nil), nil
}

// ListMine historial del socio.
func (uc *SubscriptionUseCase) ListMine(ctx context.Context, userID int64) (*dto.SubscriptionListResponse, error) {
	list, err := uc.subs.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listar suscripciones: %w", err)
	}
	return toListResponse(list, dto.PageResponse{Limit: len(list)}), nil
}

// ListByStatus listado del back office; status vacío lista todas.
func (uc *SubscriptionUseCase) ListByStatus(ctx context.Context, status string, page dto.PageRequest) (*dto.SubscriptionListResponse, error) {
	if status != "" && !entity.IsValidSubscriptionStatus(status) {
		return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, status)
	}
	page.Normalize()
	list, err := uc.subs.ListByStatus(ctx, status, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("listar suscripciones: %w", err)
	}
	return toListResponse(list, dto.PageResponse{Limit: page.Limit, Offset: page.Offset}), nil
}

// ── Internos ─────────────────────────────────────────────────────────────────

func (uc *SubscriptionUseCase) createActive(ctx context.Context, userID int64, approvedBy *int64, method string, in dto.CreateSubscriptionRequest) (*dto.SubscriptionResponse, error) {
	if err := validateCreate(in); err != nil {
		return nil, err
	}
	user, err := uc.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	sub := newSubscription(user.ID, method, in, now)
	sub.Activate(now)
	sub.ApprovedBy = approvedBy

	err = uc.tx.RunMembership(ctx, func(subs repository.SubscriptionRepository, coupons repository.CouponRepository, users repository.UserRepository) error {
		coupon, err := applyCoupon(ctx, coupons, sub, now)
		if err != nil {
			return err
		}
		if err := subs.Create(ctx, sub); err != nil {
			return err
		}
		if coupon != nil {
			if err := coupons.IncrementUsage(ctx, coupon.ID); err != nil {
				return err
			}
		}
		return users.UpdateSubscriptionStatus(ctx, user.ID, entity.SubscriptionStatusActive)
	})
	if err != nil {
		return nil, err
	}

	bio := uc.afterPurchase(ctx, user)
	return toSubscriptionResponse(sub, &bio), nil
}

// afterPurchase corre con la suscripción ya confirmada.
func (uc *SubscriptionUseCase) afterPurchase(ctx context.Context, user *entity.User) dto.BiometricResult {
	bio := uc.access.HandleSubscriptionPurchase(ctx, user.ID, user.Name)
	if !bio.Success {
		uc.log.Warn().Int64("user_id", user.ID).Str("action", bio.Action).Msg("acceso biométrico no aplicado: " + bio.Message)
	}
	return bio
}

func (uc *SubscriptionUseCase) loadUser(ctx context.Context, userID int64) (*entity.User, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("obtener usuario: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func validateCreate(in dto.CreateSubscriptionRequest) error {
	if strings.TrimSpace(in.PlanName) == "" {
		return fmt.Errorf("%w: plan_name requerido", domain.ErrInvalidInput)
	}
	if in.DurationDays <= 0 {
		return fmt.Errorf("%w: duration_days debe ser mayor a 0", domain.ErrInvalidInput)
	}
	if in.Price.IsNegative() {
		return fmt.Errorf("%w: price no puede ser negativo", domain.ErrInvalidInput)
	}
	return nil
}

func newSubscription(userID int64, method string, in dto.CreateSubscriptionRequest, now time.Time) *entity.Subscription {
	price := in.Price.Round(2)
	return &entity.Subscription{
		ID:            uuid.New().String(),
		UserID:        userID,
		PlanName:      strings.TrimSpace(in.PlanName),
		DurationDays:  in.DurationDays,
		Price:         price,
		Discount:      decimal.Zero,
		Total:         price,
		CouponCode:    normalizeCode(in.CouponCode),
		PaymentMethod: method,
		Status:        entity.SubStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// applyCoupon valida el cupón de sub y calcula descuento y total. Sin código no hace nada.
func applyCoupon(ctx context.Context, coupons repository.CouponRepository, sub *entity.Subscription, now time.Time) (*entity.Coupon, error) {
	if sub.CouponCode == "" {
		return nil, nil
	}
	c, err := coupons.GetByCode(ctx, sub.CouponCode)
	if err != nil {
		return nil, fmt.Errorf("obtener cupón: %w", err)
	}
	if c == nil || !c.Applicable(now) {
		return nil, domain.ErrCouponInvalid
	}
	sub.Discount = c.DiscountFor(sub.Price)
	sub.Total = sub.Price.Sub(sub.Discount)
	return c, nil
}

// countCoupon suma el uso del cupón de una suscripción que se activa por primera
// vez. IncrementUsage rechaza con ErrCouponInvalid un cupón agotado o vencido.
func countCoupon(ctx context.Context, coupons repository.CouponRepository, sub *entity.Subscription) error {
	if sub.CouponCode == "" {
		return nil
	}
	c, err := coupons.GetByCode(ctx, sub.CouponCode)
	if err != nil {
		return fmt.Errorf("obtener cupón: %w", err)
	}
	if c == nil {
		return domain.ErrCouponInvalid
	}
	return coupons.IncrementUsage(ctx, c.ID)
}

func loadPendingCash(ctx context.Context, subs repository.SubscriptionRepository, subID string) (*entity.Subscription, error) {
	sub, err := subs.GetByID(ctx, subID)
	if err != nil {
		return nil, fmt.Errorf("obtener suscripción: %w", err)
	}
	if sub == nil {
		return nil, domain.ErrNotFound
	}
	if sub.PaymentMethod != entity.PaymentCash || sub.Status != entity.SubStatusPending {
		return nil, fmt.Errorf("%w: la suscripción no es una solicitud en efectivo pendiente", domain.ErrConflict)
	}
	return sub, nil
}

func userStatusAfter(subStatus string) string {
	if subStatus == entity.SubStatusExpired {
		return entity.SubscriptionStatusExpired
	}
	return entity.SubscriptionStatusInactive
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func toSubscriptionResponse(s *entity.Subscription, bio *dto.BiometricResult) *dto.SubscriptionResponse {
	return &dto.SubscriptionResponse{
		ID:            s.ID,
		UserID:        s.UserID,
		PlanName:      s.PlanName,
		DurationDays:  s.DurationDays,
		Price:         s.Price,
		Discount:      s.Discount,
		Total:         s.Total,
		CouponCode:    s.CouponCode,
		PaymentMethod: s.PaymentMethod,
		Status:        s.Status,
		StartDate:     optionalTime(s.StartDate),
		EndDate:       optionalTime(s.EndDate),
		ApprovedBy:    s.ApprovedBy,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
		Biometric:     bio,
	}
}

func toListResponse(list []*entity.Subscription, page dto.PageResponse) *dto.SubscriptionListResponse {
	items := make([]dto.SubscriptionResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSubscriptionResponse(s, nil))
	}
	return &dto.SubscriptionListResponse{Items: items, Page: page}
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
