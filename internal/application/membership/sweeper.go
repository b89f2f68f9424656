package membership

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/jpillora/backoff"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/gymflow-api/internal/application/dto"
	"github.com/jhoicas/gymflow-api/internal/domain/entity"
	"github.com/jhoicas/gymflow-api/internal/domain/repository"
)

// AccessSweeper vence suscripciones pasadas de fecha y alinea el acceso
// biométrico de los socios enrolados con su suscripción.
type AccessSweeper struct {
	subs        repository.SubscriptionRepository
	users       repository.UserRepository
	access      AccessCoordinator
	concurrency int
	observer    SweepObserver
	now         func() time.Time
	log         zerolog.Logger
}

// NewAccessSweeper construye el barrido. concurrency < 1 se trata como 1;
// dentro de cada usuario el fan-out sigue siendo secuencial.
func NewAccessSweeper(
	subs repository.SubscriptionRepository,
	users repository.UserRepository,
	access AccessCoordinator,
	concurrency int,
	observer SweepObserver,
	log zerolog.Logger,
) *AccessSweeper {
	if concurrency < 1 {
		concurrency = 1
	}
	return &AccessSweeper{
		subs:        subs,
		users:       users,
		access:      access,
		concurrency: concurrency,
		observer:    observer,
		now:         func() time.Time { return time.Now().UTC() },
		log:         log,
	}
}

// Sweep hace una pasada completa.
//
//  1. Marca como expired las activas con end_date vencido y actualiza el estado
//     del socio si ya no le queda ninguna vigente.
//  2. Para cada socio enrolado cuyo bio_metric_access no coincide con tener
//     suscripción vigente, ejecuta SyncBlockStatus.
//
// Un fallo con un socio se cuenta y no detiene el barrido.
func (s *AccessSweeper) Sweep(ctx context.Context) (dto.SweepReport, error) {
	var report dto.SweepReport
	now := s.now()

	expired, err := s.subs.ListExpiredActive(ctx, now)
	if err != nil {
		return report, fmt.Errorf("sweep: listar vencidas: %w", err)
	}
	affected := make(map[int64]struct{}, len(expired))
	for _, sub := range expired {
		sub.Status = entity.SubStatusExpired
		sub.UpdatedAt = now
		if err := s.subs.Update(ctx, sub); err != nil {
			return report, fmt.Errorf("sweep: vencer suscripción %s: %w", sub.ID, err)
		}
		report.ExpiredSubscriptions++
		affected[sub.UserID] = struct{}{}
	}
	for userID := range affected {
		current, err := s.subs.HasCurrent(ctx, userID, now)
		if err != nil {
			return report, fmt.Errorf("sweep: verificar usuario %d: %w", userID, err)
		}
		if current {
			continue
		}
		if err := s.users.UpdateSubscriptionStatus(ctx, userID, entity.SubscriptionStatusExpired); err != nil {
			return report, fmt.Errorf("sweep: estado usuario %d: %w", userID, err)
		}
	}

	enrolled, err := s.users.ListEnrolled(ctx)
	if err != nil {
		return report, fmt.Errorf("sweep: listar enrolados: %w", err)
	}
	report.UsersChecked = len(enrolled)

	var synced, failures atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for _, u := range enrolled {
		g.Go(func() error {
			current, err := s.subs.HasCurrent(gctx, u.ID, now)
			if err != nil {
				s.log.Error().Err(err).Int64("user_id", u.ID).Msg("sweep: no se pudo verificar la suscripción")
				failures.Add(1)
				return nil
			}
			if current == u.BioMetricAccess {
				return nil
			}
			res := s.access.SyncBlockStatus(gctx, u.ID, u.Name)
			if !res.Success {
				s.log.Warn().Int64("user_id", u.ID).Str("action", res.Action).Msg("sweep: " + res.Message)
				failures.Add(1)
				return nil
			}
			synced.Add(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return report, err
	}

	report.UsersSynced = int(synced.Load())
	report.SyncFailures = int(failures.Load())
	if s.observer != nil {
		s.observer.ObserveSweep(report.ExpiredSubscriptions, report.UsersSynced, report.SyncFailures)
	}
	s.log.Info().
		Int("expired", report.ExpiredSubscriptions).
		Int("checked", report.UsersChecked).
		Int("synced", report.UsersSynced).
		Int("failures", report.SyncFailures).
		Msg("barrido de acceso completado")
	return report, nil
}

// Run barre hasta que ctx termine. Mientras no haya nada que hacer el intervalo
// crece hasta 8x; cualquier cambio lo devuelve al mínimo.
func (s *AccessSweeper) Run(ctx context.Context, interval time.Duration) {
	b := &backoff.Backoff{
		Min:    interval,
		Max:    interval * 8,
		Factor: 2,
		Jitter: true,
	}

	s.log.Info().Dur("interval", interval).Msg("barrido de acceso iniciado")
	for running := true; running; {
		select {
		case <-ctx.Done():
			running = false
		case <-time.After(b.Duration()):
			report, err := s.Sweep(ctx)
			if err != nil {
				s.log.Error().Err(err).Msg("barrido de acceso fallido")
				continue
			}
			if report.ExpiredSubscriptions > 0 || report.UsersSynced > 0 || report.SyncFailures > 0 {
				b.Reset()
			}
		}
	}
	s.log.Info().Msg("barrido de acceso detenido")
}
