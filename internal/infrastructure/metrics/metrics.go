// Package metrics expone contadores Prometheus de los comandos biométricos y del
// barrido de vencimientos.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	metricsNamespace = "gymflow"
	actionLabel      = "action"
	successLabel     = "success"
)

// Service registro propio (no el global) con las métricas de la API.
type Service struct {
	registry        *prometheus.Registry
	commandCount    *prometheus.CounterVec
	commandDuration *prometheus.HistogramVec
	sweepExpired    prometheus.Counter
	sweepSynced     prometheus.Counter
	sweepFailures   prometheus.Counter
}

// NewService registra los colectores de Go y de proceso más las métricas propias.
func NewService() *Service {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	commandCount := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "biometric",
			Name:      "commands_total",
			Help:      "Total de comandos enviados al gateway biométrico",
		},
		[]string{actionLabel, successLabel},
	)
	commandDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "biometric",
			Name:      "command_duration_seconds",
			Help:      "Latencia de cada comando al gateway biométrico",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{actionLabel},
	)
	sweepExpired := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: "sweeper",
		Name:      "expired_subscriptions_total",
		Help:      "Suscripciones marcadas como vencidas por el barrido",
	})
	sweepSynced := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: "sweeper",
		Name:      "users_synced_total",
		Help:      "Usuarios cuyo estado biométrico se sincronizó",
	})
	sweepFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: "sweeper",
		Name:      "sync_failures_total",
		Help:      "Sincronizaciones biométricas fallidas durante el barrido",
	})
	reg.MustRegister(commandCount, commandDuration, sweepExpired, sweepSynced, sweepFailures)

	return &Service{
		registry:        reg,
		commandCount:    commandCount,
		commandDuration: commandDuration,
		sweepExpired:    sweepExpired,
		sweepSynced:     sweepSynced,
		sweepFailures:   sweepFailures,
	}
}

// ObserveCommand implementa el observador del cliente del gateway.
func (s *Service) ObserveCommand(action string, success bool, elapsed time.Duration) {
	s.commandCount.With(prometheus.Labels{
		actionLabel:  action,
		successLabel: strconv.FormatBool(success),
	}).Inc()
	s.commandDuration.WithLabelValues(action).Observe(elapsed.Seconds())
}

// ObserveSweep acumula el resultado de una pasada del barrido.
func (s *Service) ObserveSweep(expired, synced, failures int) {
	s.sweepExpired.Add(float64(expired))
	s.sweepSynced.Add(float64(synced))
	s.sweepFailures.Add(float64(failures))
}

// Handler handler HTTP de /metrics sobre el registro propio.
func (s *Service) Handler() http.Handler {
	return promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{Registry: s.registry})
}

// Registry expuesto para tests.
func (s *Service) Registry() *prometheus.Registry {
	return s.registry
}
