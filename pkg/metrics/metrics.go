// Package metrics agrupa las métricas Prometheus de la aplicación.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contiene los colectores registrados. Los métodos aceptan receptor nil
// para que los casos de uso funcionen sin métricas en tests.
type Metrics struct {
	HTTPRequests        *prometheus.CounterVec
	HTTPDuration        *prometheus.HistogramVec
	LoginAttempts       *prometheus.CounterVec
	BillsGenerated      *prometheus.CounterVec
	AccountReviews      *prometheus.CounterVec
	NotificationsFailed *prometheus.CounterVec
}

// New crea y registra las métricas en reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "backoffice_http_requests_total",
			Help: "Peticiones HTTP atendidas por método, ruta y status",
		}, []string{"method", "route", "status"}),
		HTTPDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "backoffice_http_request_duration_seconds",
			Help:    "Duración de las peticiones HTTP",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		LoginAttempts: f.NewCounterVec(prometheus.CounterOpts{
			Name: "backoffice_login_attempts_total",
			Help: "Intentos de login por resultado",
		}, []string{"result"}),
		BillsGenerated: f.NewCounterVec(prometheus.CounterOpts{
			Name: "backoffice_bills_generated_total",
			Help: "Facturas generadas por tipo de servicio",
		}, []string{"utility_type"}),
		AccountReviews: f.NewCounterVec(prometheus.CounterOpts{
			Name: "backoffice_account_request_reviews_total",
			Help: "Solicitudes de cuenta revisadas por decisión",
		}, []string{"decision"}),
		NotificationsFailed: f.NewCounterVec(prometheus.CounterOpts{
			Name: "backoffice_notifications_failed_total",
			Help: "Notificaciones que no pudieron publicarse",
		}, []string{"kind"}),
	}
}

// ObserveHTTP registra una petición atendida.
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// LoginAttempt cuenta un intento de login ("success", "invalid", "disabled").
func (m *Metrics) LoginAttempt(result string) {
	if m == nil {
		return
	}
	m.LoginAttempts.WithLabelValues(result).Inc()
}

// BillGenerated cuenta una factura generada.
func (m *Metrics) BillGenerated(utilityType string) {
	if m == nil {
		return
	}
	m.BillsGenerated.WithLabelValues(utilityType).Inc()
}

// AccountReviewed cuenta una revisión de solicitud.
func (m *Metrics) AccountReviewed(decision string) {
	if m == nil {
		return
	}
	m.AccountReviews.WithLabelValues(decision).Inc()
}

// NotificationFailed cuenta una publicación fallida.
func (m *Metrics) NotificationFailed(kind string) {
	if m == nil {
		return
	}
	m.NotificationsFailed.WithLabelValues(kind).Inc()
}
