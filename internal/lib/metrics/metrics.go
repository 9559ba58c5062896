// Package metrics описывает метрики Prometheus сервиса подписок.
package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/magabrotheeeer/home-inventory/internal/models"
)

const namespace = "entitlements"

// Metrics набор метрик. Методы безопасно вызывать на nil.
type Metrics struct {
	gatherer prometheus.Gatherer

	Operations          *prometheus.CounterVec
	HTTPRequests        *prometheus.CounterVec
	HTTPDuration        *prometheus.HistogramVec
	TrialsExpired       prometheus.Counter
	SubscriptionsPurged prometheus.Counter
}

// New регистрирует метрики в reg.
func New(reg *prometheus.Registry) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		gatherer: reg,
		Operations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Entitlement operations by result",
		}, []string{"op", "result"}),
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		HTTPDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		TrialsExpired: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "trials_expired_total",
			Help:      "Users flagged for upgrade after trial expiry",
		}),
		SubscriptionsPurged: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "subscriptions_purged_total",
			Help:      "Canceled subscriptions removed by retention purge",
		}),
	}
}

// ObserveOperation учитывает результат операции сервиса.
func (m *Metrics) ObserveOperation(op string, err error) {
	if m == nil {
		return
	}
	m.Operations.WithLabelValues(op, Result(err)).Inc()
}

// ObserveHTTP учитывает обработанный HTTP запрос.
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// AddTrialsExpired увеличивает счетчик истекших триалов.
func (m *Metrics) AddTrialsExpired(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.TrialsExpired.Add(float64(n))
}

// AddSubscriptionsPurged увеличивает счетчик удаленных подписок.
func (m *Metrics) AddSubscriptionsPurged(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.SubscriptionsPurged.Add(float64(n))
}

// Handler отдает метрики в формате Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// Result переводит ошибку в метку result.
func Result(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, models.ErrStorage):
		return "storage_error"
	case models.IsDomainError(err):
		return "rejected"
	default:
		return "error"
	}
}
