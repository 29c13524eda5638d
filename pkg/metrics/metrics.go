package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор prometheus-метрик сервиса
type Metrics struct {
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Исходящие вызовы к Booking API (клиентская сторона)
	ClientRequestsTotal   *prometheus.CounterVec
	ClientRequestDuration *prometheus.HistogramVec

	BookingsCreatedTotal *prometheus.CounterVec
	BookingEventsFailed  prometheus.Counter
}

// New регистрирует метрики в глобальном prometheus.DefaultRegisterer
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer регистрирует метрики в переданном реестре (используется в тестах)
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),

		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		HTTPRequestsInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "http_requests_in_flight",
			Help:        "Number of HTTP requests being served",
			ConstLabels: constLabels,
		}),

		ClientRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_api_client_requests_total",
			Help:        "Total number of outgoing Booking API calls",
			ConstLabels: constLabels,
		}, []string{"operation", "outcome"}),

		ClientRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "booking_api_client_request_duration_seconds",
			Help:        "Outgoing Booking API call latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"operation"}),

		BookingsCreatedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "bookings_created_total",
			Help:        "Total number of created bookings",
			ConstLabels: constLabels,
		}, []string{"field_type"}),

		BookingEventsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "booking_events_publish_failed_total",
			Help:        "Total number of booking events that failed to publish",
			ConstLabels: constLabels,
		}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.HTTPRequestsInFlight,
		m.ClientRequestsTotal,
		m.ClientRequestDuration,
		m.BookingsCreatedTotal,
		m.BookingEventsFailed,
	)

	return m
}

// ObserveClientCall фиксирует результат исходящего вызова
func (m *Metrics) ObserveClientCall(operation, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.ClientRequestsTotal.WithLabelValues(operation, outcome).Inc()
	m.ClientRequestDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// BookingCreated увеличивает счетчик созданных бронирований
func (m *Metrics) BookingCreated(fieldType string) {
	if m == nil {
		return
	}
	m.BookingsCreatedTotal.WithLabelValues(fieldType).Inc()
}

// EventPublishFailed увеличивает счетчик неотправленных событий
func (m *Metrics) EventPublishFailed() {
	if m == nil {
		return
	}
	m.BookingEventsFailed.Inc()
}
