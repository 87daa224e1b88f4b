package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "playground_booking"

// Metrics набор prometheus-метрик сервиса
type Metrics struct {
	service string

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration    *prometheus.HistogramVec
	DBOpenConnections  *prometheus.GaugeVec
	DBInUseConnections *prometheus.GaugeVec
	DBIdleConnections  *prometheus.GaugeVec
	DBWaitCount        *prometheus.GaugeVec

	BookingsCreatedTotal    *prometheus.CounterVec
	BookingConflictsTotal   *prometheus.CounterVec
	BookingTransitionsTotal *prometheus.CounterVec
}

// New создает и регистрирует метрики в глобальном реестре prometheus
func New(serviceName string) *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer, serviceName)
}

// NewWithRegistry создает метрики и регистрирует их в указанном реестре
func NewWithRegistry(reg prometheus.Registerer, serviceName string) *Metrics {
	m := &Metrics{
		service: serviceName,

		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"service", "method", "route", "status"}),

		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"service", "method", "route"}),

		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "db_query_duration_seconds",
			Help:      "Database query duration in seconds",
			Buckets:   []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"service", "operation"}),

		DBOpenConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "db_open_connections",
			Help:      "Number of established database connections",
		}, []string{"service"}),

		DBInUseConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "db_in_use_connections",
			Help:      "Number of database connections currently in use",
		}, []string{"service"}),

		DBIdleConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "db_idle_connections",
			Help:      "Number of idle database connections",
		}, []string{"service"}),

		DBWaitCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "db_wait_count",
			Help:      "Total number of connections waited for",
		}, []string{"service"}),

		BookingsCreatedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_created_total",
			Help:      "Bookings created, by initial status",
		}, []string{"service", "status"}),

		BookingConflictsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_conflicts_total",
			Help:      "Requests rejected because the slot was already occupied",
		}, []string{"service", "operation"}),

		BookingTransitionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_transitions_total",
			Help:      "Booking status transitions, by target status",
		}, []string{"service", "to"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBOpenConnections,
		m.DBInUseConnections,
		m.DBIdleConnections,
		m.DBWaitCount,
		m.BookingsCreatedTotal,
		m.BookingConflictsTotal,
		m.BookingTransitionsTotal,
	)

	return m
}

// BookingCreated увеличивает счетчик созданных бронирований
func (m *Metrics) BookingCreated(status string) {
	if m == nil {
		return
	}
	m.BookingsCreatedTotal.WithLabelValues(m.service, status).Inc()
}

// BookingConflict увеличивает счетчик отказов из-за занятого слота
func (m *Metrics) BookingConflict(operation string) {
	if m == nil {
		return
	}
	m.BookingConflictsTotal.WithLabelValues(m.service, operation).Inc()
}

// BookingTransition увеличивает счетчик переходов статуса
func (m *Metrics) BookingTransition(to string) {
	if m == nil {
		return
	}
	m.BookingTransitionsTotal.WithLabelValues(m.service, to).Inc()
}
