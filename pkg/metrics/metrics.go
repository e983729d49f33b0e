package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор Prometheus метрик сервиса
type Metrics struct {
	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	HTTPRateLimited     *prometheus.CounterVec

	// База данных
	DBQueryDuration    *prometheus.HistogramVec
	DBQueryErrors      *prometheus.CounterVec
	DBOpenConnections  *prometheus.GaugeVec
	DBInUseConnections *prometheus.GaugeVec
	DBIdleConnections  *prometheus.GaugeVec
	DBWaitCount        *prometheus.GaugeVec

	// Движок доступности
	SkippedRecords     *prometheus.CounterVec
	AdmissionDecisions *prometheus.CounterVec
	SnapshotCache      *prometheus.CounterVec
	ReservationEvents  *prometheus.CounterVec
}

// New создает и регистрирует метрики в глобальном registry
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry создает метрики и регистрирует их в указанном registry
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
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
			Buckets:     prometheus.DefBuckets,
			ConstLabels: constLabels,
		}, []string{"method", "route"}),
		HTTPRateLimited: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_rate_limited_total",
			Help:        "Requests rejected by the rate limiter",
			ConstLabels: constLabels,
		}, []string{"route"}),

		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			ConstLabels: constLabels,
		}, []string{"operation"}),
		DBQueryErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_query_errors_total",
			Help:        "Database query errors",
			ConstLabels: constLabels,
		}, []string{"operation"}),
		DBOpenConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Open connections in the pool",
			ConstLabels: constLabels,
		}, []string{"db"}),
		DBInUseConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Connections currently in use",
			ConstLabels: constLabels,
		}, []string{"db"}),
		DBIdleConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Idle connections in the pool",
			ConstLabels: constLabels,
		}, []string{"db"}),
		DBWaitCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: constLabels,
		}, []string{"db"}),

		SkippedRecords: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "availability_skipped_records_total",
			Help:        "Malformed reservation records skipped during normalization",
			ConstLabels: constLabels,
		}, []string{"venue"}),
		AdmissionDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "availability_admission_decisions_total",
			Help:        "Admission checks by outcome",
			ConstLabels: constLabels,
		}, []string{"outcome"}),
		SnapshotCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "availability_snapshot_cache_total",
			Help:        "Snapshot cache lookups by result",
			ConstLabels: constLabels,
		}, []string{"result"}),
		ReservationEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "reservation_events_total",
			Help:        "Reservation change events by direction",
			ConstLabels: constLabels,
		}, []string{"direction"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.HTTPRateLimited,
		m.DBQueryDuration,
		m.DBQueryErrors,
		m.DBOpenConnections,
		m.DBInUseConnections,
		m.DBIdleConnections,
		m.DBWaitCount,
		m.SkippedRecords,
		m.AdmissionDecisions,
		m.SnapshotCache,
		m.ReservationEvents,
	)

	return m
}

// RecordSkipped увеличивает счетчик пропущенных записей (nil-safe)
func (m *Metrics) RecordSkipped(venueID string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.SkippedRecords.WithLabelValues(venueID).Add(float64(n))
}

// RecordAdmission учитывает результат проверки доступности (nil-safe)
func (m *Metrics) RecordAdmission(available bool) {
	if m == nil {
		return
	}
	outcome := "rejected"
	if available {
		outcome = "admitted"
	}
	m.AdmissionDecisions.WithLabelValues(outcome).Inc()
}

// RecordCache учитывает попадание/промах кеша снапшотов (nil-safe)
func (m *Metrics) RecordCache(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.SnapshotCache.WithLabelValues(result).Inc()
}

// RecordEvent учитывает опубликованное/полученное событие (nil-safe)
func (m *Metrics) RecordEvent(direction string) {
	if m == nil {
		return
	}
	m.ReservationEvents.WithLabelValues(direction).Inc()
}
