package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Scan metrics
	ScansTotal     *prometheus.CounterVec
	ScanDuration   prometheus.Histogram
	EntriesPerScan prometheus.Histogram

	// Operation metrics
	OperationsTotal *prometheus.CounterVec
	BatchesTotal    *prometheus.CounterVec
	BatchDuration   prometheus.Histogram

	// WebSocket metrics
	WSConnections prometheus.Gauge
	WSMessages    *prometheus.CounterVec

	// System metrics
	Uptime    prometheus.Gauge
	startTime time.Time
}

// NewMetrics creates a new metrics collector
func NewMetrics() *Metrics {
	m := &Metrics{
		startTime: time.Now(),

		RequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dired_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "dired_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),

		ScansTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dired_scans_total",
				Help: "Total number of directory scans",
			},
			[]string{"status"},
		),
		ScanDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "dired_scan_duration_seconds",
				Help:    "Directory scan duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
		),
		EntriesPerScan: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "dired_scan_entries",
				Help:    "Entries collected per scan",
				Buckets: []float64{0, 10, 50, 100, 500, 1000, 5000, 10000},
			},
		),

		OperationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dired_operations_total",
				Help: "Total number of filesystem operations executed",
			},
			[]string{"kind", "status"},
		),
		BatchesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dired_batches_total",
				Help: "Total number of operation batches executed",
			},
			[]string{"status"},
		),
		BatchDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "dired_batch_duration_seconds",
				Help:    "Operation batch duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
		),

		WSConnections: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "dired_ws_connections",
				Help: "Number of active WebSocket connections",
			},
		),
		WSMessages: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dired_ws_messages_total",
				Help: "Total number of WebSocket messages",
			},
			[]string{"direction", "type"},
		),

		Uptime: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "dired_uptime_seconds",
				Help: "Backend uptime in seconds",
			},
		),
	}

	go m.updateUptime()

	return m
}

func (m *Metrics) updateUptime() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for range ticker.C {
		m.Uptime.Set(time.Since(m.startTime).Seconds())
	}
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordScan records one directory scan
func (m *Metrics) RecordScan(status string, duration time.Duration, entries int) {
	m.ScansTotal.WithLabelValues(status).Inc()
	if status == "ok" {
		m.ScanDuration.Observe(duration.Seconds())
		m.EntriesPerScan.Observe(float64(entries))
	}
}

// RecordOperation records one executed filesystem operation
func (m *Metrics) RecordOperation(kind, status string) {
	m.OperationsTotal.WithLabelValues(kind, status).Inc()
}

// RecordBatch records one executed operation batch
func (m *Metrics) RecordBatch(status string, duration time.Duration) {
	m.BatchesTotal.WithLabelValues(status).Inc()
	m.BatchDuration.Observe(duration.Seconds())
}

// IncWSConnections increments WebSocket connections
func (m *Metrics) IncWSConnections() {
	m.WSConnections.Inc()
}

// DecWSConnections decrements WebSocket connections
func (m *Metrics) DecWSConnections() {
	m.WSConnections.Dec()
}

// RecordWSMessage records a WebSocket message
func (m *Metrics) RecordWSMessage(direction, msgType string) {
	m.WSMessages.WithLabelValues(direction, msgType).Inc()
}
