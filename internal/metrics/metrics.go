package metrics

import (
	"github.com/newthinker/cryptofolio/internal/portfolio"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Registry holds all Prometheus metrics.
type Registry struct {
	*prometheus.Registry

	// HTTP metrics
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight prometheus.Gauge

	// Portfolio metrics
	holdings       prometheus.Gauge
	totalValue     prometheus.Gauge
	totalChange    prometheus.Gauge
	changePercent  prometheus.Gauge
	mutationsTotal *prometheus.CounterVec
	rejectedTotal  *prometheus.CounterVec
}

// NewRegistry creates a new metrics registry with all metrics registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	// Register Go runtime metrics
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := &Registry{
		Registry: reg,

		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),

		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		httpRequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently in flight",
			},
		),
	}

	reg.MustRegister(r.httpRequestsTotal)
	reg.MustRegister(r.httpRequestDuration)
	reg.MustRegister(r.httpRequestsInFlight)

	r.holdings = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "cryptofolio_holdings",
			Help: "Number of assets held in the portfolio",
		},
	)
	r.totalValue = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "cryptofolio_total_value",
			Help: "Total portfolio value in currency",
		},
	)
	r.totalChange = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "cryptofolio_change_24h",
			Help: "Portfolio 24h change in currency",
		},
	)
	r.changePercent = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "cryptofolio_change_24h_percent",
			Help: "Portfolio 24h change in percent",
		},
	)
	r.mutationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cryptofolio_mutations_total",
			Help: "Total number of applied portfolio changes",
		},
		[]string{"kind"},
	)
	r.rejectedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cryptofolio_add_rejected_total",
			Help: "Total number of add-asset submissions ignored for invalid input",
		},
		[]string{"code"},
	)

	reg.MustRegister(r.holdings)
	reg.MustRegister(r.totalValue)
	reg.MustRegister(r.totalChange)
	reg.MustRegister(r.changePercent)
	reg.MustRegister(r.mutationsTotal)
	reg.MustRegister(r.rejectedTotal)

	return r
}

// RecordRequest records metrics for an HTTP request.
func (r *Registry) RecordRequest(method, path string, status int, duration float64) {
	statusStr := statusToString(status)
	r.httpRequestsTotal.WithLabelValues(method, path, statusStr).Inc()
	r.httpRequestDuration.WithLabelValues(method, path).Observe(duration)
}

// InFlightInc increments in-flight requests.
func (r *Registry) InFlightInc() {
	r.httpRequestsInFlight.Inc()
}

// InFlightDec decrements in-flight requests.
func (r *Registry) InFlightDec() {
	r.httpRequestsInFlight.Dec()
}

// RecordSnapshot sets the portfolio gauges from snap.
func (r *Registry) RecordSnapshot(snap portfolio.Snapshot) {
	r.holdings.Set(float64(snap.Totals.Count))
	r.totalValue.Set(snap.Totals.Value.InexactFloat64())
	r.totalChange.Set(snap.Totals.ChangeCurrency.InexactFloat64())
	r.changePercent.Set(snap.Totals.ChangePercent.InexactFloat64())
}

// RecordRejected records an ignored add-asset submission.
func (r *Registry) RecordRejected(code string) {
	r.rejectedTotal.WithLabelValues(code).Inc()
}

// TrackPortfolio keeps the portfolio metrics current until the returned
// function is called.
func (r *Registry) TrackPortfolio(p *portfolio.Portfolio) (stop func()) {
	r.RecordSnapshot(p.Snapshot())
	return p.Subscribe(func(snap portfolio.Snapshot) {
		r.mutationsTotal.WithLabelValues(string(snap.Event.Kind)).Inc()
		r.RecordSnapshot(snap)
	})
}

func statusToString(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	case status >= 200:
		return "2xx"
	default:
		return "1xx"
	}
}
