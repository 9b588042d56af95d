package metrics

import (
	"time"

	"github.com/livefire2015/ez-receivables/src/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"
)

const namespace = "arledger"

// Metrics holds the receivables engine's Prometheus collectors
type Metrics struct {
	batchesTotal    *prometheus.CounterVec
	batchItemsTotal *prometheus.CounterVec
	batchDuration   *prometheus.HistogramVec

	driftCurrent prometheus.Gauge
	driftTotal   prometheus.Counter

	remoteCallsTotal   *prometheus.CounterVec
	remoteCallDuration *prometheus.HistogramVec
	cacheLookupsTotal  *prometheus.CounterVec

	sectionReceivables *prometheus.GaugeVec
	sectionAmount      *prometheus.GaugeVec
}

// New registers the collectors on reg
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		batchesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "batch",
				Name:      "runs_total",
				Help:      "Bulk operations run, by operation and outcome",
			},
			[]string{"operation", "outcome"},
		),
		batchItemsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "batch",
				Name:      "items_total",
				Help:      "Accounts processed by bulk operations, by result",
			},
			[]string{"operation", "result"},
		),
		batchDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "batch",
				Name:      "duration_seconds",
				Help:      "Wall time of bulk operations including the reload",
				Buckets:   prometheus.ExponentialBuckets(0.05, 2, 12), // 50ms to ~100s
			},
			[]string{"operation"},
		),
		driftCurrent: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "status",
				Name:      "drift_receivables",
				Help:      "Receivables whose stored status disagrees with classification in the last load",
			},
		),
		driftTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "status",
				Name:      "drift_observations_total",
				Help:      "Status drift warnings raised across loads",
			},
		),
		remoteCallsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "remote",
				Name:      "calls_total",
				Help:      "Calls to the remote ledger service, by operation and status code",
			},
			[]string{"operation", "code"},
		),
		remoteCallDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "remote",
				Name:      "call_duration_seconds",
				Help:      "Latency of calls to the remote ledger service",
				Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
			},
			[]string{"operation"},
		),
		cacheLookupsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "cache",
				Name:      "lookups_total",
				Help:      "List cache lookups, by result",
			},
			[]string{"result"},
		),
		sectionReceivables: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "portfolio",
				Name:      "receivables",
				Help:      "Receivables per lifecycle section in the last load",
			},
			[]string{"status"},
		),
		sectionAmount: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "portfolio",
				Name:      "amount",
				Help:      "Section total per lifecycle section in the last load",
			},
			[]string{"status"},
		),
	}
}

// ObserveBatch records a finished batch report
func (m *Metrics) ObserveBatch(report *models.BatchReport) {
	op := string(report.Operation)
	m.batchesTotal.WithLabelValues(op, string(report.Outcome)).Inc()
	m.batchItemsTotal.WithLabelValues(op, string(models.ItemSucceeded)).Add(float64(report.Processed))
	m.batchItemsTotal.WithLabelValues(op, string(models.ItemFailed)).Add(float64(report.Errored))
	m.batchItemsTotal.WithLabelValues(op, string(models.ItemSkipped)).Add(float64(report.Skipped))
	if !report.FinishedAt.IsZero() {
		m.batchDuration.WithLabelValues(op).Observe(report.FinishedAt.Sub(report.StartedAt).Seconds())
	}
}

// ObserveDrift records the drift count of a load
func (m *Metrics) ObserveDrift(count int) {
	m.driftCurrent.Set(float64(count))
	m.driftTotal.Add(float64(count))
}

// ObserveRemoteCall records one call to the remote service. code is the HTTP
// status, or "error" when no response arrived.
func (m *Metrics) ObserveRemoteCall(operation, code string, d time.Duration) {
	m.remoteCallsTotal.WithLabelValues(operation, code).Inc()
	m.remoteCallDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// ObserveCacheLookup records a list cache hit or miss
func (m *Metrics) ObserveCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookupsTotal.WithLabelValues(result).Inc()
}

// SetSection publishes a section's size and total
func (m *Metrics) SetSection(status models.ReceivableStatus, count int, total decimal.Decimal) {
	m.sectionReceivables.WithLabelValues(string(status)).Set(float64(count))
	m.sectionAmount.WithLabelValues(string(status)).Set(total.InexactFloat64())
}
