package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the application's Prometheus collectors. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	registry          *prometheus.Registry
	receiptsCreated   *prometheus.CounterVec
	documentsRendered *prometheus.CounterVec
	documentFailures  *prometheus.CounterVec
	exports           prometheus.Counter
	exportedReceipts  prometheus.Counter
}

// New registers the collectors on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		receiptsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nota",
			Name:      "receipts_created_total",
			Help:      "Receipts saved, by company code.",
		}, []string{"company"}),
		documentsRendered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nota",
			Name:      "documents_rendered_total",
			Help:      "PDF documents rendered, by layout.",
		}, []string{"layout"}),
		documentFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nota",
			Name:      "document_failures_total",
			Help:      "Failed PDF renders or print jobs, by stage.",
		}, []string{"stage"}),
		exports: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "nota",
			Name:      "exports_total",
			Help:      "Completed export-and-purge runs.",
		}),
		exportedReceipts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "nota",
			Name:      "exported_receipts_total",
			Help:      "Receipts written to export workbooks before purging.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.receiptsCreated,
		m.documentsRendered,
		m.documentFailures,
		m.exports,
		m.exportedReceipts,
	)
	return m
}

func (m *Metrics) ReceiptCreated(company string) {
	if m == nil {
		return
	}
	m.receiptsCreated.WithLabelValues(company).Inc()
}

func (m *Metrics) DocumentRendered(layout string) {
	if m == nil {
		return
	}
	m.documentsRendered.WithLabelValues(layout).Inc()
}

func (m *Metrics) DocumentFailed(stage string) {
	if m == nil {
		return
	}
	m.documentFailures.WithLabelValues(stage).Inc()
}

func (m *Metrics) ExportCompleted(receipts int) {
	if m == nil {
		return
	}
	m.exports.Inc()
	m.exportedReceipts.Add(float64(receipts))
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
