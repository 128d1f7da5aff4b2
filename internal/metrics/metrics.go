package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Query outcomes.
const (
	OutcomeMatched  = "matched"
	OutcomeNoMatch  = "no_match"
	OutcomeInvalid  = "invalid"
	OutcomeRejected = "rejected"
)

var (
	documentsLoadedDesc = prometheus.NewDesc(
		"pdfquery_documents_loaded",
		"Number of PDF documents held in memory",
		nil,
		nil,
	)

	queriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pdfquery_queries_total",
			Help: "Total queries by matching mode and outcome",
		},
		[]string{"mode", "outcome"},
	)

	queryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pdfquery_query_duration_seconds",
			Help:    "Time spent matching a query against all documents",
			Buckets: prometheus.ExponentialBuckets(0.0005, 4, 8),
		},
		[]string{"mode"},
	)
)

// DocumentCounter reports how many documents are loaded.
type DocumentCounter interface {
	Len() int
}

// DocumentCollector is a custom Prometheus collector that reads the document
// count on each scrape.
type DocumentCollector struct {
	docs DocumentCounter
}

// NewDocumentCollector creates a collector for docs.
func NewDocumentCollector(docs DocumentCounter) *DocumentCollector {
	return &DocumentCollector{docs: docs}
}

// Describe sends the metric descriptor to the channel.
func (c *DocumentCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- documentsLoadedDesc
}

// Collect emits the current document count as a gauge.
func (c *DocumentCollector) Collect(ch chan<- prometheus.Metric) {
	n := 0
	if c.docs != nil {
		n = c.docs.Len()
	}
	ch <- prometheus.MustNewConstMetric(documentsLoadedDesc, prometheus.GaugeValue, float64(n))
}

var initOnce sync.Once

// Init registers the query metrics and the document collector with the
// default registry. Must be called once at startup.
func Init(docs DocumentCounter) {
	initOnce.Do(func() {
		prometheus.MustRegister(queriesTotal, queryDuration, NewDocumentCollector(docs))
	})
}

// ObserveQuery records one query. Duration is only recorded for queries that
// reached the matcher.
func ObserveQuery(mode, outcome string, elapsed time.Duration) {
	queriesTotal.WithLabelValues(mode, outcome).Inc()
	if outcome == OutcomeMatched || outcome == OutcomeNoMatch {
		queryDuration.WithLabelValues(mode).Observe(elapsed.Seconds())
	}
}
