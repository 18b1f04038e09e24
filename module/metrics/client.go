package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	httpmetrics "github.com/slok/go-http-metrics/metrics"

	"github.com/moveup-labs/moveup-go-sdk/module"
)

// ClientCollector collects metrics for the requests a node client sends.
type ClientCollector struct {
	httpRequestDurHistogram   *prometheus.HistogramVec
	httpResponseSizeHistogram *prometheus.HistogramVec
	httpRequestsInflight      *prometheus.GaugeVec
	httpRequestsTotal         *prometheus.CounterVec
	retriesTotal              *prometheus.CounterVec
	submitDuration            prometheus.Histogram
	committedTotal            *prometheus.CounterVec
	commitWait                prometheus.Histogram
}

var _ module.ClientMetrics = (*ClientCollector)(nil)

// NewClientCollector registers the client metrics with registerer.
func NewClientCollector(registerer prometheus.Registerer) *ClientCollector {
	factory := promauto.With(registerer)
	return &ClientCollector{
		httpRequestDurHistogram: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespaceMoveup,
			Subsystem: subsystemClient,
			Name:      "request_duration_seconds",
			Help:      "the duration of node requests",
			Buckets:   prometheus.DefBuckets,
		}, []string{LabelService, LabelRoute, LabelMethod, LabelCode}),
		httpResponseSizeHistogram: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespaceMoveup,
			Subsystem: subsystemClient,
			Name:      "response_size_bytes",
			Help:      "the size of node responses",
			Buckets:   prometheus.ExponentialBuckets(100, 10, 8),
		}, []string{LabelService, LabelRoute, LabelMethod, LabelCode}),
		httpRequestsInflight: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespaceMoveup,
			Subsystem: subsystemClient,
			Name:      "requests_inflight",
			Help:      "the number of node requests being sent",
		}, []string{LabelService, LabelRoute}),
		httpRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespaceMoveup,
			Subsystem: subsystemClient,
			Name:      "requests_total",
			Help:      "the number of node requests sent",
		}, []string{LabelMethod, LabelRoute}),
		retriesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespaceMoveup,
			Subsystem: subsystemClient,
			Name:      "retries_total",
			Help:      "the number of node requests that were retried",
		}, []string{LabelRoute}),
		submitDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespaceMoveup,
			Subsystem: subsystemTransaction,
			Name:      "submit_duration_seconds",
			Help:      "the time it took the node to accept a transaction",
			Buckets:   prometheus.DefBuckets,
		}),
		committedTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespaceMoveup,
			Subsystem: subsystemTransaction,
			Name:      "committed_total",
			Help:      "the number of submitted transactions seen on chain",
		}, []string{LabelOutcome}),
		commitWait: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespaceMoveup,
			Subsystem: subsystemTransaction,
			Name:      "commit_wait_seconds",
			Help:      "the time spent waiting for a submitted transaction to be committed",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 30, 60},
		}),
	}
}

// ObserveHTTPRequestDuration records the duration of a request.
func (c *ClientCollector) ObserveHTTPRequestDuration(_ context.Context, p httpmetrics.HTTPReqProperties, duration time.Duration) {
	c.httpRequestDurHistogram.WithLabelValues(p.Service, p.ID, p.Method, p.Code).Observe(duration.Seconds())
}

// ObserveHTTPResponseSize records the size of a response body.
func (c *ClientCollector) ObserveHTTPResponseSize(_ context.Context, p httpmetrics.HTTPReqProperties, sizeBytes int64) {
	c.httpResponseSizeHistogram.WithLabelValues(p.Service, p.ID, p.Method, p.Code).Observe(float64(sizeBytes))
}

// AddInflightRequests increments and decrements the number of inflight request being processed.
func (c *ClientCollector) AddInflightRequests(_ context.Context, p httpmetrics.HTTPProperties, quantity int) {
	c.httpRequestsInflight.WithLabelValues(p.Service, p.ID).Add(float64(quantity))
}

// AddTotalRequests records all requests sent.
func (c *ClientCollector) AddTotalRequests(_ context.Context, method string, routeName string) {
	c.httpRequestsTotal.WithLabelValues(method, routeName).Inc()
}

func (c *ClientCollector) RequestRetried(routeName string) {
	c.retriesTotal.WithLabelValues(routeName).Inc()
}

func (c *ClientCollector) TransactionSubmitted(duration time.Duration) {
	c.submitDuration.Observe(duration.Seconds())
}

func (c *ClientCollector) TransactionCommitted(success bool, waited time.Duration) {
	outcome := OutcomeFailure
	if success {
		outcome = OutcomeSuccess
	}
	c.committedTotal.WithLabelValues(outcome).Inc()
	c.commitWait.Observe(waited.Seconds())
}
