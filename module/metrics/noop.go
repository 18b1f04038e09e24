package metrics

import (
	"context"
	"time"

	httpmetrics "github.com/slok/go-http-metrics/metrics"

	"github.com/moveup-labs/moveup-go-sdk/module"
)

type NoopCollector struct{}

var (
	_ module.CacheMetrics  = (*NoopCollector)(nil)
	_ module.ClientMetrics = (*NoopCollector)(nil)
)

func NewNoopCollector() *NoopCollector {
	nc := &NoopCollector{}
	return nc
}

func (nc *NoopCollector) CacheEntries(resource string, entries uint) {}
func (nc *NoopCollector) CacheHit(resource string)                   {}
func (nc *NoopCollector) CacheMiss(resource string)                  {}
func (nc *NoopCollector) ObserveHTTPRequestDuration(ctx context.Context, props httpmetrics.HTTPReqProperties, duration time.Duration) {
}
func (nc *NoopCollector) ObserveHTTPResponseSize(ctx context.Context, props httpmetrics.HTTPReqProperties, sizeBytes int64) {
}
func (nc *NoopCollector) AddInflightRequests(ctx context.Context, props httpmetrics.HTTPProperties, quantity int) {
}
func (nc *NoopCollector) AddTotalRequests(ctx context.Context, method string, routeName string) {}
func (nc *NoopCollector) RequestRetried(routeName string)                                       {}
func (nc *NoopCollector) TransactionSubmitted(duration time.Duration)                           {}
func (nc *NoopCollector) TransactionCommitted(success bool, waited time.Duration)               {}
