package module

import (
	"context"
	"time"

	httpmetrics "github.com/slok/go-http-metrics/metrics"
)

type CacheMetrics interface {
	// CacheEntries report the total number of cached items
	CacheEntries(resource string, entries uint)
	// CacheHit report the number of times the queried item is found in the cache
	CacheHit(resource string)
	// CacheMiss report the number of times the queried item is not found in the cache and had to be fetched from the node.
	CacheMiss(resource string)
}

// ClientMetrics records the requests a node client sends.
type ClientMetrics interface {
	// Example recorder taken from:
	// https://github.com/slok/go-http-metrics/blob/master/metrics/prometheus/prometheus.go
	httpmetrics.Recorder
	AddTotalRequests(ctx context.Context, method string, routeName string)
	// RequestRetried counts a request that is sent again after a retryable failure.
	RequestRetried(routeName string)
	// TransactionSubmitted is called with the time it took the node to accept a signed transaction.
	TransactionSubmitted(duration time.Duration)
	// TransactionCommitted is called once a submitted transaction is seen on chain, successful or not.
	TransactionCommitted(success bool, waited time.Duration)
}
