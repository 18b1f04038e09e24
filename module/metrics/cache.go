package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/moveup-labs/moveup-go-sdk/module"
)

type CacheCollector struct {
	entries *prometheus.GaugeVec
	hits    *prometheus.CounterVec
	misses  *prometheus.CounterVec
}

var _ module.CacheMetrics = (*CacheCollector)(nil)

func NewCacheCollector(registerer prometheus.Registerer) *CacheCollector {
	factory := promauto.With(registerer)
	return &CacheCollector{
		entries: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespaceMoveup,
			Subsystem: subsystemCache,
			Name:      "entries_total",
			Help:      "the number of entries in the cache",
		}, []string{LabelResource}),
		hits: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespaceMoveup,
			Subsystem: subsystemCache,
			Name:      "hits_total",
			Help:      "the number of lookups answered from the cache",
		}, []string{LabelResource}),
		misses: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespaceMoveup,
			Subsystem: subsystemCache,
			Name:      "misses_total",
			Help:      "the number of lookups that had to go to the node",
		}, []string{LabelResource}),
	}
}

func (c *CacheCollector) CacheEntries(resource string, entries uint) {
	c.entries.WithLabelValues(resource).Set(float64(entries))
}

func (c *CacheCollector) CacheHit(resource string) {
	c.hits.WithLabelValues(resource).Inc()
}

func (c *CacheCollector) CacheMiss(resource string) {
	c.misses.WithLabelValues(resource).Inc()
}
