// Package metrics exports cache activity to Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/krisalay/league-cache/types"
)

// Prometheus implements types.Metrics on top of client_golang collectors.
type Prometheus struct {
	// Lookup metrics
	Hits   *prometheus.CounterVec
	Misses prometheus.Counter

	// Removal metrics
	Evictions   prometheus.Counter
	Expirations *prometheus.CounterVec
	Rejections  prometheus.Counter

	// Occupancy
	Entries     prometheus.Gauge
	MemoryBytes prometheus.Gauge
}

var _ types.Metrics = (*Prometheus)(nil)

// NewPrometheus registers the cache collectors on reg under namespace.
// Each cache should get its own registry; registering twice on one registry panics.
func NewPrometheus(reg prometheus.Registerer, namespace string) *Prometheus {
	f := promauto.With(reg)
	return &Prometheus{
		Hits: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_hits_total",
			Help:      "Lookups answered from the cache, by domain",
		}, []string{"domain"}),
		Misses: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_misses_total",
			Help:      "Lookups that found no live entry",
		}),

		Evictions: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_evictions_total",
			Help:      "Current entries removed to stay within the memory budget",
		}),
		Expirations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_expirations_total",
			Help:      "Entries removed after their TTL elapsed, by domain",
		}, []string{"domain"}),
		Rejections: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_rejected_writes_total",
			Help:      "Writes refused because the entry exceeds the whole memory budget",
		}),

		Entries: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cache_entries",
			Help:      "Entries currently stored, expired ones not yet purged included",
		}),
		MemoryBytes: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cache_memory_bytes",
			Help:      "Tracked size of keys and encoded values",
		}),
	}
}

func (p *Prometheus) Hit(d types.Domain) {
	p.Hits.WithLabelValues(d.String()).Inc()
}

func (p *Prometheus) Miss() {
	p.Misses.Inc()
}

func (p *Prometheus) Eviction() {
	p.Evictions.Inc()
}

func (p *Prometheus) Expire(d types.Domain) {
	p.Expirations.WithLabelValues(d.String()).Inc()
}

func (p *Prometheus) Rejected() {
	p.Rejections.Inc()
}

// Usage updates the occupancy gauges.
func (p *Prometheus) Usage(entries int, bytes int64) {
	p.Entries.Set(float64(entries))
	p.MemoryBytes.Set(float64(bytes))
}
