package types

// This file defines how the cache reports what it is doing.

/*
Metrics is an interface that defines what the cache wants to measure.
Each method represents an event in the cache lifecycle. The store calls these methods
while it holds its lock, so implementations must be cheap and must not call back into the cache.
*/
type Metrics interface {

	// Hit is called when a lookup returns a live entry of the given domain.
	Hit(Domain)

	// Miss is called when a lookup finds nothing, or finds an expired entry.
	Miss()

	// Eviction is called when a current entry is removed to get back under the memory budget.
	Eviction()

	// Expire is called when an entry is removed because it has passed its TTL.
	Expire(Domain)

	// Rejected is called when a write is refused (oversized entry).
	Rejected()

	// Usage is called after every mutation with the number of stored entries and tracked bytes.
	Usage(entries int, bytes int64)
}

/*
NoopMetrics is a "do nothing" implementation of Metrics.

The cache works without any metrics sink configured; the engine falls back to this
value so the hot path never has to check for nil.
*/
type NoopMetrics struct{}

func (NoopMetrics) Hit(Domain)       {}
func (NoopMetrics) Miss()            {}
func (NoopMetrics) Eviction()        {}
func (NoopMetrics) Expire(Domain)    {}
func (NoopMetrics) Rejected()        {}
func (NoopMetrics) Usage(int, int64) {}
