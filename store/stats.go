package store

import "github.com/krisalay/league-cache/types"

// Stats is a point-in-time view of a store.
type Stats struct {
	TotalEntries      int     `json:"total_entries"`
	CurrentEntries    int     `json:"current_entries"`
	HistoricalEntries int     `json:"historical_entries"`
	MemoryUsage       int64   `json:"memory_usage"`
	SizeLimit         int64   `json:"size_limit"`
	HitRate           float64 `json:"hit_rate"`

	Hits        uint64 `json:"hits"`
	Misses      uint64 `json:"misses"`
	Evictions   uint64 `json:"evictions"`
	Expirations uint64 `json:"expirations"`
}

// collector is only touched under the store lock.
type collector struct {
	hits        uint64
	misses      uint64
	evictions   uint64
	expirations uint64

	// entries counts stored entries per domain, indexed by types.Domain.
	entries [2]int
}

// HitRate is hits/(hits+misses), or 0 before the first lookup.
func HitRate(hits, misses uint64) float64 {
	total := hits + misses
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total)
}

func (c *collector) snapshot(used, limit int64) Stats {
	return Stats{
		TotalEntries:      c.entries[types.Current] + c.entries[types.Historical],
		CurrentEntries:    c.entries[types.Current],
		HistoricalEntries: c.entries[types.Historical],
		MemoryUsage:       used,
		SizeLimit:         limit,
		HitRate:           HitRate(c.hits, c.misses),
		Hits:              c.hits,
		Misses:            c.misses,
		Evictions:         c.evictions,
		Expirations:       c.expirations,
	}
}
