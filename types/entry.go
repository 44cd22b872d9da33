package types

import "time"

// NoExpiration marks an entry that never expires on its own.
// Only explicit clears (or deletes) remove such an entry.
const NoExpiration time.Duration = -1

/*
Domain decides how an entry is treated under memory pressure.

  - Current entries hold in-season data. They expire by TTL and are
    eviction candidates.
  - Historical entries hold finished seasons. They are never evicted,
    only cleared explicitly or expired by a TTL the caller asked for.
*/
type Domain uint8

const (
	Current Domain = iota
	Historical
)

func (d Domain) String() string {
	switch d {
	case Current:
		return "current"
	case Historical:
		return "historical"
	default:
		return "unknown"
	}
}

// Evictable reports whether entries of this domain may be chosen by an eviction policy.
func (d Domain) Evictable() bool {
	return d == Current
}

// CacheEntry is one stored value plus the bookkeeping the store needs.
// Entries are only touched while the owning store holds its lock.
type CacheEntry struct {
	Key   string
	Value []byte // encoded payload, owned by the entry

	TTL            time.Duration // NoExpiration => permanent
	CreatedAt      time.Time
	LastAccessedAt time.Time

	Size   int64
	Domain Domain
}

// Permanent reports whether the entry ignores time-based expiration.
func (e *CacheEntry) Permanent() bool {
	return e.TTL == NoExpiration
}

// EntrySize is the number of bytes an entry contributes to memory accounting.
func EntrySize(key string, value []byte) int64 {
	return int64(len(key) + len(value))
}
