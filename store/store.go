package store

import (
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/krisalay/league-cache/engine"
	"github.com/krisalay/league-cache/eviction"
	"github.com/krisalay/league-cache/types"
)

/*
Store holds the actual key → entry data, the memory accounting and the recency
bookkeeping for eviction.

Locking:
--------
One mutex guards everything. Get takes it exclusively too, because a read moves
the key in the recency order and may delete an expired entry. Nothing done under
the lock blocks on I/O: values arrive already encoded.

Memory:
-------
used is the sum of Size over every stored entry. Only current entries are
handed to the eviction policy, so historical entries are never eviction victims.
*/
type Store struct {
	mu sync.Mutex

	entries map[string]*types.CacheEntry

	// policy tracks current-domain keys only.
	policy eviction.Policy

	engine *engine.CacheEngine
	log    *slog.Logger

	limit int64
	used  int64

	stats collector
}

// New creates a store with a memory budget in bytes. A limit <= 0 disables the budget.
func New(limit int64, policy eviction.Policy, eng *engine.CacheEngine) *Store {
	if limit <= 0 {
		limit = math.MaxInt64
	}
	return &Store{
		entries: make(map[string]*types.CacheEntry),
		policy:  policy,
		engine:  eng,
		log:     eng.Logger.With(slog.String("component", "cache.store")),
		limit:   limit,
	}
}

/*
Get returns the stored bytes for key.

  - No entry: miss.
  - Expired entry: removed on the spot (lazy expiry), counted as a miss.
  - Otherwise: hit, the access time is refreshed and the key becomes most recently used.

The returned slice is shared with the entry and must not be modified.
*/
func (s *Store) Get(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ent, ok := s.entries[key]
	if !ok {
		s.missLocked()
		return nil, false
	}

	if s.engine.IsExpired(ent) {
		s.expireLocked(ent)
		s.missLocked()
		s.reportLocked()
		return nil, false
	}

	s.stats.hits++
	s.engine.OnRead(ent)
	if ent.Domain.Evictable() {
		s.policy.OnGet(key)
	}
	return ent.Value, true
}

// Peek returns a copy of the entry without counting a lookup or touching recency.
// Expired entries are reported as absent but left in place.
func (s *Store) Peek(key string) (types.CacheEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ent, ok := s.entries[key]
	if !ok || s.engine.IsExpired(ent) {
		return types.CacheEntry{}, false
	}
	return *ent, true
}

/*
Set stores value under key, replacing any previous entry and its size.

Order of work under the lock:
 1. reject a current entry that could never fit the budget (nothing is touched)
 2. drop the previous entry for key, if any
 3. evict least valuable current entries until the new one fits, or nothing evictable is left
 4. insert and start tracking the new entry

Because eviction runs before the insert, the entry being written is never its own victim.
When only historical data is left and the budget is still exceeded, the overage is accepted.
*/
func (s *Store) Set(key string, value []byte, ttl time.Duration, domain types.Domain) error {
	size := types.EntrySize(key, value)

	s.mu.Lock()
	defer s.mu.Unlock()

	if domain.Evictable() && size > s.limit {
		s.engine.Metrics.Rejected()
		s.log.Warn("cache entry rejected",
			slog.String("key", key),
			slog.Int64("size_bytes", size),
			slog.Int64("size_limit", s.limit))
		return fmt.Errorf("%w: %q is %d bytes, limit is %d", types.ErrEntryTooLarge, key, size, s.limit)
	}

	if old, ok := s.entries[key]; ok {
		s.removeLocked(old)
	}

	s.evictLocked(size)

	ent := &types.CacheEntry{
		Key:    key,
		Value:  value,
		TTL:    ttl,
		Size:   size,
		Domain: domain,
	}
	s.engine.OnWrite(ent)

	s.entries[key] = ent
	s.used += size
	s.stats.entries[domain]++
	if domain.Evictable() {
		s.policy.OnPut(key)
	}

	s.reportLocked()
	return nil
}

// Delete removes key. It reports whether an entry was present.
func (s *Store) Delete(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	ent, ok := s.entries[key]
	if !ok {
		return false
	}
	s.removeLocked(ent)
	s.reportLocked()
	return true
}

// ClearDomain removes every entry of one domain and returns how many were removed.
func (s *Store) ClearDomain(d types.Domain) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for _, ent := range s.entries {
		if ent.Domain == d {
			s.removeLocked(ent)
			removed++
		}
	}
	if d.Evictable() {
		s.policy.Reset()
	}

	s.reportLocked()
	return removed
}

// ClearAll removes everything and returns how many entries were removed.
// Lookup counters survive; they describe the store's lifetime, not its contents.
func (s *Store) ClearAll() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := len(s.entries)
	s.entries = make(map[string]*types.CacheEntry)
	s.used = 0
	s.stats.entries = [2]int{}
	s.policy.Reset()

	s.reportLocked()
	return removed
}

// PurgeExpired removes every expired entry and returns how many went away.
// It only runs when called; the store has no background sweeper.
func (s *Store) PurgeExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.purgeLocked()
	if n > 0 {
		s.reportLocked()
	}
	return n
}

// Stats purges expired entries and returns a snapshot, so entry counts and memory
// usage describe live data only.
func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.purgeLocked() > 0 {
		s.reportLocked()
	}
	return s.stats.snapshot(s.used, s.limit)
}

// Len returns the number of stored entries, expired ones included.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Usage returns the tracked memory in bytes.
func (s *Store) Usage() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.used
}

// Limit returns the memory budget in bytes.
func (s *Store) Limit() int64 {
	return s.limit
}

func (s *Store) evictLocked(incoming int64) {
	for s.used+incoming > s.limit {
		victim, ok := s.policy.Evict()
		if !ok {
			s.log.Debug("memory budget exceeded with nothing left to evict",
				slog.Int64("memory_usage", s.used+incoming),
				slog.Int64("size_limit", s.limit))
			return
		}

		ent, ok := s.entries[victim]
		if !ok {
			continue
		}

		s.dropLocked(ent)
		s.stats.evictions++
		s.engine.Metrics.Eviction()
		s.log.Debug("cache entry evicted",
			slog.String("key", victim),
			slog.Int64("size_bytes", ent.Size))
	}
}

func (s *Store) purgeLocked() int {
	n := 0
	for _, ent := range s.entries {
		if s.engine.IsExpired(ent) {
			s.expireLocked(ent)
			n++
		}
	}
	return n
}

func (s *Store) expireLocked(ent *types.CacheEntry) {
	s.removeLocked(ent)
	s.stats.expirations++
	s.engine.Metrics.Expire(ent.Domain)
}

func (s *Store) missLocked() {
	s.stats.misses++
	s.engine.Metrics.Miss()
}

// removeLocked drops an entry and stops tracking it in the policy.
func (s *Store) removeLocked(ent *types.CacheEntry) {
	if ent.Domain.Evictable() {
		s.policy.Remove(ent.Key)
	}
	s.dropLocked(ent)
}

// dropLocked only fixes the map and the accounting.
func (s *Store) dropLocked(ent *types.CacheEntry) {
	delete(s.entries, ent.Key)
	s.used -= ent.Size
	s.stats.entries[ent.Domain]--
}

func (s *Store) reportLocked() {
	s.engine.Metrics.Usage(len(s.entries), s.used)
}
