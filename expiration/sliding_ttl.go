package expiration

import (
	"time"

	"github.com/krisalay/league-cache/types"
)

/*
SlidingTTL implements "expire after access". Every read pushes the deadline forward,
so data that keeps getting asked for stays alive and data nobody touches for TTL expires.

This is useful for the current-season endpoints that a busy client polls repeatedly.
It is opt-in; FixedTTL is the default.
*/
type SlidingTTL struct{}

// IsExpired measures idle time since the last successful read (or the write).
func (SlidingTTL) IsExpired(ent *types.CacheEntry, now time.Time) bool {
	return !ent.Permanent() && now.Sub(ent.LastAccessedAt) > ent.TTL
}

func (SlidingTTL) OnAccess(ent *types.CacheEntry, now time.Time) {
	ent.LastAccessedAt = now
}

func (SlidingTTL) OnWrite(ent *types.CacheEntry, now time.Time) {
	ent.CreatedAt = now
	ent.LastAccessedAt = now
}

func (SlidingTTL) Deadline(ent *types.CacheEntry) time.Time {
	return ent.LastAccessedAt.Add(ent.TTL)
}
