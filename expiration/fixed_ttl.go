package expiration

import (
	"time"

	"github.com/krisalay/league-cache/types"
)

/*
FixedTTL expires an entry a fixed time after it was written. Reads do not extend its life.

An entry is still valid at exactly CreatedAt+TTL and expired strictly after it.
Permanent entries (TTL == types.NoExpiration) never expire.
*/
type FixedTTL struct{}

func (FixedTTL) IsExpired(ent *types.CacheEntry, now time.Time) bool {
	return !ent.Permanent() && now.Sub(ent.CreatedAt) > ent.TTL
}

func (FixedTTL) OnAccess(ent *types.CacheEntry, now time.Time) {
	ent.LastAccessedAt = now
}

func (FixedTTL) OnWrite(ent *types.CacheEntry, now time.Time) {
	ent.CreatedAt = now
	ent.LastAccessedAt = now
}

func (FixedTTL) Deadline(ent *types.CacheEntry) time.Time {
	return ent.CreatedAt.Add(ent.TTL)
}
