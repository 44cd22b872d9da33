// Package api declares the public contract of the league cache.
package api

import (
	"context"
	"time"

	"github.com/krisalay/league-cache/store"
	"github.com/krisalay/league-cache/types"
)

/*
Cache defines the PUBLIC API of the league data cache.
Callers (API tools, HTTP handlers, the CLI) depend on this interface and never on
the store, the eviction policy or the key layout.

Values go in as any Go value and come out by decoding into a destination pointer,
the same way encoding/json works. A nil destination only checks presence.
*/
type Cache interface {

	/*
		GetCurrentData looks up in-season data for a league endpoint.

		BEHAVIOR:
		---------
		1. Live entry: decode into dst, return (true, nil)
		2. Missing or expired: return (false, nil); expired entries are removed on the spot
		3. Stored bytes do not decode into dst: return (false, ErrEncoding)
	*/
	GetCurrentData(sport, leagueID, endpoint string, dst any) (bool, error)

	/*
		SetCurrentData stores in-season data with the current TTL (300s by default).

		BEHAVIOR:
		---------
		- Replaces any previous value for the same league endpoint
		- May evict least recently used current data to stay within the memory budget
		- Fails with ErrEncoding (nothing stored) or ErrEntryTooLarge
	*/
	SetCurrentData(sport, leagueID, endpoint string, value any) error

	/*
		SetCurrentDataWithTTL is SetCurrentData with an explicit TTL.

		The TTL must be positive or exactly NoExpiration (-1ns). -1 * time.Second is just a
		negative duration and fails with ErrInvalidTTL.
	*/
	SetCurrentDataWithTTL(sport, leagueID, endpoint string, value any, ttl time.Duration) error

	// GetHistoricalData looks up data for a finished season. Same result contract as GetCurrentData.
	GetHistoricalData(sport, season, leagueID, endpoint string, dst any) (bool, error)

	/*
		SetHistoricalData stores finished-season data, permanent by default.

		IMPORTANT:
		----------
		- Historical data is never evicted, even when the memory budget is exceeded
		- Only ClearHistoricalCache, Clear, DeleteHistoricalData or an explicit finite TTL remove it
	*/
	SetHistoricalData(sport, season, leagueID, endpoint string, value any) error

	// SetHistoricalDataWithTTL is SetHistoricalData with an explicit TTL.
	SetHistoricalDataWithTTL(sport, season, leagueID, endpoint string, value any, ttl time.Duration) error

	/*
		FetchCurrentData is the cache-aside pattern in one call.

		BEHAVIOR:
		---------
		1. Hit: decode into dst
		2. Miss: call loader once per key, however many goroutines are waiting
		   (singleflight), store the result with the default TTL, decode into dst

		A loader error is returned as is and nothing is stored. A nil loaded value
		returns ErrNoData.
	*/
	FetchCurrentData(ctx context.Context, sport, leagueID, endpoint string, dst any, loader types.Loader) error

	// FetchHistoricalData is FetchCurrentData for finished seasons.
	FetchHistoricalData(ctx context.Context, sport, season, leagueID, endpoint string, dst any, loader types.Loader) error

	// Get, Set and SetWithTTL work on raw keys (see package keys). Set always applies the
	// current-data TTL; SetWithTTL takes the same TTL values as SetCurrentDataWithTTL
	// (positive, or NoExpiration which is -1ns, not -1s).
	Get(key string, dst any) (bool, error)
	GetRaw(key string) ([]byte, bool)
	Set(key string, value any) error
	SetWithTTL(key string, value any, ttl time.Duration) error

	// DeleteCurrentData, DeleteHistoricalData and Delete remove a single entry and report
	// whether it was present. Deleting a missing key is safe.
	DeleteCurrentData(sport, leagueID, endpoint string) bool
	DeleteHistoricalData(sport, season, leagueID, endpoint string) bool
	Delete(key string) bool

	/*
		TTL returns the remaining time-to-live for a key.

		RETURN VALUES (Redis-compatible semantics):
		-------------------------------------------
		> 0   : Duration remaining before expiration
		-1    : Key exists and never expires
		-2    : Key does not exist or is already expired
	*/
	TTL(key string) time.Duration

	// ClearCurrentCache, ClearHistoricalCache and Clear drop whole domains and return
	// how many entries went away. Lookup statistics are kept.
	ClearCurrentCache() int
	ClearHistoricalCache() int
	Clear() int

	// Stats returns a snapshot of live entries, memory and lookup counters.
	// A lookup that finds a live entry counts as a hit even when decoding into dst then
	// fails with ErrEncoding: the hit rate measures the cache, not the caller's types.
	Stats() store.Stats
}
