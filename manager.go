package cache

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/krisalay/league-cache/api"
	"github.com/krisalay/league-cache/engine"
	"github.com/krisalay/league-cache/eviction"
	"github.com/krisalay/league-cache/internal/errs"
	"github.com/krisalay/league-cache/keys"
	"github.com/krisalay/league-cache/store"
	"github.com/krisalay/league-cache/types"
)

var _ api.Cache = (*Manager)(nil)

/*
Manager is the cache implementation behind api.Cache.
This struct is the orchestrator that connects:
- key derivation (keys)
- storage, memory accounting and eviction (store)
- time, TTLs, encoding and metrics (engine)
- read-through loading (singleflight)

It holds no global state: build one per process (or per test) and pass it around.
*/
type Manager struct {
	// store owns the entries, the memory budget and the statistics.
	store *store.Store

	// engine contains the "rules" of the cache: clock, TTL defaults, expiration, codec, metrics.
	engine *engine.CacheEngine

	log *slog.Logger

	// sf prevents several goroutines from calling the upstream loader for the same key at once.
	sf singleflight.Group
}

/*
NewManager creates a cache with a memory budget of sizeLimit bytes (<= 0 means unbounded)
and the given eviction policy for current data. A nil engine gets every default.
*/
func NewManager(sizeLimit int64, policy eviction.PolicyType, eng *engine.CacheEngine) (*Manager, error) {
	if eng == nil {
		eng = engine.NewCacheEngine(nil, nil, nil, nil, nil)
	}
	if err := engine.ValidateTTL(eng.CurrentTTL); err != nil {
		return nil, errs.Wrap(err, "current ttl")
	}
	if err := engine.ValidateTTL(eng.HistoricalTTL); err != nil {
		return nil, errs.Wrap(err, "historical ttl")
	}

	p, err := eviction.NewEvictionPolicy(policy)
	if err != nil {
		return nil, errs.Wrap(err, "create eviction policy")
	}

	return &Manager{
		store:  store.New(sizeLimit, p, eng),
		engine: eng,
		log:    eng.Logger.With(slog.String("component", "cache.manager")),
	}, nil
}

func (m *Manager) GetCurrentData(sport, leagueID, endpoint string, dst any) (bool, error) {
	return m.get(keys.CurrentKey(sport, leagueID, endpoint), dst)
}

func (m *Manager) SetCurrentData(sport, leagueID, endpoint string, value any) error {
	return m.set(keys.CurrentKey(sport, leagueID, endpoint), value, m.engine.CurrentTTL, types.Current)
}

func (m *Manager) SetCurrentDataWithTTL(sport, leagueID, endpoint string, value any, ttl time.Duration) error {
	return m.set(keys.CurrentKey(sport, leagueID, endpoint), value, ttl, types.Current)
}

func (m *Manager) GetHistoricalData(sport, season, leagueID, endpoint string, dst any) (bool, error) {
	return m.get(keys.HistoricalKey(sport, season, leagueID, endpoint), dst)
}

func (m *Manager) SetHistoricalData(sport, season, leagueID, endpoint string, value any) error {
	return m.set(keys.HistoricalKey(sport, season, leagueID, endpoint), value, m.engine.HistoricalTTL, types.Historical)
}

func (m *Manager) SetHistoricalDataWithTTL(sport, season, leagueID, endpoint string, value any, ttl time.Duration) error {
	return m.set(keys.HistoricalKey(sport, season, leagueID, endpoint), value, ttl, types.Historical)
}

func (m *Manager) FetchCurrentData(ctx context.Context, sport, leagueID, endpoint string, dst any, loader types.Loader) error {
	return m.fetch(ctx, keys.CurrentKey(sport, leagueID, endpoint), types.Current, dst, loader)
}

func (m *Manager) FetchHistoricalData(ctx context.Context, sport, season, leagueID, endpoint string, dst any, loader types.Loader) error {
	return m.fetch(ctx, keys.HistoricalKey(sport, season, leagueID, endpoint), types.Historical, dst, loader)
}

// Get decodes the value stored under a raw key into dst.
func (m *Manager) Get(key string, dst any) (bool, error) {
	return m.get(key, dst)
}

// GetRaw returns a copy of the encoded bytes stored under key.
func (m *Manager) GetRaw(key string) ([]byte, bool) {
	data, ok := m.store.Get(key)
	if !ok {
		return nil, false
	}
	return bytes.Clone(data), true
}

/*
Set stores value under a raw key with the current-data TTL, whatever the key looks like.
Keys built by HistoricalKey still land in the historical domain (never evicted), but they
expire like current data; use SetWithTTL(key, v, NoExpiration) to keep them permanently.
*/
func (m *Manager) Set(key string, value any) error {
	return m.set(key, value, m.engine.CurrentTTL, domainOf(key))
}

func (m *Manager) SetWithTTL(key string, value any, ttl time.Duration) error {
	return m.set(key, value, ttl, domainOf(key))
}

func (m *Manager) DeleteCurrentData(sport, leagueID, endpoint string) bool {
	return m.store.Delete(keys.CurrentKey(sport, leagueID, endpoint))
}

func (m *Manager) DeleteHistoricalData(sport, season, leagueID, endpoint string) bool {
	return m.store.Delete(keys.HistoricalKey(sport, season, leagueID, endpoint))
}

func (m *Manager) Delete(key string) bool {
	return m.store.Delete(key)
}

// TTL reports the remaining lifetime of key: > 0 left, -1 permanent, -2 missing or expired.
func (m *Manager) TTL(key string) time.Duration {
	ent, ok := m.store.Peek(key)
	if !ok {
		return -2
	}
	return m.engine.Remaining(&ent)
}

func (m *Manager) ClearCurrentCache() int {
	n := m.store.ClearDomain(types.Current)
	m.log.Info("current cache cleared", slog.Int("entries", n))
	return n
}

func (m *Manager) ClearHistoricalCache() int {
	n := m.store.ClearDomain(types.Historical)
	m.log.Info("historical cache cleared", slog.Int("entries", n))
	return n
}

func (m *Manager) Clear() int {
	n := m.store.ClearAll()
	m.log.Info("cache cleared", slog.Int("entries", n))
	return n
}

func (m *Manager) Stats() Stats {
	return m.store.Stats()
}

// PurgeExpired removes every expired entry now instead of waiting for a read.
func (m *Manager) PurgeExpired() int {
	return m.store.PurgeExpired()
}

// Engine exposes the policy layer, mostly so callers can reach the clock in tests.
func (m *Manager) Engine() *engine.CacheEngine {
	return m.engine
}

func (m *Manager) get(key string, dst any) (bool, error) {
	data, ok := m.store.Get(key)
	if !ok {
		return false, nil
	}
	if err := m.engine.Decode(data, dst); err != nil {
		return false, errs.Wrapf(err, "get %s", key)
	}
	return true, nil
}

// set validates and encodes before the store lock is taken, so a failed write changes nothing.
func (m *Manager) set(key string, value any, ttl time.Duration, d types.Domain) error {
	if err := engine.ValidateTTL(ttl); err != nil {
		return errs.Wrapf(err, "set %s", key)
	}
	data, err := m.engine.Encode(value)
	if err != nil {
		return errs.Wrapf(err, "set %s", key)
	}
	if err := m.store.Set(key, data, ttl, d); err != nil {
		return errs.Wrapf(err, "set %s", key)
	}
	return nil
}

func (m *Manager) fetch(ctx context.Context, key string, d types.Domain, dst any, loader types.Loader) error {
	if ok, err := m.get(key, dst); ok || err != nil {
		return err
	}

	/*
		singleflight ensures that:
		- If 100 goroutines miss the same league endpoint,
		  only ONE of them calls the rate-limited upstream.
		- Others wait and decode the same bytes.
	*/
	v, err, shared := m.sf.Do(key, func() (any, error) {
		// A previous flight may have filled the key after our miss.
		if ent, ok := m.store.Peek(key); ok {
			return ent.Value, nil
		}

		val, err := loader.Load(ctx, key)
		if err != nil {
			err = errs.WithStack(err)
			m.log.Warn("upstream load failed", slog.String("key", key), slog.Any("err", errs.Loggable(err)))
			return nil, errs.Wrapf(err, "load %s", key)
		}
		if val == nil {
			return nil, errs.Wrapf(types.ErrNoData, "load %s", key)
		}

		data, err := m.engine.Encode(val)
		if err != nil {
			return nil, errs.Wrapf(err, "load %s", key)
		}

		err = m.store.Set(key, data, m.engine.DefaultTTL(d), d)
		switch {
		case errors.Is(err, types.ErrEntryTooLarge):
			// The caller still gets the data; it just is not cached.
			m.log.Warn("loaded value not cached", slog.String("key", key), slog.Any("err", errs.Loggable(err)))
		case err != nil:
			return nil, errs.Wrapf(err, "load %s", key)
		}
		return data, nil
	})
	if err != nil {
		return err
	}
	if shared {
		m.log.Debug("loader result shared", slog.String("key", key))
	}

	return m.engine.Decode(v.([]byte), dst)
}

func domainOf(key string) types.Domain {
	if d, ok := keys.DomainOf(key); ok {
		return d
	}
	return types.Current
}
