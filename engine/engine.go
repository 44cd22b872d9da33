package engine

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/krisalay/league-cache/codec"
	"github.com/krisalay/league-cache/expiration"
	"github.com/krisalay/league-cache/internal/errs"
	"github.com/krisalay/league-cache/internal/logging"
	"github.com/krisalay/league-cache/types"
)

// Default TTLs applied when the caller does not pass one.
const (
	DefaultCurrentTTL    = 300 * time.Second
	DefaultHistoricalTTL = types.NoExpiration
)

/*
CacheEngine is the "brain" of the cache system.
It is responsible for the behavior of the cache, NOT storage.

It decides:
- What time it is (real clock in production, mock clock in tests)
- When an entry is expired
- How timestamps move on reads and writes
- How values become bytes and back
- Which TTL a domain gets by default, and which TTLs are legal
- Where metrics and logs go

It does NOT:
- Store data
- Handle locking
- Decide eviction order
*/
type CacheEngine struct {
	// Expiration controls when a cache entry should be considered too old.
	Expiration expiration.Strategy

	// Codec encodes values on write; the encoded length is what memory accounting charges.
	Codec codec.Codec

	// Clock is the only source of time for the cache.
	Clock clock.Clock

	// Metrics is how we keep track of what the cache is doing.
	Metrics types.Metrics

	// Logger receives eviction, rejection and clear events.
	Logger *slog.Logger

	// CurrentTTL and HistoricalTTL are the per-domain defaults.
	CurrentTTL    time.Duration
	HistoricalTTL time.Duration
}

/*
NewCacheEngine creates a CacheEngine. Any nil collaborator is replaced by its default:
fixed TTL, JSON, the wall clock, no-op metrics, the default logger.
*/
func NewCacheEngine(
	exp expiration.Strategy,
	cdc codec.Codec,
	clk clock.Clock,
	metrics types.Metrics,
	logger *slog.Logger,
) *CacheEngine {
	if exp == nil {
		exp = expiration.FixedTTL{}
	}
	if cdc == nil {
		cdc = codec.JSON{}
	}
	if clk == nil {
		clk = clock.New()
	}
	if metrics == nil {
		metrics = types.NoopMetrics{}
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &CacheEngine{
		Expiration:    exp,
		Codec:         cdc,
		Clock:         clk,
		Metrics:       metrics,
		Logger:        logger,
		CurrentTTL:    DefaultCurrentTTL,
		HistoricalTTL: DefaultHistoricalTTL,
	}
}

// Now is the engine's idea of the current time.
func (e *CacheEngine) Now() time.Time {
	return e.Clock.Now()
}

// IsExpired delegates to the configured expiration strategy at the engine's current time.
func (e *CacheEngine) IsExpired(ent *types.CacheEntry) bool {
	return e.Expiration.IsExpired(ent, e.Now())
}

// OnRead is called every time the store returns a live entry.
func (e *CacheEngine) OnRead(ent *types.CacheEntry) {
	e.Expiration.OnAccess(ent, e.Now())
	e.Metrics.Hit(ent.Domain)
}

// OnWrite stamps a new entry before it is stored.
func (e *CacheEngine) OnWrite(ent *types.CacheEntry) {
	e.Expiration.OnWrite(ent, e.Now())
}

// Encode turns a value into the bytes that will be stored.
func (e *CacheEngine) Encode(v any) ([]byte, error) {
	data, err := e.Codec.Marshal(v)
	if err != nil {
		return nil, errs.Join(types.ErrEncoding, errs.Wrapf(err, "encode value with %s", e.Codec.Name()))
	}
	return data, nil
}

// Decode fills dst from stored bytes. A nil dst only checks presence and is not decoded.
func (e *CacheEngine) Decode(data []byte, dst any) error {
	if dst == nil {
		return nil
	}
	if err := e.Codec.Unmarshal(data, dst); err != nil {
		return errs.Join(types.ErrEncoding, errs.Wrapf(err, "decode value with %s", e.Codec.Name()))
	}
	return nil
}

// DefaultTTL returns the TTL used for a domain when the caller does not choose one.
func (e *CacheEngine) DefaultTTL(d types.Domain) time.Duration {
	if d == types.Historical {
		return e.HistoricalTTL
	}
	return e.CurrentTTL
}

// ValidateTTL accepts any positive duration or types.NoExpiration.
func ValidateTTL(ttl time.Duration) error {
	if ttl > 0 || ttl == types.NoExpiration {
		return nil
	}
	return fmt.Errorf("%w: %v (want > 0 or NoExpiration)", types.ErrInvalidTTL, ttl)
}

/*
Remaining returns how long the entry has left, Redis style:

	> 0 : time left before expiration
	-1  : the entry never expires
	-2  : the entry is already expired
*/
func (e *CacheEngine) Remaining(ent *types.CacheEntry) time.Duration {
	if ent.Permanent() {
		return -1
	}
	d := e.Expiration.Deadline(ent).Sub(e.Now())
	if d < 0 {
		return -2
	}
	return d
}
