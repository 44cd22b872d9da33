package types

import "errors"

// A miss is not an error: lookups report absence with a false flag.
var (
	// ErrEncoding means a value could not be encoded on write or decoded on read.
	// Nothing is stored when a write fails this way.
	ErrEncoding = errors.New("cache: encoding failure")

	// ErrInvalidTTL means a TTL that is neither positive nor NoExpiration.
	ErrInvalidTTL = errors.New("cache: invalid ttl")

	// ErrEntryTooLarge means a current entry is bigger than the whole memory budget.
	ErrEntryTooLarge = errors.New("cache: entry exceeds size limit")

	// ErrNoData means a read-through loader returned nothing to cache.
	ErrNoData = errors.New("cache: loader returned no data")
)
