// This file defines how cache entries expire over time.

package expiration

import (
	"fmt"
	"strings"
	"time"

	"github.com/krisalay/league-cache/types"
)

/*
Strategy is the interface that all expiration rules must follow. Instead of hard-coding
expiration logic into the store, we define a strategy so expiration behavior can be swapped easily.

Expiration is evaluated lazily: a strategy is only consulted when an entry is read
(or when a stats snapshot is taken). Nothing runs in the background.
*/
type Strategy interface {

	// IsExpired checks if the entry is expired at the given time.
	IsExpired(*types.CacheEntry, time.Time) bool

	// OnAccess is called whenever a cache entry is read successfully.
	OnAccess(*types.CacheEntry, time.Time)

	// OnWrite is called whenever a cache entry is written or replaced.
	OnWrite(*types.CacheEntry, time.Time)

	// Deadline is the last instant the entry is still valid. Not meaningful for permanent entries.
	Deadline(*types.CacheEntry) time.Time
}

// Kind names a strategy in configuration.
type Kind string

const (
	Fixed   Kind = "fixed"
	Sliding Kind = "sliding"
)

// New returns the strategy for the given kind. An empty kind selects Fixed.
func New(kind Kind) (Strategy, error) {
	switch Kind(strings.ToLower(string(kind))) {
	case "", Fixed:
		return FixedTTL{}, nil
	case Sliding:
		return SlidingTTL{}, nil
	default:
		return nil, fmt.Errorf("unknown expiration strategy %q", kind)
	}
}
