package cache

import (
	"github.com/krisalay/league-cache/store"
	"github.com/krisalay/league-cache/types"
)

// Re-exported so callers of the root package rarely need to import types or store.
var (
	ErrEncoding      = types.ErrEncoding
	ErrInvalidTTL    = types.ErrInvalidTTL
	ErrEntryTooLarge = types.ErrEntryTooLarge
	ErrNoData        = types.ErrNoData
)

// NoExpiration marks data that stays cached until it is cleared.
const NoExpiration = types.NoExpiration

type (
	Stats      = store.Stats
	Loader     = types.Loader
	LoaderFunc = types.LoaderFunc
)
