// Package keys derives cache keys for league data.
//
// Keys are plain, human-readable strings. Domain-specific keys carry their
// domain as the first segment so current and historical data can never share
// a key, and every caller-supplied segment is path-escaped so a "/" inside a
// league ID cannot shift the segment boundaries.
package keys

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/krisalay/league-cache/types"
)

// Separator joins key segments.
const Separator = "/"

const (
	currentPrefix    = "current"
	historicalPrefix = "historical"
)

// CurrentKey builds the key for in-season data of a league endpoint.
func CurrentKey(sport, leagueID, endpoint string) string {
	return join(currentPrefix, sport, leagueID, endpoint)
}

// HistoricalKey builds the key for a finished season of a league endpoint.
func HistoricalKey(sport, season, leagueID, endpoint string) string {
	return join(historicalPrefix, sport, season, leagueID, endpoint)
}

// DomainOf reports which domain a key built by this package belongs to.
// Keys built elsewhere (Build, or raw keys such as a bare "historical") return false.
func DomainOf(key string) (types.Domain, bool) {
	switch {
	case strings.HasPrefix(key, currentPrefix+Separator):
		return types.Current, true
	case strings.HasPrefix(key, historicalPrefix+Separator):
		return types.Historical, true
	default:
		return 0, false
	}
}

/*
Build produces a key for auxiliary categories (player lookups, game IDs, ...).

	Build("roster", map[string]any{"team_id": 3, "league_id": "42"}, "2023")
	// roster/league_id:42/team_id:3/season:2023

Identifiers are sorted by name, nil values are skipped, and season is appended
only when non-empty.
*/
func Build(category string, identifiers map[string]any, season string) string {
	names := make([]string, 0, len(identifiers))
	for name, value := range identifiers {
		if value == nil {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names)+2)
	parts = append(parts, category)
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s:%v", name, identifiers[name]))
	}
	if season != "" {
		parts = append(parts, "season:"+season)
	}
	return strings.Join(parts, Separator)
}

func join(prefix string, segments ...string) string {
	var b strings.Builder
	b.WriteString(prefix)
	for _, s := range segments {
		b.WriteString(Separator)
		b.WriteString(url.PathEscape(s))
	}
	return b.String()
}
