// This file implements LRU eviction.

package eviction

import (
	"math"

	"github.com/hashicorp/golang-lru/v2/simplelru"
)

// lru keeps recency order in a simplelru list. The list is given an effectively
// unlimited size: the store decides when to evict (by bytes, not by count), the
// list only answers "who is the least recently used key".
type lru struct {
	list *simplelru.LRU[string, struct{}]
}

func newLRU() *lru {
	l, err := simplelru.NewLRU[string, struct{}](math.MaxInt, nil)
	if err != nil {
		// Only possible for a non-positive size.
		panic(err)
	}
	return &lru{list: l}
}

// OnGet moves the key to the front (most recently used).
func (l *lru) OnGet(k string) {
	l.list.Get(k)
}

// OnPut adds the key at the front. Re-adding an existing key also promotes it.
func (l *lru) OnPut(k string) {
	l.list.Add(k, struct{}{})
}

// Evict removes the least recently used key, which sits at the back of the list.
func (l *lru) Evict() (string, bool) {
	k, _, ok := l.list.RemoveOldest()
	return k, ok
}

func (l *lru) Remove(k string) {
	l.list.Remove(k)
}

func (l *lru) Len() int {
	return l.list.Len()
}

func (l *lru) Reset() {
	l.list.Purge()
}
