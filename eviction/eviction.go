package eviction

import (
	"fmt"
	"strings"
)

/*
This file defines how the cache decides what to remove when it runs over its memory budget.
*/

/*
Policy is the interface that all eviction strategies must follow.

The store only ever hands current-domain keys to a policy. Historical entries are
never tracked here, which is what keeps them safe from eviction no matter how much
memory pressure there is.

Policies are not safe for concurrent use; the store calls them under its own lock.
*/
type Policy interface {

	// OnGet is called whenever a tracked key is read successfully.
	// LRU promotes it, LFU counts it, FIFO ignores it.
	OnGet(string)

	// OnPut is called when a key starts being tracked.
	OnPut(string)

	// Remove is called when a key leaves the store for any reason other than
	// being chosen by Evict (delete, clear, expiry, overwrite).
	Remove(string)

	// Evict picks the next victim, stops tracking it and returns it.
	// It returns false when there is nothing left to evict.
	Evict() (string, bool)

	// Len returns how many keys are tracked.
	Len() int

	// Reset drops every tracked key.
	Reset()
}

// PolicyType is a simple identifier for supported eviction strategies.
type PolicyType string

const (
	// LRU (Least Recently Used): Evicts the key that has NOT been accessed for the longest time.
	LRU PolicyType = "LRU"

	// LFU (Least Frequently Used): Evicts the key that has been accessed the fewest times.
	// Ties go to the key touched longest ago.
	LFU PolicyType = "LFU"

	// FIFO (First In First Out): Evicts the oldest inserted key, regardless of access.
	FIFO PolicyType = "FIFO"
)

// ParsePolicyType accepts a policy name in any case. Empty selects LRU.
func ParsePolicyType(s string) (PolicyType, error) {
	switch t := PolicyType(strings.ToUpper(strings.TrimSpace(s))); t {
	case "":
		return LRU, nil
	case LRU, LFU, FIFO:
		return t, nil
	default:
		return "", fmt.Errorf("unknown eviction policy %q", s)
	}
}

// NewEvictionPolicy is a small factory function.
// Given a PolicyType, it creates the correct eviction policy.
func NewEvictionPolicy(t PolicyType) (Policy, error) {
	switch t {
	case LRU:
		return newLRU(), nil
	case LFU:
		return newLFU(), nil
	case FIFO:
		return newFIFO(), nil
	default:
		return nil, fmt.Errorf("unknown eviction policy %q", t)
	}
}
