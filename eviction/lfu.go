// This file implements LFU eviction.

package eviction

// lfuNode represents one key tracked by LFU.
type lfuNode struct {
	key  string // cache key
	freq int    // how many times this key was written or read
	seq  uint64 // logical time of the last touch, breaks ties between equal frequencies
}

type lfu struct {
	// nodes lets us quickly find the node for a key
	nodes map[string]*lfuNode

	// freqMap groups keys by how many times they were accessed.
	// Empty buckets are deleted, so the smallest key is always a live frequency.
	freqMap map[int]map[string]*lfuNode

	clock uint64
}

func newLFU() *lfu {
	return &lfu{
		nodes:   make(map[string]*lfuNode),
		freqMap: make(map[int]map[string]*lfuNode),
	}
}

// OnGet bumps the key's frequency.
func (l *lfu) OnGet(k string) {
	n, ok := l.nodes[k]
	if !ok {
		return
	}
	l.unlink(n)
	n.freq++
	n.seq = l.tick()
	l.link(n)
}

// OnPut starts tracking a key with frequency 1.
func (l *lfu) OnPut(k string) {
	if _, ok := l.nodes[k]; ok {
		return
	}
	n := &lfuNode{key: k, freq: 1, seq: l.tick()}
	l.nodes[k] = n
	l.link(n)
}

// Evict removes the least frequently used key; among equals, the one touched longest ago.
func (l *lfu) Evict() (string, bool) {
	if len(l.nodes) == 0 {
		return "", false
	}

	minFreq := -1
	for f := range l.freqMap {
		if minFreq == -1 || f < minFreq {
			minFreq = f
		}
	}

	var victim *lfuNode
	for _, n := range l.freqMap[minFreq] {
		if victim == nil || n.seq < victim.seq {
			victim = n
		}
	}

	l.unlink(victim)
	delete(l.nodes, victim.key)
	return victim.key, true
}

func (l *lfu) Remove(k string) {
	n, ok := l.nodes[k]
	if !ok {
		return
	}
	l.unlink(n)
	delete(l.nodes, k)
}

func (l *lfu) Len() int {
	return len(l.nodes)
}

func (l *lfu) Reset() {
	l.nodes = make(map[string]*lfuNode)
	l.freqMap = make(map[int]map[string]*lfuNode)
}

func (l *lfu) tick() uint64 {
	l.clock++
	return l.clock
}

func (l *lfu) link(n *lfuNode) {
	bucket := l.freqMap[n.freq]
	if bucket == nil {
		bucket = make(map[string]*lfuNode)
		l.freqMap[n.freq] = bucket
	}
	bucket[n.key] = n
}

func (l *lfu) unlink(n *lfuNode) {
	bucket := l.freqMap[n.freq]
	delete(bucket, n.key)
	if len(bucket) == 0 {
		delete(l.freqMap, n.freq)
	}
}
