// This file implements FIFO eviction.

package eviction

type fifo struct {
	// queue keeps keys in the order they were inserted.
	// The front of the queue (index 0) is the oldest key.
	queue []string

	// set keeps track of which keys are currently in the queue.
	set map[string]struct{}
}

func newFIFO() *fifo {
	return &fifo{set: make(map[string]struct{})}
}

// OnGet is a no-op: FIFO ignores reads completely.
func (f *fifo) OnGet(string) {}

// OnPut appends a new key. A key already queued keeps its place.
func (f *fifo) OnPut(k string) {
	if _, ok := f.set[k]; ok {
		return
	}
	f.queue = append(f.queue, k)
	f.set[k] = struct{}{}
}

// Evict pops the oldest key.
func (f *fifo) Evict() (string, bool) {
	if len(f.queue) == 0 {
		return "", false
	}
	k := f.queue[0]
	f.queue[0] = ""
	f.queue = f.queue[1:]
	delete(f.set, k)
	return k, true
}

// Remove drops a key while preserving the order of the rest.
func (f *fifo) Remove(k string) {
	if _, ok := f.set[k]; !ok {
		return
	}
	delete(f.set, k)

	for i, v := range f.queue {
		if v == k {
			f.queue = append(f.queue[:i], f.queue[i+1:]...)
			break
		}
	}
}

func (f *fifo) Len() int {
	return len(f.queue)
}

func (f *fifo) Reset() {
	f.queue = nil
	f.set = make(map[string]struct{})
}
