package eviction_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/krisalay/league-cache/eviction"
)

func newPolicy(t *testing.T, pt eviction.PolicyType) eviction.Policy {
	t.Helper()
	p, err := eviction.NewEvictionPolicy(pt)
	if err != nil {
		t.Fatalf("NewEvictionPolicy(%s) error = %v", pt, err)
	}
	return p
}

func drain(p eviction.Policy) []string {
	var out []string
	for {
		k, ok := p.Evict()
		if !ok {
			return out
		}
		out = append(out, k)
	}
}

func put(p eviction.Policy, keys ...string) {
	for _, k := range keys {
		p.OnPut(k)
	}
}

func TestLRUEvictsUntouchedFirst(t *testing.T) {
	p := newPolicy(t, eviction.LRU)
	put(p, "item_0", "item_1", "item_2", "item_3", "item_4")

	p.OnGet("item_1")
	p.OnGet("item_3")

	want := []string{"item_0", "item_2", "item_4", "item_1", "item_3"}
	if diff := cmp.Diff(want, drain(p)); diff != "" {
		t.Fatalf("eviction order (-want +got):\n%s", diff)
	}
}

func TestLRURePutPromotes(t *testing.T) {
	p := newPolicy(t, eviction.LRU)
	put(p, "a", "b", "c", "a")

	if diff := cmp.Diff([]string{"b", "c", "a"}, drain(p)); diff != "" {
		t.Fatalf("eviction order (-want +got):\n%s", diff)
	}
}

func TestFIFOIgnoresReads(t *testing.T) {
	p := newPolicy(t, eviction.FIFO)
	put(p, "a", "b", "c")
	p.OnGet("a")
	p.OnPut("a")

	if diff := cmp.Diff([]string{"a", "b", "c"}, drain(p)); diff != "" {
		t.Fatalf("eviction order (-want +got):\n%s", diff)
	}
}

func TestLFUEvictsLeastFrequent(t *testing.T) {
	p := newPolicy(t, eviction.LFU)
	put(p, "a", "b", "c")
	p.OnGet("a")
	p.OnGet("a")
	p.OnGet("c")

	// b: 1, c: 2, a: 3
	if diff := cmp.Diff([]string{"b", "c", "a"}, drain(p)); diff != "" {
		t.Fatalf("eviction order (-want +got):\n%s", diff)
	}
}

func TestLFUTieBreaksByAge(t *testing.T) {
	p := newPolicy(t, eviction.LFU)
	put(p, "a", "b", "c")

	if diff := cmp.Diff([]string{"a", "b", "c"}, drain(p)); diff != "" {
		t.Fatalf("eviction order (-want +got):\n%s", diff)
	}
}

func TestRemoveAndReset(t *testing.T) {
	for _, pt := range []eviction.PolicyType{eviction.LRU, eviction.LFU, eviction.FIFO} {
		t.Run(string(pt), func(t *testing.T) {
			p := newPolicy(t, pt)
			put(p, "a", "b", "c")

			p.Remove("b")
			p.Remove("missing")
			if p.Len() != 2 {
				t.Fatalf("Len() = %d after remove, want 2", p.Len())
			}
			if diff := cmp.Diff([]string{"a", "c"}, drain(p)); diff != "" {
				t.Fatalf("eviction order (-want +got):\n%s", diff)
			}

			put(p, "x", "y")
			p.Reset()
			if p.Len() != 0 {
				t.Fatalf("Len() = %d after reset", p.Len())
			}
			if _, ok := p.Evict(); ok {
				t.Fatalf("Evict() on empty policy returned a key")
			}
		})
	}
}

func TestParsePolicyType(t *testing.T) {
	tests := map[string]eviction.PolicyType{
		"":     eviction.LRU,
		"lru":  eviction.LRU,
		" Lfu": eviction.LFU,
		"FIFO": eviction.FIFO,
	}
	for in, want := range tests {
		got, err := eviction.ParsePolicyType(in)
		if err != nil || got != want {
			t.Fatalf("ParsePolicyType(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := eviction.ParsePolicyType("random"); err == nil {
		t.Fatalf("expected error for unknown policy")
	}
	if _, err := eviction.NewEvictionPolicy("random"); err == nil {
		t.Fatalf("expected error from factory for unknown policy")
	}
}
