package cache

import (
	"sync"
	"testing"
	"time"
)

func TestCache_GetSet(t *testing.T) {
	c := New[string, int](Config{MaxItems: 4})

	if _, ok := c.Get("a"); ok {
		t.Fatal("Get() on empty cache reported a hit")
	}
	c.Set("a", 1)
	c.Set("b", 2)

	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Errorf("Get(a) = %v, %v; want 1, true", v, ok)
	}
	if c.Size() != 2 {
		t.Errorf("Size() = %d, want 2", c.Size())
	}

	if _, ok := c.Get("c"); ok {
		t.Error("unknown key reported as present")
	}

	hits, misses, rate := c.Stats()
	if hits != 1 || misses != 2 {
		t.Errorf("Stats() = %d hits, %d misses; want 1, 2", hits, misses)
	}
	if rate < 33 || rate > 34 {
		t.Errorf("hit rate = %.2f, want ~33.3", rate)
	}
}

func TestCache_EvictsOldest(t *testing.T) {
	c := New[int, string](Config{MaxItems: 2})
	c.Set(1, "one")
	c.Set(2, "two")
	c.Set(1, "uno") // overwrite does not evict
	if c.Size() != 2 {
		t.Fatalf("Size() = %d after overwrite, want 2", c.Size())
	}

	c.Set(3, "three")
	if _, ok := c.Get(2); ok {
		t.Error("oldest entry 2 was not evicted")
	}
	for _, k := range []int{1, 3} {
		if _, ok := c.Get(k); !ok {
			t.Errorf("entry %d evicted", k)
		}
	}
}

func TestCache_TTL(t *testing.T) {
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	c := New[string, int](Config{MaxItems: 4, TTL: time.Minute})
	c.now = func() time.Time { return now }

	c.Set("a", 1)
	now = now.Add(30 * time.Second)
	if _, ok := c.Get("a"); !ok {
		t.Fatal("entry expired early")
	}

	now = now.Add(time.Minute)
	if _, ok := c.Get("a"); ok {
		t.Error("expired entry returned")
	}
	if c.Size() != 0 {
		t.Errorf("expired entry kept, Size() = %d", c.Size())
	}
}

func TestCache_Concurrent(t *testing.T) {
	c := New[int, int](Config{MaxItems: 16})
	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range 100 {
				c.Set((i*100+j)%32, j)
				c.Get(j % 32)
			}
		}()
	}
	wg.Wait()

	if c.Size() > 16 {
		t.Errorf("Size() = %d, exceeds bound 16", c.Size())
	}
}
