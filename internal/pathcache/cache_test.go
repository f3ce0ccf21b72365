package pathcache

import (
	"sync"
	"testing"
)

func TestNilCache(t *testing.T) {
	var c *Cache[int, string]
	if New[int, string](0) != nil {
		t.Error("New(0) should return nil")
	}
	calls := 0
	v, hit := c.GetOrCreate(1, func() string { calls++; return "x" })
	if v != "x" || hit || calls != 1 || c.Len() != 0 {
		t.Errorf("GetOrCreate on nil = %q, %v (calls %d)", v, hit, calls)
	}
	if c.Stats() != (Stats{}) {
		t.Error("nil cache stats should be zero")
	}
}

func TestGetOrCreate(t *testing.T) {
	c := New[uint64, int](2)
	calls := 0
	mk := func(v int) func() int {
		return func() int { calls++; return v }
	}

	if v, hit := c.GetOrCreate(1, mk(10)); v != 10 || hit {
		t.Errorf("first = %d, %v", v, hit)
	}
	if v, hit := c.GetOrCreate(1, mk(99)); v != 10 || !hit {
		t.Errorf("second = %d, %v; want cached 10", v, hit)
	}
	if calls != 1 {
		t.Errorf("create called %d times, want 1", calls)
	}
}

func TestEviction(t *testing.T) {
	c := New[int, int](2)
	value := func(v int) func() int { return func() int { return v } }

	c.GetOrCreate(1, value(1))
	c.GetOrCreate(2, value(2))
	c.GetOrCreate(1, value(-1)) // 2 is now the oldest
	c.GetOrCreate(3, value(3))

	if v, hit := c.GetOrCreate(1, value(-1)); !hit || v != 1 {
		t.Errorf("entry 1 = %d, %v; want cached 1", v, hit)
	}
	if v, hit := c.GetOrCreate(3, value(-3)); !hit || v != 3 {
		t.Errorf("entry 3 = %d, %v; want cached 3", v, hit)
	}

	s := c.Stats()
	if s.Len != 2 || s.Capacity != 2 || s.Evictions != 1 {
		t.Errorf("stats = %+v", s)
	}
	if s.Hits != 3 || s.Misses != 3 {
		t.Errorf("hits = %d, misses = %d; want 3 and 3", s.Hits, s.Misses)
	}
	if r := s.HitRate(); r != 0.5 {
		t.Errorf("HitRate() = %v, want 0.5", r)
	}

	if _, hit := c.GetOrCreate(2, value(2)); hit {
		t.Error("least recently used entry survived")
	}
}

func TestConcurrentAccess(t *testing.T) {
	c := New[int, int](8)
	var wg sync.WaitGroup
	for g := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 100 {
				k := (g + i) % 16
				v, _ := c.GetOrCreate(k, func() int { return k * k })
				if v != k*k {
					t.Errorf("value for %d = %d", k, v)
				}
			}
		}()
	}
	wg.Wait()
	if c.Len() > 8 {
		t.Errorf("Len() = %d exceeds capacity", c.Len())
	}
}

func TestRotationKey(t *testing.T) {
	tests := []struct {
		a, b float64
		same bool
	}{
		{0, 360, true},
		{0.3, 360.3, true},
		{-90, 270, true},
		{359.9999999, 0, true},
		{10, 10.001, false},
		{0.3, 0.6, false},
	}
	for _, tt := range tests {
		if got := RotationKey(tt.a) == RotationKey(tt.b); got != tt.same {
			t.Errorf("RotationKey(%v) == RotationKey(%v) is %v, want %v", tt.a, tt.b, got, tt.same)
		}
	}
}
