package cache

import (
	"strconv"
	"testing"
	"time"
)

func TestTTLExpiresEntries(t *testing.T) {
	t.Parallel()

	now := time.Unix(1000, 0)
	c := NewTTL[string](time.Second)
	c.now = func() time.Time { return now }

	c.Put("sess-1", "vera")
	if got, ok := c.Get("sess-1"); !ok || got != "vera" {
		t.Fatalf("Get = %q, %v", got, ok)
	}
	now = now.Add(time.Second)
	if _, ok := c.Get("sess-1"); ok {
		t.Fatal("entry must expire at its deadline")
	}
	if c.Len() != 0 {
		t.Fatalf("expired entry must be dropped on read, len = %d", c.Len())
	}
}

func TestTTLInvalidate(t *testing.T) {
	t.Parallel()

	c := NewTTL[int](time.Minute)
	c.Put("a", 1)
	c.Invalidate("a")
	if _, ok := c.Get("a"); ok {
		t.Fatal("invalidated entry must be gone")
	}
}

func TestTTLDisabled(t *testing.T) {
	t.Parallel()

	c := NewTTL[int](0)
	c.Put("a", 1)
	if _, ok := c.Get("a"); ok {
		t.Fatal("zero ttl must disable caching")
	}

	var nilCache *TTL[int]
	nilCache.Put("a", 1)
	nilCache.Invalidate("a")
	if _, ok := nilCache.Get("a"); ok || nilCache.Len() != 0 {
		t.Fatal("nil cache must be inert")
	}
}

func TestTTLBoundsSize(t *testing.T) {
	t.Parallel()

	c := NewTTL[int](time.Minute)
	for i := 0; i < maxEntries+10; i++ {
		c.Put(strconv.Itoa(i), i)
	}
	if c.Len() > maxEntries {
		t.Fatalf("len = %d, want <= %d", c.Len(), maxEntries)
	}
	if got, ok := c.Get(strconv.Itoa(maxEntries + 9)); !ok || got != maxEntries+9 {
		t.Fatal("latest entry must survive eviction")
	}
}
