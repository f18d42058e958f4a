package catalog

import (
	"context"
	"testing"
	"time"
)

func TestMemoryCacheSetGet(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	if _, ok := c.Get(ctx, "missing"); ok {
		t.Error("expected miss on empty cache")
	}

	c.Set(ctx, "k", []byte("v"), time.Minute)
	got, ok := c.Get(ctx, "k")
	if !ok || string(got) != "v" {
		t.Errorf("expected hit with %q, got %q ok=%v", "v", got, ok)
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	now := time.Now()
	c.now = func() time.Time { return now }

	c.Set(ctx, "k", []byte("v"), 5*time.Minute)

	now = now.Add(4 * time.Minute)
	if _, ok := c.Get(ctx, "k"); !ok {
		t.Error("entry expired before its TTL")
	}

	now = now.Add(2 * time.Minute)
	if _, ok := c.Get(ctx, "k"); ok {
		t.Error("entry survived past its TTL")
	}
}

func TestMemoryCacheTagInvalidation(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	c.Set(ctx, "list", []byte("a"), time.Minute, TagProjects)
	c.Set(ctx, "options", []byte("b"), time.Minute, TagProjects, "filter-options")
	c.Set(ctx, "other", []byte("c"), time.Minute, "unrelated")

	c.Invalidate(ctx, TagProjects)

	if _, ok := c.Get(ctx, "list"); ok {
		t.Error("tagged entry survived invalidation")
	}
	if _, ok := c.Get(ctx, "options"); ok {
		t.Error("multi-tagged entry survived invalidation")
	}
	if _, ok := c.Get(ctx, "other"); !ok {
		t.Error("unrelated entry was invalidated")
	}
}

func TestMemoryCacheZeroTTL(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	c.Set(ctx, "k", []byte("v"), 0)
	if _, ok := c.Get(ctx, "k"); ok {
		t.Error("zero TTL must not cache")
	}
}

func TestNopCache(t *testing.T) {
	ctx := context.Background()
	var c Cache = NopCache{}

	c.Set(ctx, "k", []byte("v"), time.Minute, TagProjects)
	if _, ok := c.Get(ctx, "k"); ok {
		t.Error("NopCache must never hit")
	}
	c.Invalidate(ctx, TagProjects)
}
