package cache

import (
	"testing"
	"time"

	"FinGrade/internal/domain/models"
)

func result(id string) *models.CompanyResult {
	return &models.CompanyResult{CompanyID: id, Success: true}
}

func TestResultCacheSetGet(t *testing.T) {
	c := NewResultCache(10)
	c.Set("a:1", result("a"), 0)

	got, ok := c.Get("a:1")
	if !ok || got.CompanyID != "a" {
		t.Fatalf("expected hit for a:1")
	}
	if _, ok := c.Get("missing"); ok {
		t.Fatalf("expected miss")
	}
	if c.Len() != 1 {
		t.Fatalf("len = %d, want 1", c.Len())
	}
}

func TestResultCacheTTLExpiry(t *testing.T) {
	c := NewResultCache(10)
	c.Set("a:1", result("a"), time.Millisecond)
	time.Sleep(10 * time.Millisecond)
	if _, ok := c.Get("a:1"); ok {
		t.Fatalf("expected expired entry to miss")
	}
	if c.Len() != 0 {
		t.Fatalf("expired entry must be dropped, len = %d", c.Len())
	}
}

func TestResultCacheEvictsOldest(t *testing.T) {
	c := NewResultCache(2)
	c.Set("a:1", result("a"), 0)
	c.Set("b:1", result("b"), 0)
	c.Set("c:1", result("c"), 0)

	if _, ok := c.Get("a:1"); ok {
		t.Fatalf("oldest entry must be evicted")
	}
	if _, ok := c.Get("b:1"); !ok {
		t.Fatalf("expected b:1 to survive")
	}
	if _, ok := c.Get("c:1"); !ok {
		t.Fatalf("expected c:1 to survive")
	}
}

func TestResultCacheOverwriteKeepsLen(t *testing.T) {
	c := NewResultCache(2)
	c.Set("a:1", result("a"), 0)
	c.Set("a:1", result("a2"), 0)
	if c.Len() != 1 {
		t.Fatalf("len = %d, want 1", c.Len())
	}
	got, _ := c.Get("a:1")
	if got.CompanyID != "a2" {
		t.Fatalf("overwrite did not take effect")
	}
}

func TestResultCachePurge(t *testing.T) {
	c := NewResultCache(10)
	c.Set("a:1", result("a"), 0)
	c.Set("b:1", result("b"), 0)
	c.Purge()
	if c.Len() != 0 {
		t.Fatalf("purge must empty the cache, len = %d", c.Len())
	}
}
