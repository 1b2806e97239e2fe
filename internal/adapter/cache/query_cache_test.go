package cache

import (
	"fmt"
	"testing"
	"time"

	"vidseg/internal/domain"
)

func results(ids ...string) []domain.ScoredSegment {
	out := make([]domain.ScoredSegment, len(ids))
	for i, id := range ids {
		out[i] = domain.ScoredSegment{Segment: domain.Segment{ID: id}, Score: 1.0 - float64(i)*0.1}
	}
	return out
}

func TestCacheGetPut(t *testing.T) {
	c := NewQueryCache(10, time.Minute)

	if _, ok := c.Get("vid1", "query", 5); ok {
		t.Error("expected miss on empty cache")
	}

	c.Put("vid1", "query", 5, results("a", "b"))

	got, ok := c.Get("vid1", "query", 5)
	if !ok {
		t.Fatal("expected hit")
	}
	if len(got) != 2 || got[0].Segment.ID != "a" {
		t.Errorf("unexpected cached results: %+v", got)
	}

	// Different topK is a different key.
	if _, ok := c.Get("vid1", "query", 3); ok {
		t.Error("expected miss for different topK")
	}
	// Different recording is a different key.
	if _, ok := c.Get("vid2", "query", 5); ok {
		t.Error("expected miss for different recording")
	}
}

func TestCacheTTLExpiry(t *testing.T) {
	c := NewQueryCache(10, time.Millisecond)
	c.Put("vid1", "query", 5, results("a"))

	time.Sleep(5 * time.Millisecond)

	if _, ok := c.Get("vid1", "query", 5); ok {
		t.Error("expected expired entry to miss")
	}
	if c.Size() != 0 {
		t.Errorf("expected expired entry evicted, size=%d", c.Size())
	}
}

func TestCacheInvalidateRecording(t *testing.T) {
	c := NewQueryCache(10, time.Minute)
	c.Put("vid1", "query", 5, results("a"))
	c.Put("vid2", "query", 5, results("b"))

	c.InvalidateRecording("vid1")

	if _, ok := c.Get("vid1", "query", 5); ok {
		t.Error("expected invalidated recording to miss")
	}
	if _, ok := c.Get("vid2", "query", 5); !ok {
		t.Error("expected other recording to stay cached")
	}
}

func TestCacheLRUEviction(t *testing.T) {
	c := NewQueryCache(2, time.Minute)

	c.Put("vid1", "q1", 5, results("a"))
	c.Put("vid1", "q2", 5, results("b"))

	// Touch q1 so q2 is the eviction candidate.
	if _, ok := c.Get("vid1", "q1", 5); !ok {
		t.Fatal("expected hit for q1")
	}

	c.Put("vid1", "q3", 5, results("c"))

	if _, ok := c.Get("vid1", "q2", 5); ok {
		t.Error("expected q2 evicted")
	}
	if _, ok := c.Get("vid1", "q1", 5); !ok {
		t.Error("expected q1 retained")
	}
	if _, ok := c.Get("vid1", "q3", 5); !ok {
		t.Error("expected q3 retained")
	}
}

func TestCacheBounded(t *testing.T) {
	c := NewQueryCache(3, time.Minute)
	for i := 0; i < 20; i++ {
		c.Put("vid1", fmt.Sprintf("q%d", i), 5, results("a"))
	}
	if c.Size() > 3 {
		t.Errorf("cache exceeded max size: %d", c.Size())
	}
}
