package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestCache_SetAndGet(t *testing.T) {
	c := New(1 * time.Second)

	c.Set("key1", "value1")

	val, found := c.Get("key1")
	if !found {
		t.Error("Expected to find key1")
	}
	if val != "value1" {
		t.Errorf("Expected value1, got %v", val)
	}
}

func TestCache_Expiration(t *testing.T) {
	c := New(100 * time.Millisecond)

	c.Set("key1", "value1")

	// Should exist immediately
	_, found := c.Get("key1")
	if !found {
		t.Error("Expected to find key1 immediately")
	}

	// Wait for expiration
	time.Sleep(150 * time.Millisecond)

	_, found = c.Get("key1")
	if found {
		t.Error("Expected key1 to be expired")
	}
}

func TestCache_Invalidate(t *testing.T) {
	c := New(1 * time.Second)

	c.Set("key1", "value1")
	c.Invalidate("key1")

	_, found := c.Get("key1")
	if found {
		t.Error("Expected key1 to be invalidated")
	}
}

func TestCache_InvalidateLeavesOtherKeys(t *testing.T) {
	c := New(1 * time.Second)

	c.Set("key1", "value1")
	c.Set("key2", "value2")
	c.Invalidate("key1")

	if _, found := c.Get("key2"); !found {
		t.Error("Expected key2 to survive invalidation of key1")
	}
}

func TestCache_GetOrFetch_PopulatesOnMiss(t *testing.T) {
	c := New(1 * time.Second)

	val, err := c.GetOrFetch(context.Background(), "key1", func(context.Context) (interface{}, error) {
		return "fetched", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if val != "fetched" {
		t.Errorf("Expected fetched, got %v", val)
	}

	// Cached now; a failing fetcher must not run.
	val, err = c.GetOrFetch(context.Background(), "key1", func(context.Context) (interface{}, error) {
		t.Error("fetch ran despite a fresh cache entry")
		return nil, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if val != "fetched" {
		t.Errorf("Expected fetched, got %v", val)
	}
}

func TestCache_GetOrFetch_RefetchesAfterInvalidate(t *testing.T) {
	c := New(1 * time.Second)

	var calls int32
	fetch := func(context.Context) (interface{}, error) {
		return atomic.AddInt32(&calls, 1), nil
	}

	if _, err := c.GetOrFetch(context.Background(), "key1", fetch); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c.Invalidate("key1")
	if _, err := c.GetOrFetch(context.Background(), "key1", fetch); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Errorf("Expected 2 fetches around invalidation, got %d", got)
	}
}

func TestCache_GetOrFetch_DeduplicatesConcurrentFetches(t *testing.T) {
	c := New(1 * time.Second)

	var calls int32
	fetch := func(context.Context) (interface{}, error) {
		atomic.AddInt32(&calls, 1)
		time.Sleep(50 * time.Millisecond)
		return "shared", nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			val, err := c.GetOrFetch(context.Background(), "key1", fetch)
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if val != "shared" {
				t.Errorf("Expected shared, got %v", val)
			}
		}()
	}
	wg.Wait()

	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("Expected concurrent reads to converge on 1 fetch, got %d", got)
	}
}

func TestCache_GetOrFetch_ErrorsAreNotCached(t *testing.T) {
	c := New(1 * time.Second)

	fetchErr := errors.New("boom")
	_, err := c.GetOrFetch(context.Background(), "key1", func(context.Context) (interface{}, error) {
		return nil, fetchErr
	})
	if !errors.Is(err, fetchErr) {
		t.Fatalf("expected fetch error, got %v", err)
	}

	if _, found := c.Get("key1"); found {
		t.Error("Expected nothing cached after a failed fetch")
	}

	// Next read goes back to the fetcher.
	val, err := c.GetOrFetch(context.Background(), "key1", func(context.Context) (interface{}, error) {
		return "recovered", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if val != "recovered" {
		t.Errorf("Expected recovered, got %v", val)
	}
}

func TestCache_LastWriteWins(t *testing.T) {
	c := New(1 * time.Second)

	c.Set("key1", "first")
	c.Set("key1", "second")

	val, _ := c.Get("key1")
	if val != "second" {
		t.Errorf("Expected second write to win, got %v", val)
	}
}
