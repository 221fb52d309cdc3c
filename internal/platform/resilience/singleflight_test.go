package resilience

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestGroup_DoRunsOncePerKey(t *testing.T) {
	var g Group[string]
	var counter atomic.Int32

	const workers = 20
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)

	results := make(chan string, workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			value, err, _ := g.Do("leagues", func() (string, error) {
				counter.Add(1)
				time.Sleep(20 * time.Millisecond)
				return "ok", nil
			})
			if err != nil {
				t.Errorf("singleflight call failed: %v", err)
			}
			results <- value
		}()
	}

	close(start)
	wg.Wait()
	close(results)

	if got := counter.Load(); got != 1 {
		t.Fatalf("expected function to run once, got %d", got)
	}
	for value := range results {
		if value != "ok" {
			t.Fatalf("expected shared value ok, got %q", value)
		}
	}
}

func TestGroup_DoPropagatesErrorWithZeroValue(t *testing.T) {
	var g Group[[]int]
	boom := errors.New("boom")

	value, err, _ := g.Do("fixtures:2026-10-16", func() ([]int, error) {
		return nil, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if value != nil {
		t.Fatalf("expected nil value on error, got %v", value)
	}
}

func TestGroup_DistinctKeysRunIndependently(t *testing.T) {
	var g Group[int]
	var counter atomic.Int32

	for _, key := range []string{"match:1", "match:2", "match:3"} {
		if _, err, _ := g.Do(key, func() (int, error) {
			return int(counter.Add(1)), nil
		}); err != nil {
			t.Fatalf("do %s: %v", key, err)
		}
	}
	if got := counter.Load(); got != 3 {
		t.Fatalf("expected three executions, got %d", got)
	}
}
