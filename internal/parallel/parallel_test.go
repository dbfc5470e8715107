package parallel

import (
	"sync/atomic"
	"testing"
)

func TestForEach(t *testing.T) {
	cfg := DefaultConfig()

	var counter int64
	n := 100

	ForEach(n, func(_ int) {
		atomic.AddInt64(&counter, 1)
	}, cfg)

	if counter != int64(n) {
		t.Errorf("Expected %d, got %d", n, counter)
	}
}

func TestForEach_Sequential(t *testing.T) {
	cfg := Config{Enabled: false}

	order := make([]int, 0, 10)
	ForEach(10, func(i int) {
		order = append(order, i)
	}, cfg)

	for i, v := range order {
		if v != i {
			t.Fatalf("sequential order broken at %d: %v", i, order)
		}
	}
}

func TestForEach_EveryIndexOnce(t *testing.T) {
	cfg := DefaultConfig()

	hits := make([]int64, 64)
	ForEach(len(hits), func(i int) {
		atomic.AddInt64(&hits[i], 1)
	}, cfg)

	for i, h := range hits {
		if h != 1 {
			t.Errorf("index %d handled %d times", i, h)
		}
	}
}
