// Package parallel provides the bounded concurrent fan-out the pass engine
// uses to rewrite independent routines. The passes themselves are purely
// compile-time; the only concurrency here is the engine's own.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls the engine's fan-out.
type Config struct {
	Enabled    bool // run routines concurrently
	NumWorkers int  // upper bound on in-flight routines
}

// DefaultConfig sizes the fan-out to the host CPU count.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:    n > 1,
		NumWorkers: n,
	}
}

// ForEach executes f(i) for i in [0, n). Each index is handled exactly once;
// with parallelism disabled or a single item the calls run sequentially in
// order.
func ForEach(n int, f func(i int), cfg Config) {
	if !cfg.Enabled || n < 2 || cfg.NumWorkers < 2 {
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}

	sem := make(chan struct{}, cfg.NumWorkers)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			f(i)
		}(i)
	}
	wg.Wait()
}
