// Package registry hands out the well-known symbols the parallelization
// passes reference (thread counts, the thread index) and fresh names for
// pass-introduced temporaries. One registry serves one compilation.
package registry

import (
	"fmt"
	"sync"

	"github.com/stencil-lang/stencil/internal/expr"
)

// SymbolRegistry owns the symbol namespace of one compilation. It is safe
// for concurrent use: the pass engine rewrites routines in parallel.
type SymbolRegistry struct {
	nthreads          expr.Symbol
	nthreadsNested    expr.Symbol
	nthreadsNonaffine expr.Symbol
	threadID          expr.Symbol

	threadCounts map[string]bool

	mu       sync.Mutex
	counters map[string]int
}

// New returns a registry with the stable well-known symbols minted.
func New() *SymbolRegistry {
	r := &SymbolRegistry{
		nthreads:          expr.Symbol{Name: "nthreads"},
		nthreadsNested:    expr.Symbol{Name: "nthreads_nested"},
		nthreadsNonaffine: expr.Symbol{Name: "nthreads_nonaffine"},
		threadID:          expr.Symbol{Name: "tid"},
		counters:          make(map[string]int),
	}
	r.threadCounts = map[string]bool{
		r.nthreads.Name:          true,
		r.nthreadsNested.Name:    true,
		r.nthreadsNonaffine.Name: true,
	}
	return r
}

// NThreads is the thread-count symbol governing outermost parallel regions.
func (r *SymbolRegistry) NThreads() expr.Symbol { return r.nthreads }

// NThreadsNested governs second-level (nested) parallel regions.
func (r *SymbolRegistry) NThreadsNested() expr.Symbol { return r.nthreadsNested }

// NThreadsNonaffine governs regions built around non-affine nests.
func (r *SymbolRegistry) NThreadsNonaffine() expr.Symbol { return r.nthreadsNonaffine }

// ThreadID is the current-thread-index symbol.
func (r *SymbolRegistry) ThreadID() expr.Symbol { return r.threadID }

// IsThreadCount reports whether s is one of the registry's thread-count
// symbols. These become formal arguments of the rewritten routine.
func (r *SymbolRegistry) IsThreadCount(s expr.Symbol) bool {
	return r.threadCounts[s.Name]
}

// MakeName returns a fresh name derived from prefix, unique within this
// registry.
func (r *SymbolRegistry) MakeName(prefix string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := r.counters[prefix]
	r.counters[prefix] = n + 1
	if n == 0 {
		return prefix
	}
	return fmt.Sprintf("%s%d", prefix, n)
}
