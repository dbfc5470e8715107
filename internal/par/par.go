// Package par implements the loop-nest parallelization pass family: deciding
// which loops of an IET run concurrently, how they are collapsed, scheduled
// and chunked, how reductions and thread-private storage are realized, how
// nested parallelism is introduced, and how nests are offloaded to an
// accelerator with explicit data-movement directives.
package par

import (
	"fmt"

	"github.com/stencil-lang/stencil/internal/expr"
	"github.com/stencil-lang/stencil/internal/ir"
	"github.com/stencil-lang/stencil/internal/lang"
	"github.com/stencil-lang/stencil/internal/platform"
	"github.com/stencil-lang/stencil/internal/registry"
)

// Target selects host shared-memory parallelism or device offload.
type Target int

const (
	Host Target = iota
	Device
)

// NodeBuilders is the capability table of constructors the pass uses to
// materialize parallel nodes. Dialects or tests may substitute entries.
type NodeBuilders struct {
	// Region wraps a parallel tree in a region boundary.
	Region func(tree *ir.ParallelTree) ir.Node

	// Prodder rewrites a progress-check callback for thread safety.
	Prodder func(p *ir.Prodder) *ir.Prodder
}

// DefaultBuilders returns the stock constructors.
func DefaultBuilders() NodeBuilders {
	return NodeBuilders{
		Region: func(tree *ir.ParallelTree) ir.Node {
			return &ir.ParallelRegion{NThreads: tree.NThreads, Tree: tree}
		},
		Prodder: func(p *ir.Prodder) *ir.Prodder {
			c := *p
			c.ThreadSafe = true
			return &c
		},
	}
}

// Config assembles a Parallelizer.
type Config struct {
	Options  Options
	Platform platform.Platform
	Registry *registry.SymbolRegistry
	Lang     lang.Constructs
	Target   Target
	Builders *NodeBuilders // nil selects DefaultBuilders
}

// Parallelizer runs the parallelization pass family over IETs.
type Parallelizer struct {
	opts     Options
	plat     platform.Platform
	reg      *registry.SymbolRegistry
	lang     lang.Constructs
	target   Target
	builders NodeBuilders
}

// New validates cfg and returns a ready Parallelizer.
func New(cfg Config) (*Parallelizer, error) {
	if cfg.Registry == nil {
		return nil, fmt.Errorf("par: nil symbol registry")
	}
	if cfg.Lang == nil {
		return nil, fmt.Errorf("par: nil dialect construct table")
	}
	builders := DefaultBuilders()
	if cfg.Builders != nil {
		builders = *cfg.Builders
	}
	return &Parallelizer{
		opts:     cfg.Options,
		plat:     cfg.Platform,
		reg:      cfg.Registry,
		lang:     cfg.Lang,
		target:   cfg.Target,
		builders: builders,
	}, nil
}

// key is the parallel-candidacy predicate: relaxed-parallel and not already
// vectorized.
func (p *Parallelizer) key(i *ir.Iteration) bool {
	return i.Props.IsParallelRelaxed() && !i.Props.Has(ir.Vectorized)
}

func (p *Parallelizer) nthreads() expr.Symbol          { return p.reg.NThreads() }
func (p *Parallelizer) nthreadsNested() expr.Symbol    { return p.reg.NThreadsNested() }
func (p *Parallelizer) nthreadsNonaffine() expr.Symbol { return p.reg.NThreadsNonaffine() }
func (p *Parallelizer) threadID() expr.Symbol          { return p.reg.ThreadID() }
