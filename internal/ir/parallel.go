package ir

import (
	"github.com/stencil-lang/stencil/internal/expr"
)

// ParallelIteration annotates a loop for host shared-memory execution.
// The wrapped Iteration keeps the original bounds and body.
type ParallelIteration struct {
	It        *Iteration
	Schedule  string      // "static" or "dynamic"
	Chunk     expr.Expr   // nil means chunk size 1
	NCollapse int         // collapse degree, >= 1
	NThreads  expr.Symbol // set only for combined parallel-for (nested level)
	Parallel  bool        // emits a combined parallel-for construct
	Reduction []string    // declared reduction targets
}

// DeviceIteration annotates a loop for accelerator offload. It carries no
// host scheduling metadata.
type DeviceIteration struct {
	It        *Iteration
	NCollapse int
	KnownFit  []string // buffers declared to fit in device memory
	Reduction []string
}

// ParallelTree is one parallel unit: an annotated root loop plus the
// prologue statements that must execute before it.
type ParallelTree struct {
	Prefix   []Node
	Root     Node // *ParallelIteration or *DeviceIteration
	NThreads expr.Symbol
}

// ParallelRegion is the region boundary a host parallel tree executes in.
type ParallelRegion struct {
	NThreads expr.Symbol
	Tree     *ParallelTree
}

func (*ParallelIteration) isNode() {}
func (*DeviceIteration) isNode()   {}
func (*ParallelTree) isNode()      {}
func (*ParallelRegion) isNode()    {}

// RootIteration returns the loop the tree's root annotation wraps.
func (t *ParallelTree) RootIteration() *Iteration {
	switch r := t.Root.(type) {
	case *ParallelIteration:
		return r.It
	case *DeviceIteration:
		return r.It
	}
	return nil
}

// NCollapsed returns the collapse degree of the root annotation.
func (t *ParallelTree) NCollapsed() int {
	switch r := t.Root.(type) {
	case *ParallelIteration:
		return r.NCollapse
	case *DeviceIteration:
		return r.NCollapse
	}
	return 0
}

// IsDevice reports whether the tree's root is device-placed.
func (t *ParallelTree) IsDevice() bool {
	_, ok := t.Root.(*DeviceIteration)
	return ok
}
