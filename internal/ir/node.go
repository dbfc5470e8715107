// Package ir defines the Iteration/Expression Tree (IET): the loop-and-
// statement intermediate representation the parallelization passes consume
// and rewrite. Nodes are immutable once built; passes express changes as a
// substitution map applied in a single rebuild (see Transform).
package ir

import (
	"github.com/stencil-lang/stencil/internal/expr"
)

// Node is an IET tree node.
type Node interface {
	isNode()
}

// Properties are the legality tags carried by an Iteration.
type Properties uint8

const (
	// Parallel marks a loop whose iterations are provably independent.
	Parallel Properties = 1 << iota

	// ParallelRelaxed marks a loop parallel under relaxed assumptions
	// (e.g. ignoring reads of read-only halo data).
	ParallelRelaxed

	// ParallelAtomic marks a loop parallel provided its accumulations
	// are serialized or reduced.
	ParallelAtomic

	// Affine marks a loop whose bounds are statically linear in the
	// enclosing variables.
	Affine

	// Vectorized marks a loop already mapped to SIMD lanes.
	Vectorized
)

// Has reports whether all tags in q are set.
func (p Properties) Has(q Properties) bool { return p&q == q }

// IsParallelRelaxed reports whether the loop may run concurrently under any
// of the parallel tags.
func (p Properties) IsParallelRelaxed() bool {
	return p&(Parallel|ParallelRelaxed|ParallelAtomic) != 0
}

// Iteration is a counted loop over a single dimension.
type Iteration struct {
	Dim     expr.Symbol // induction variable
	Lo, Hi  expr.Expr   // inclusive bounds
	Step    expr.Expr
	Props   Properties
	Pragmas []string
	Body    []Node
}

// Size returns the symbolic trip count, Hi - Lo + 1. The canonical blocked
// shape lo=0, hi=n-1 simplifies to n so that block-size symbols stay
// recognizable to the nesting heuristics.
func (i *Iteration) Size() expr.Expr {
	if lo, ok := i.Lo.(expr.Int); ok && lo == 0 {
		if s, ok := i.Hi.(expr.Sub); ok {
			if b, ok := s.B.(expr.Int); ok && b == 1 {
				return s.A
			}
		}
	}
	return expr.Sum(expr.Sub{A: i.Hi, B: i.Lo}, expr.Int(1))
}

// Expression is a leaf statement writing one location.
type Expression struct {
	Output    Access // written location
	Reads     []*Buffer
	Increment bool // accumulation into Output
	Foreign   bool // externally supplied, opaque to rewriting
	Pragmas   []string
}

// Access is a written or read location: a buffer element when Indexed, a
// scalar otherwise.
type Access struct {
	Name    string
	Buffer  *Buffer // nil for plain scalars
	Indexed bool
}

// ExpressionBundle groups the expressions lowered from one equation and
// records their arithmetic operation count.
type ExpressionBundle struct {
	Ops  int
	Body []Node
}

// List is a flat sequence of nodes.
type List struct {
	Body []Node
}

// Conditional guards its body with a condition.
type Conditional struct {
	Cond expr.Cond
	Then []Node
}

// Return exits the enclosing routine.
type Return struct{}

// Block is a pragma-headed compound statement.
type Block struct {
	Header string
	Body   []Node
}

// Initializer declares a scalar and assigns it.
type Initializer struct {
	Sym expr.Symbol
	RHS expr.Expr
}

// Prodder is an asynchronous progress-check callback embedded in a loop
// body, e.g. to advance outstanding communication.
type Prodder struct {
	Name       string
	Args       []string
	Periodic   bool
	ThreadSafe bool
}

// Dereference binds a thread-private buffer to its per-thread slot of a
// shared pointer array.
type Dereference struct {
	Buffer *Buffer
	PArray *PointerArray
}

// TransferCall is a point-to-point transfer invocation (send or receive)
// whose first argument is the staged buffer. Scheduling of transfers is
// outside this layer; the node exists so device passes can wrap it.
type TransferCall struct {
	Name   string
	Buffer *Buffer
}

// Callable is one routine of the generated program.
type Callable struct {
	Name string
	Body []Node
}

// Program is the set of routines a compilation produces.
type Program struct {
	Routines []*Callable
}

func (*Iteration) isNode()        {}
func (*Expression) isNode()       {}
func (*ExpressionBundle) isNode() {}
func (*List) isNode()             {}
func (*Conditional) isNode()      {}
func (*Return) isNode()           {}
func (*Block) isNode()            {}
func (*Initializer) isNode()      {}
func (*Prodder) isNode()          {}
func (*Dereference) isNode()      {}
func (*TransferCall) isNode()     {}
func (*Callable) isNode()         {}
