package par

import (
	"github.com/stencil-lang/stencil/internal/expr"
	"github.com/stencil-lang/stencil/internal/ir"
)

// makeNestedParTree introduces a second level of parallelism inside an
// already-parallel unit. A no-op unless the platform's hyperthreads-per-core
// exceed the configured threshold, or when the unit is device-placed.
//
// A nested candidate must pass the ordinary candidacy predicate and iterate
// within one block of some outer loop: its trip count must relate by an
// integer to an outer step. Without that evidence nested parallelism would
// oversubscribe the machine.
func (p *Parallelizer) makeNestedParTree(tree *ir.ParallelTree) *ir.ParallelTree {
	if tree.IsDevice() {
		return tree
	}
	if p.plat.ThreadsPerCore <= p.opts.Nested {
		return tree
	}

	// There may be multiple sub-nests amenable to nested parallelism:
	//
	//   for (i = ...)      // outer parallelism
	//     for (j0 = ...)   // first source of nested parallelism
	//     for (j1 = ...)   // second source of nested parallelism
	subs := ir.NewSubs()
	for _, chain := range ir.Trees(tree) {
		n := min(tree.NCollapsed(), len(chain))
		outer := chain[:n]
		inner := chain[n:]

		var candidates []*ir.Iteration
		for _, i := range inner {
			if p.key(i) && iteratesWithinBlock(i, outer) {
				candidates = append(candidates, i)
			} else if len(candidates) > 0 {
				// Accepted candidates must stay perfectly nested; the first
				// failure after an acceptance ends the run.
				break
			}
		}
		if len(candidates) == 0 {
			continue
		}

		subroot, subtree, _ := p.makeParTree(candidates, p.nthreadsNested())
		if subtree == nil || subs.Has(subroot) {
			continue
		}
		subs.Put(subroot, subtree)
	}
	if subs.Empty() {
		return tree
	}
	return ir.Transform(tree, subs).(*ir.ParallelTree)
}

func iteratesWithinBlock(i *ir.Iteration, outer []*ir.Iteration) bool {
	for _, j := range outer {
		if expr.DiffIsInteger(j.Step, i.Size()) {
			return true
		}
	}
	return false
}
