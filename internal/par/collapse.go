package par

import (
	"github.com/stencil-lang/stencil/internal/expr"
	"github.com/stencil-lang/stencil/internal/ir"
)

// findCollapsable walks the candidate loops inner to root and returns the
// prefix that may be fused with root into one parallel construct.
func (p *Parallelizer) findCollapsable(root *ir.Iteration, candidates []*ir.Iteration) []*ir.Iteration {
	var collapsable []*ir.Iteration
	if p.plat.CoresPhysical < p.opts.CollapseNCores {
		return nil
	}
	for n := 1; n < len(candidates); n++ {
		i := candidates[n]

		// The nest [root, ..., i] must be perfect: no statements may sit
		// between the loops being fused.
		if !ir.IsPerfect(root, i) {
			break
		}

		// Loops are collapsable only if no induction variable collapsed so
		// far appears in a lower-bound expression. For example
		//
		//   for (i = ...)
		//     for (j = i; ...)
		//
		// cannot be collapsed.
		if dependsOnEarlier(i, candidates[:n]) {
			break
		}

		// SIMD-vectorized loops stay out of the collapse.
		if i.Props.Has(ir.Vectorized) {
			break
		}

		// Would there be enough work per parallel iteration? The estimate
		// covers every inner loop not yet collapsed, i included. When the
		// sizes are symbolic the estimate is unavailable and the check is
		// skipped: work is assumed sufficient.
		if n+1 < len(candidates) {
			if work, known := staticWork(candidates[n:]); known && work < int64(p.opts.CollapseWork) {
				break
			}
		}

		collapsable = append(collapsable, i)
	}
	return collapsable
}

func dependsOnEarlier(i *ir.Iteration, earlier []*ir.Iteration) bool {
	for _, j := range earlier {
		if expr.Contains(i.Lo, j.Dim) {
			return true
		}
	}
	return false
}

// staticWork multiplies the statically-known trip counts of the given
// loops. known is false as soon as any count is symbolic.
func staticWork(nested []*ir.Iteration) (int64, bool) {
	if len(nested) == 0 {
		return 0, false
	}
	work := int64(1)
	for _, j := range nested {
		n, ok := expr.StaticInt(j.Size())
		if !ok {
			return 0, false
		}
		work *= n
	}
	return work, true
}
