package par

import (
	"github.com/stencil-lang/stencil/internal/expr"
	"github.com/stencil-lang/stencil/internal/ir"
)

// makeGuard prefixes the assembled region with an early return taken when
// any collapsed loop's symbol-bound step is zero. A zero step would fault
// inside some parallel runtimes, and a conditional-entry clause on the
// region cannot prevent the scheduling construct itself from being entered
// with a degenerate range. Device-placed units carry no guard.
func (p *Parallelizer) makeGuard(region ir.Node, collapsed []*ir.Iteration) ir.Node {
	if isDeviceUnit(region) {
		return region
	}

	var terms []expr.Cond
	for _, i := range collapsed {
		if s, ok := i.Step.(expr.Symbol); ok {
			terms = append(terms, expr.Eq{A: s, B: expr.Int(0)})
		}
	}
	cond := expr.Or(terms...)
	if cond == nil {
		return region
	}
	return &ir.List{Body: []ir.Node{
		&ir.Conditional{Cond: cond, Then: []ir.Node{&ir.Return{}}},
		region,
	}}
}

func isDeviceUnit(n ir.Node) bool {
	if t, ok := n.(*ir.ParallelTree); ok {
		return t.IsDevice()
	}
	return false
}
