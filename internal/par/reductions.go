package par

import (
	"github.com/stencil-lang/stencil/internal/ir"
	"github.com/stencil-lang/stencil/internal/lang"
)

// makeReductions classifies the accumulations inside a parallel unit. A
// no-op unless some collapsed loop is tagged atomic-reduction-candidate.
//
// Scalar accumulators, and any accumulation inside an all-affine collapse,
// become a declarative reduction on the unit's root. Everything else gets
// an explicit mutual-exclusion annotation.
func (p *Parallelizer) makeReductions(tree *ir.ParallelTree, collapsed []*ir.Iteration) (*ir.ParallelTree, error) {
	if !anyAtomic(collapsed) {
		return tree, nil
	}

	var exprs []*ir.Expression
	for _, e := range ir.FindExpressions(tree) {
		if e.Increment && !e.Foreign {
			exprs = append(exprs, e)
		}
	}
	if len(exprs) == 0 {
		return tree, nil
	}

	if allAffine(collapsed) || noneIndexed(exprs) {
		names := make([]string, len(exprs))
		for i, e := range exprs {
			names[i] = e.Output.Name
		}
		c := *tree
		c.Root = withReduction(tree.Root, names)
		return &c, nil
	}

	// The increments must be made atomic.
	atomic, err := p.lang.Get(lang.Atomic)
	if err != nil {
		return nil, err
	}
	subs := ir.NewSubs()
	for _, e := range exprs {
		c := *e
		c.Pragmas = append(append([]string{}, e.Pragmas...), atomic())
		subs.Put(e, &c)
	}
	return ir.Transform(tree, subs).(*ir.ParallelTree), nil
}

func anyAtomic(collapsed []*ir.Iteration) bool {
	for _, i := range collapsed {
		if i.Props.Has(ir.ParallelAtomic) {
			return true
		}
	}
	return false
}

func noneIndexed(exprs []*ir.Expression) bool {
	for _, e := range exprs {
		if e.Output.Indexed {
			return false
		}
	}
	return true
}

func withReduction(root ir.Node, names []string) ir.Node {
	switch r := root.(type) {
	case *ir.ParallelIteration:
		c := *r
		c.Reduction = names
		return &c
	case *ir.DeviceIteration:
		c := *r
		c.Reduction = names
		return &c
	}
	return root
}

// makeThreadedProdders rewrites every progress-check callback in the unit
// into its thread-safe variant. Device-placed units skip this: progress
// polling under offload is a no-op.
func (p *Parallelizer) makeThreadedProdders(tree *ir.ParallelTree) *ir.ParallelTree {
	if tree.IsDevice() {
		return tree
	}
	subs := ir.NewSubs()
	for _, pr := range ir.FindProdders(tree) {
		subs.Put(pr, p.builders.Prodder(pr))
	}
	if subs.Empty() {
		return tree
	}
	return ir.Transform(tree, subs).(*ir.ParallelTree)
}
