package par

import (
	"fmt"

	"github.com/stencil-lang/stencil/internal/expr"
	"github.com/stencil-lang/stencil/internal/ir"
)

// makeParTree builds the scheduling decision for one nest of candidate
// loops. nthreads is the externally supplied thread-count symbol when
// building a nested level; the zero Symbol for the outermost call.
//
// The returned collapsed list is the root followed by the loops fused into
// it. A nil tree means parallelization was declined.
func (p *Parallelizer) makeParTree(candidates []*ir.Iteration, nthreads expr.Symbol) (*ir.Iteration, *ir.ParallelTree, []*ir.Iteration) {
	if len(candidates) == 0 {
		panic("par: makeParTree invoked with no candidates")
	}
	root := candidates[0]

	collapsable := p.findCollapsable(root, candidates)
	ncollapse := 1 + len(collapsable)

	var tree *ir.ParallelTree
	if allAffine(candidates) {
		schedule := "static"
		if p.bundleOps(root) >= p.opts.DynamicWork {
			schedule = "dynamic"
		}
		var body *ir.ParallelIteration
		if nthreads.Name == "" {
			// Worksharing loop; the enclosing region supplies the threads.
			nthreads = p.nthreads()
			body = &ir.ParallelIteration{
				It:        root,
				Schedule:  schedule,
				NCollapse: ncollapse,
			}
		} else {
			// Combined parallel-for with an explicit thread count.
			body = &ir.ParallelIteration{
				It:        root,
				Schedule:  schedule,
				NCollapse: ncollapse,
				NThreads:  nthreads,
				Parallel:  true,
			}
		}
		tree = &ir.ParallelTree{Root: body, NThreads: nthreads}
	} else {
		// A non-affine nest always runs under the dedicated thread count
		// with a runtime-estimated chunk size. Supplying an external thread
		// count here is a contract violation in the caller.
		if nthreads.Name != "" {
			panic(fmt.Sprintf("par: non-affine nest with externally supplied thread count %s", nthreads.Name))
		}
		nthreads = p.nthreadsNonaffine()
		chunk := expr.Symbol{Name: p.reg.MakeName("chunk_size")}
		body := &ir.ParallelIteration{
			It:        root,
			Schedule:  "dynamic",
			Chunk:     chunk,
			NCollapse: ncollapse,
		}

		sizes := []expr.Expr{root.Size()}
		for _, j := range collapsable {
			sizes = append(sizes, j.Size())
		}
		niters := expr.Product(sizes...)
		value := expr.Max{
			A: expr.Div{
				Num: niters,
				Den: expr.Product(nthreads, expr.Int(int64(p.opts.ChunkNonaffine))),
			},
			B: expr.Int(1),
		}
		prefix := []ir.Node{&ir.Initializer{Sym: chunk, RHS: value}}

		tree = &ir.ParallelTree{Prefix: prefix, Root: body, NThreads: nthreads}
	}

	collapsed := append([]*ir.Iteration{root}, collapsable...)

	return root, tree, collapsed
}

func allAffine(candidates []*ir.Iteration) bool {
	for _, i := range candidates {
		if !i.Props.Has(ir.Affine) {
			return false
		}
	}
	return true
}

// bundleOps sums the arithmetic operation counts of the expression bundles
// under root. A nest with no bundles counts as zero work.
func (p *Parallelizer) bundleOps(root *ir.Iteration) int {
	sops := 0
	ir.Walk(root, func(n ir.Node) {
		if b, ok := n.(*ir.ExpressionBundle); ok {
			sops += b.Ops
		}
	})
	return sops
}
