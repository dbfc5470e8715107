package par

import (
	"github.com/stencil-lang/stencil/internal/expr"
	"github.com/stencil-lang/stencil/internal/ir"
	"github.com/stencil-lang/stencil/internal/lang"
)

// makeParRegion wraps a parallel unit in its region boundary. Heap-allocated
// thread-local buffers still referenced inside the unit are promoted first:
// each is bound, through a shared per-thread pointer array, to the slot of
// the executing thread. parrays memoizes one pointer array per original
// buffer across all nests of one pass invocation.
//
// Device-placed units take the device memory path instead; no promotion, no
// region node.
func (p *Parallelizer) makeParRegion(tree *ir.ParallelTree, parrays map[*ir.Buffer]*ir.PointerArray) (ir.Node, error) {
	if tree.IsDevice() {
		return tree, nil
	}

	var derefs []ir.Node
	for _, b := range ir.FindBuffers(tree, false) {
		if !b.Heap || !b.Local {
			continue
		}
		pa, ok := parrays[b]
		if !ok {
			pa = &ir.PointerArray{
				Name:   p.reg.MakeName(b.Name + "_vec"),
				Dim:    p.threadID(),
				Buffer: b,
			}
			parrays[b] = pa
		}
		derefs = append(derefs, &ir.Dereference{Buffer: b, PArray: pa})
	}

	if len(derefs) > 0 {
		threadNum, err := p.lang.Get(lang.ThreadNum)
		if err != nil {
			return nil, err
		}
		prefix := make([]ir.Node, 0, 1+len(derefs)+len(tree.Prefix))
		prefix = append(prefix, &ir.Initializer{
			Sym: p.threadID(),
			RHS: expr.Raw(threadNum()),
		})
		prefix = append(prefix, derefs...)
		prefix = append(prefix, tree.Prefix...)

		c := *tree
		c.Prefix = prefix
		tree = &c
	}

	return p.builders.Region(tree), nil
}
