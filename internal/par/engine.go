package par

import (
	"fmt"

	"github.com/stencil-lang/stencil/internal/ir"
	"github.com/stencil-lang/stencil/internal/parallel"
)

// Pass is one whole-routine IET transformation.
type Pass func(*ir.Callable) (*ir.Callable, Metadata, error)

// Run applies the passes, in order, to every routine of prog. Routines are
// independent and processed concurrently; results and metadata are merged
// back in routine order.
func Run(prog *ir.Program, cfg parallel.Config, passes ...Pass) (*ir.Program, Metadata, error) {
	n := len(prog.Routines)
	routines := make([]*ir.Callable, n)
	metas := make([]Metadata, n)
	errs := make([]error, n)

	parallel.ForEach(n, func(i int) {
		fn := prog.Routines[i]
		var meta Metadata
		for _, pass := range passes {
			out, m, err := pass(fn)
			if err != nil {
				errs[i] = fmt.Errorf("routine %s: %w", prog.Routines[i].Name, err)
				return
			}
			fn = out
			meta.merge(m)
		}
		routines[i] = fn
		metas[i] = meta
	}, cfg)

	var meta Metadata
	for i := 0; i < n; i++ {
		if errs[i] != nil {
			return nil, Metadata{}, errs[i]
		}
		meta.merge(metas[i])
	}
	return &ir.Program{Routines: routines}, meta, nil
}
