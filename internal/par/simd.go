package par

import (
	"strings"

	"github.com/stencil-lang/stencil/internal/ir"
	"github.com/stencil-lang/stencil/internal/lang"
)

// MakeSIMD vectorizes the innermost parallel loop of every nest that keeps
// an outer level of parallelism. Aligned buffers referenced by the loop are
// declared to the compiler together with the platform SIMD register width.
func (p *Parallelizer) MakeSIMD(fn *ir.Callable) (*ir.Callable, Metadata, error) {
	subs := ir.NewSubs()
	for _, chain := range ir.Trees(fn) {
		var candidates []*ir.Iteration
		for _, i := range chain {
			if i.Props.Has(ir.Parallel) {
				candidates = append(candidates, i)
			}
		}

		// As long as there's an outer level of parallelism, the innermost
		// parallel loop gets vectorized.
		if len(candidates) < 2 {
			continue
		}
		candidate := candidates[len(candidates)-1]
		if candidate.Props.Has(ir.Vectorized) || subs.Has(candidate) {
			continue
		}

		var aligned []string
		for _, b := range ir.FindBuffers(candidate, false) {
			if b.Aligned {
				aligned = append(aligned, b.Name)
			}
		}

		var pragma string
		if len(aligned) > 0 {
			builder, err := p.lang.Get(lang.SIMDForAligned)
			if err != nil {
				return nil, Metadata{}, err
			}
			pragma = builder(strings.Join(aligned, ","), itoa(p.plat.SIMDRegSize))
		} else {
			builder, err := p.lang.Get(lang.SIMDFor)
			if err != nil {
				return nil, Metadata{}, err
			}
			pragma = builder()
		}

		c := *candidate
		c.Pragmas = append(append([]string{}, candidate.Pragmas...), pragma)
		c.Props |= ir.Vectorized
		subs.Put(candidate, &c)
	}

	return ir.Transform(fn, subs).(*ir.Callable), Metadata{}, nil
}
