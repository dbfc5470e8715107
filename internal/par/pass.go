package par

import (
	"strconv"

	"github.com/stencil-lang/stencil/internal/ir"
	"github.com/stencil-lang/stencil/internal/lang"
)

// Arg is a formal argument the enclosing routine must absorb after a pass.
type Arg struct {
	Name         string
	WriteThrough bool // the argument is written through inside the routine
}

// Metadata is what a pass reports alongside the rewritten IET.
type Metadata struct {
	Args     []Arg
	Includes []string
}

// merge folds other into m, deduplicating by name and include string.
func (m *Metadata) merge(other Metadata) {
	for _, a := range other.Args {
		if !m.hasArg(a.Name) {
			m.Args = append(m.Args, a)
		}
	}
	for _, inc := range other.Includes {
		if !contains(m.Includes, inc) {
			m.Includes = append(m.Includes, inc)
		}
	}
}

func (m *Metadata) hasArg(name string) bool {
	for _, a := range m.Args {
		if a.Name == name {
			return true
		}
	}
	return false
}

func contains(ss []string, s string) bool {
	for _, t := range ss {
		if t == s {
			return true
		}
	}
	return false
}

// MakeParallel rewrites one routine for shared-memory (or, with a Device
// target, accelerator) parallelism. Every maximal loop nest is processed
// independently; all replacements are collected in a write-once substitution
// map and applied in a single atomic rewrite.
func (p *Parallelizer) MakeParallel(fn *ir.Callable) (*ir.Callable, Metadata, error) {
	subs := ir.NewSubs()
	parrays := make(map[*ir.Buffer]*ir.PointerArray)

	for _, chain := range ir.Trees(fn) {
		candidates := filterCandidates(chain, p.key)
		if len(candidates) == 0 {
			continue
		}

		// Outer parallelism.
		root, tree, collapsed := p.makeParTreeForTarget(candidates)
		if tree == nil || subs.Has(root) {
			continue
		}

		// Nested parallelism.
		tree = p.makeNestedParTree(tree)

		// Reductions.
		tree, err := p.makeReductions(tree, collapsed)
		if err != nil {
			return nil, Metadata{}, err
		}

		// Atomicize and optimize single-thread prodders.
		tree = p.makeThreadedProdders(tree)

		// Wrap within a parallel region, promoting thread-private storage.
		region, err := p.makeParRegion(tree, parrays)
		if err != nil {
			return nil, Metadata{}, err
		}

		// Protect the region against degenerate steps.
		subs.Put(root, p.makeGuard(region, collapsed))
	}

	out := ir.Transform(fn, subs).(*ir.Callable)

	meta, err := p.metadata(out)
	if err != nil {
		return nil, Metadata{}, err
	}
	return out, meta, nil
}

// metadata derives the new formal arguments and includes the rewritten
// routine requires.
func (p *Parallelizer) metadata(fn *ir.Callable) (Metadata, error) {
	var meta Metadata
	for _, s := range ir.FindThreadSymbols(fn) {
		if p.reg.IsThreadCount(s) && !meta.hasArg(s.Name) {
			meta.Args = append(meta.Args, Arg{Name: s.Name})
		}
	}
	for _, d := range ir.FindDereferences(fn) {
		if !meta.hasArg(d.Buffer.Name) {
			meta.Args = append(meta.Args, Arg{Name: d.Buffer.Name, WriteThrough: true})
		}
		if !meta.hasArg(d.PArray.Name) {
			meta.Args = append(meta.Args, Arg{Name: d.PArray.Name})
		}
	}

	header, err := p.lang.Get(lang.Header)
	if err != nil {
		return Metadata{}, err
	}
	meta.Includes = []string{header()}
	return meta, nil
}

// Initialize is the pass hook for dialects requiring runtime setup; the
// base parallelizer leaves the IET untouched.
func (p *Parallelizer) Initialize(fn *ir.Callable) (*ir.Callable, Metadata, error) {
	return fn, Metadata{}, nil
}

// filterCandidates keeps the iterations of one nest chain satisfying the
// candidacy predicate.
func filterCandidates(chain []*ir.Iteration, key func(*ir.Iteration) bool) []*ir.Iteration {
	var out []*ir.Iteration
	for _, i := range chain {
		if key(i) {
			out = append(out, i)
		}
	}
	return out
}

func itoa(n int) string { return strconv.Itoa(n) }
