package par

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stencil-lang/stencil/internal/expr"
	"github.com/stencil-lang/stencil/internal/ir"
)

func scratchNest(p *Parallelizer, b *ir.Buffer) (*ir.ParallelTree, []*ir.Iteration) {
	stmt := &ir.Expression{
		Output: ir.Access{Name: b.Name, Buffer: b, Indexed: true},
	}
	y := affineLoop("y", 32, bundle(4, stmt))
	x := affineLoop("x", 128, y)
	_, tree, collapsed := p.makeParTree([]*ir.Iteration{x, y}, expr.Symbol{})
	return tree, collapsed
}

func TestRegionPromotesThreadPrivateHeapBuffers(t *testing.T) {
	p := newTestParallelizer(t, nil)
	b := &ir.Buffer{Name: "r0", Heap: true, Local: true, Extents: []expr.Expr{expr.Int(64)}}
	tree, _ := scratchNest(p, b)
	require.NotNil(t, tree)

	parrays := make(map[*ir.Buffer]*ir.PointerArray)
	region, err := p.makeParRegion(tree, parrays)
	require.NoError(t, err)

	reg, ok := region.(*ir.ParallelRegion)
	require.True(t, ok)

	// Prologue: thread index first, then the per-thread dereference.
	prefix := reg.Tree.Prefix
	require.Len(t, prefix, 2)
	init, ok := prefix[0].(*ir.Initializer)
	require.True(t, ok)
	assert.Equal(t, "tid", init.Sym.Name)
	assert.Equal(t, expr.Raw("omp_get_thread_num()"), init.RHS)

	deref, ok := prefix[1].(*ir.Dereference)
	require.True(t, ok)
	assert.Same(t, b, deref.Buffer)
	assert.Equal(t, "tid", deref.PArray.Dim.Name)

	require.Len(t, parrays, 1)
	assert.Same(t, deref.PArray, parrays[b])
}

func TestRegionPromotionIsMemoizedAcrossNests(t *testing.T) {
	p := newTestParallelizer(t, nil)
	b := &ir.Buffer{Name: "r0", Heap: true, Local: true, Extents: []expr.Expr{expr.Int(64)}}
	parrays := make(map[*ir.Buffer]*ir.PointerArray)

	tree1, _ := scratchNest(p, b)
	_, err := p.makeParRegion(tree1, parrays)
	require.NoError(t, err)
	first := parrays[b]

	tree2, _ := scratchNest(p, b)
	_, err = p.makeParRegion(tree2, parrays)
	require.NoError(t, err)

	require.Len(t, parrays, 1, "one pointer array per original buffer")
	assert.Same(t, first, parrays[b])
}

func TestRegionIgnoresSharedBuffers(t *testing.T) {
	p := newTestParallelizer(t, nil)
	b := &ir.Buffer{Name: "u", Heap: true, Local: false, Extents: []expr.Expr{expr.Int(64)}}
	tree, _ := scratchNest(p, b)
	require.NotNil(t, tree)

	parrays := make(map[*ir.Buffer]*ir.PointerArray)
	region, err := p.makeParRegion(tree, parrays)
	require.NoError(t, err)

	reg := region.(*ir.ParallelRegion)
	assert.Empty(t, reg.Tree.Prefix)
	assert.Empty(t, parrays)
}

func TestRegionDeviceUnitIsUntouched(t *testing.T) {
	p := newTestParallelizer(t, nil)

	x := affineLoop("x", 128, bundle(4, scalarIncrement("s")))
	tree := &ir.ParallelTree{Root: &ir.DeviceIteration{It: x, NCollapse: 1}}

	region, err := p.makeParRegion(tree, make(map[*ir.Buffer]*ir.PointerArray))
	require.NoError(t, err)
	assert.Same(t, ir.Node(tree), region)
}
