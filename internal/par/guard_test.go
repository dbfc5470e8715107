package par

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stencil-lang/stencil/internal/expr"
	"github.com/stencil-lang/stencil/internal/ir"
)

func TestGuardEmittedForSymbolicStep(t *testing.T) {
	p := newTestParallelizer(t, nil)

	x := affineLoop("x", 128, bundle(4, scalarIncrement("s")))
	x.Step = expr.Symbol{Name: "x_blk_size"}
	region := &ir.ParallelRegion{Tree: &ir.ParallelTree{
		Root: &ir.ParallelIteration{It: x, NCollapse: 1},
	}}

	out := p.makeGuard(region, []*ir.Iteration{x})
	list, ok := out.(*ir.List)
	require.True(t, ok, "guarded region must be a conditional-then-region list")
	require.Len(t, list.Body, 2)

	cond := list.Body[0].(*ir.Conditional)
	assert.Equal(t, "x_blk_size == 0", cond.Cond.String())
	require.Len(t, cond.Then, 1)
	assert.IsType(t, &ir.Return{}, cond.Then[0])
	assert.Same(t, ir.Node(region), list.Body[1])
}

func TestGuardCoversEveryCollapsedSymbolicStep(t *testing.T) {
	p := newTestParallelizer(t, nil)

	y := affineLoop("y", 32, bundle(4, scalarIncrement("s")))
	y.Step = expr.Symbol{Name: "y_blk_size"}
	x := affineLoop("x", 128, y)
	x.Step = expr.Symbol{Name: "x_blk_size"}
	region := &ir.ParallelRegion{Tree: &ir.ParallelTree{
		Root: &ir.ParallelIteration{It: x, NCollapse: 2},
	}}

	out := p.makeGuard(region, []*ir.Iteration{x, y})
	cond := out.(*ir.List).Body[0].(*ir.Conditional)
	assert.Equal(t, "x_blk_size == 0 || y_blk_size == 0", cond.Cond.String())
}

func TestGuardAbsentForConstantSteps(t *testing.T) {
	p := newTestParallelizer(t, nil)

	x := affineLoop("x", 128, bundle(4, scalarIncrement("s")))
	region := &ir.ParallelRegion{Tree: &ir.ParallelTree{
		Root: &ir.ParallelIteration{It: x, NCollapse: 1},
	}}

	out := p.makeGuard(region, []*ir.Iteration{x})
	assert.Same(t, ir.Node(region), out)
}

func TestGuardAbsentForDeviceUnits(t *testing.T) {
	p := newTestParallelizer(t, nil)

	x := affineLoop("x", 128, bundle(4, scalarIncrement("s")))
	x.Step = expr.Symbol{Name: "x_blk_size"}
	tree := &ir.ParallelTree{Root: &ir.DeviceIteration{It: x, NCollapse: 1}}

	out := p.makeGuard(tree, []*ir.Iteration{x})
	assert.Same(t, ir.Node(tree), out)
}
