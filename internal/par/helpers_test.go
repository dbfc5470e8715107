package par

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stencil-lang/stencil/internal/expr"
	"github.com/stencil-lang/stencil/internal/ir"
	"github.com/stencil-lang/stencil/internal/lang/openmp"
	"github.com/stencil-lang/stencil/internal/platform"
	"github.com/stencil-lang/stencil/internal/registry"
)

// testOptions are the hermetic thresholds most tests run against: 8-core
// platform, collapsing from 4 cores, work threshold 512 as in the reference
// decision tables.
func testOptions() Options {
	return Options{
		CollapseNCores: 4,
		CollapseWork:   512,
		ChunkNonaffine: 3,
		DynamicWork:    10,
		Nested:         2,
		GPUFit:         map[string]bool{},
	}
}

func testPlatform() platform.Platform {
	return platform.Platform{CoresPhysical: 8, ThreadsPerCore: 1, SIMDRegSize: 32}
}

func newTestParallelizer(t *testing.T, mutate func(*Config)) *Parallelizer {
	t.Helper()
	cfg := Config{
		Options:  testOptions(),
		Platform: testPlatform(),
		Registry: registry.New(),
		Lang:     openmp.Host(),
		Target:   Host,
	}
	if mutate != nil {
		mutate(&cfg)
	}
	p, err := New(cfg)
	require.NoError(t, err)
	return p
}

// affineLoop builds a unit-step loop over [0, size) tagged parallel+affine.
func affineLoop(name string, size int64, body ...ir.Node) *ir.Iteration {
	return loopWith(name, size, ir.Parallel|ir.Affine, body...)
}

func loopWith(name string, size int64, props ir.Properties, body ...ir.Node) *ir.Iteration {
	return &ir.Iteration{
		Dim:   expr.Symbol{Name: name},
		Lo:    expr.Int(0),
		Hi:    expr.Int(size - 1),
		Step:  expr.Int(1),
		Props: props,
		Body:  body,
	}
}

// symbolicLoop builds a loop whose trip count is not statically known.
func symbolicLoop(name string, props ir.Properties, body ...ir.Node) *ir.Iteration {
	return &ir.Iteration{
		Dim:   expr.Symbol{Name: name},
		Lo:    expr.Int(0),
		Hi:    expr.Symbol{Name: name + "_M"},
		Step:  expr.Int(1),
		Props: props,
		Body:  body,
	}
}

// bundle wraps a statement group with the given operation count.
func bundle(ops int, body ...ir.Node) *ir.ExpressionBundle {
	return &ir.ExpressionBundle{Ops: ops, Body: body}
}

// scalarIncrement accumulates into a plain scalar.
func scalarIncrement(name string) *ir.Expression {
	return &ir.Expression{
		Output:    ir.Access{Name: name},
		Increment: true,
	}
}

// indexedIncrement accumulates into an element of b.
func indexedIncrement(b *ir.Buffer) *ir.Expression {
	return &ir.Expression{
		Output:    ir.Access{Name: b.Name, Buffer: b, Indexed: true},
		Increment: true,
	}
}

// nest3 builds the reference nest: x(128) / y(32) / z(32), perfectly
// nested, all parallel and affine, with one statement group innermost.
func nest3(ops int) (*ir.Iteration, *ir.Iteration, *ir.Iteration) {
	z := affineLoop("z", 32, bundle(ops, scalarIncrement("s")))
	y := affineLoop("y", 32, z)
	x := affineLoop("x", 128, y)
	return x, y, z
}

// candidatesOf filters one nest chain by the parallelizer's own predicate.
func candidatesOf(p *Parallelizer, root *ir.Iteration) []*ir.Iteration {
	chains := ir.Trees(root)
	if len(chains) == 0 {
		return nil
	}
	return filterCandidates(chains[0], p.key)
}
