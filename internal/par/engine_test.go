package par

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stencil-lang/stencil/internal/ir"
	"github.com/stencil-lang/stencil/internal/parallel"
)

func TestRunAppliesPassesToEveryRoutine(t *testing.T) {
	p := newTestParallelizer(t, nil)

	kernel := func(name string) *ir.Callable {
		x, _, _ := nest3(4)
		return &ir.Callable{Name: name, Body: []ir.Node{x}}
	}
	prog := &ir.Program{Routines: []*ir.Callable{
		kernel("section0"),
		kernel("section1"),
		{Name: "haloupdate"},
	}}

	out, meta, err := Run(prog, parallel.DefaultConfig(), p.MakeParallel)
	require.NoError(t, err)
	require.Len(t, out.Routines, 3)

	for i := 0; i < 2; i++ {
		assert.Equal(t, prog.Routines[i].Name, out.Routines[i].Name)
		_, ok := out.Routines[i].Body[0].(*ir.ParallelRegion)
		assert.True(t, ok)
	}
	assert.Same(t, prog.Routines[2], out.Routines[2], "loopless routine untouched")

	// Metadata from both kernels merges without duplicates.
	count := 0
	for _, a := range meta.Args {
		if a.Name == "nthreads" {
			count++
		}
	}
	assert.Equal(t, 1, count)
	assert.Equal(t, []string{"omp.h"}, meta.Includes)
}

func TestRunChainsPasses(t *testing.T) {
	p := newTestParallelizer(t, nil)
	x, _, _ := nest3(4)
	prog := &ir.Program{Routines: []*ir.Callable{
		{Name: "kernel", Body: []ir.Node{x}},
	}}

	// SIMD first marks the innermost loop vectorized, so the parallel pass
	// collapses only the two outer levels.
	out, _, err := Run(prog, parallel.DefaultConfig(), p.MakeSIMD, p.MakeParallel)
	require.NoError(t, err)

	region, ok := out.Routines[0].Body[0].(*ir.ParallelRegion)
	require.True(t, ok)
	pi, ok := region.Tree.Root.(*ir.ParallelIteration)
	require.True(t, ok)
	assert.Equal(t, 2, pi.NCollapse)
}

func TestRunReportsRoutineErrors(t *testing.T) {
	prog := &ir.Program{Routines: []*ir.Callable{
		{Name: "good"},
		{Name: "bad"},
	}}
	fail := errors.New("construct missing")
	pass := func(fn *ir.Callable) (*ir.Callable, Metadata, error) {
		if fn.Name == "bad" {
			return nil, Metadata{}, fail
		}
		return fn, Metadata{}, nil
	}

	_, _, err := Run(prog, parallel.Config{}, pass)
	require.Error(t, err)
	assert.ErrorIs(t, err, fail)
	assert.Contains(t, err.Error(), "bad")
}

func TestRunSequentialFallback(t *testing.T) {
	p := newTestParallelizer(t, nil)
	x, _, _ := nest3(4)
	prog := &ir.Program{Routines: []*ir.Callable{
		{Name: "kernel", Body: []ir.Node{x}},
	}}

	out, _, err := Run(prog, parallel.Config{Enabled: false}, p.MakeParallel)
	require.NoError(t, err)
	_, ok := out.Routines[0].Body[0].(*ir.ParallelRegion)
	assert.True(t, ok)
}
