// Copyright 2025 The Stencil Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package passes is the public API of the parallelization backend: the pass
// family that lowers a stencil compiler's Iteration/Expression Tree into
// annotated code ready for shared-memory and accelerator execution.
//
// A Parallelizer is assembled from the tuning options, the host platform
// shape, a symbol registry and a dialect construct table, then applied to
// every routine of a program:
//
//	reg := passes.NewRegistry()
//	p, err := passes.New(passes.Config{
//	    Options:  passes.DefaultOptions(),
//	    Platform: passes.DetectPlatform(),
//	    Registry: reg,
//	    Lang:     passes.OpenMP(passes.Host),
//	    Target:   passes.Host,
//	})
//	if err != nil {
//	    return err
//	}
//	prog, meta, err := passes.Run(prog, passes.DefaultEngineConfig(),
//	    p.MakeParallel, p.MakeSIMD)
//
// The returned metadata names the thread-count symbols and promoted buffer
// arguments the enclosing routines must absorb, plus the headers the
// emitted directives require.
package passes
