// Copyright 2025 The Stencil Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package ir exposes the public Iteration/Expression Tree surface: the node
// shapes a front-end builds and the parallelization passes rewrite.
//
// Example:
//
//	loop := &ir.Iteration{
//	    Dim:   expr.Symbol{Name: "x"},
//	    Lo:    expr.Int(0),
//	    Hi:    expr.Int(127),
//	    Step:  expr.Int(1),
//	    Props: ir.Parallel | ir.Affine,
//	}
package ir

import (
	"github.com/stencil-lang/stencil/internal/ir"
)

// Node is an IET tree node.
type Node = ir.Node

// Properties are the legality tags carried by an Iteration.
type Properties = ir.Properties

// Legality tags.
const (
	Parallel        Properties = ir.Parallel
	ParallelRelaxed Properties = ir.ParallelRelaxed
	ParallelAtomic  Properties = ir.ParallelAtomic
	Affine          Properties = ir.Affine
	Vectorized      Properties = ir.Vectorized
)

// Core node shapes.
type (
	Iteration        = ir.Iteration
	Expression       = ir.Expression
	Access           = ir.Access
	ExpressionBundle = ir.ExpressionBundle
	List             = ir.List
	Conditional      = ir.Conditional
	Return           = ir.Return
	Block            = ir.Block
	Initializer      = ir.Initializer
	Prodder          = ir.Prodder
	Dereference      = ir.Dereference
	TransferCall     = ir.TransferCall
	Callable         = ir.Callable
	Program          = ir.Program
	Buffer           = ir.Buffer
	PointerArray     = ir.PointerArray
)

// Parallel annotations produced by the passes.
type (
	ParallelIteration = ir.ParallelIteration
	DeviceIteration   = ir.DeviceIteration
	ParallelTree      = ir.ParallelTree
	ParallelRegion    = ir.ParallelRegion
)

// Subs is a write-once node substitution map.
type Subs = ir.Subs

// NewSubs returns an empty substitution map.
func NewSubs() *Subs { return ir.NewSubs() }

// Transform applies a substitution map in a single immutable rebuild.
func Transform(n Node, s *Subs) Node { return ir.Transform(n, s) }

// Analysis helpers.
var (
	Trees             = ir.Trees
	IsPerfect         = ir.IsPerfect
	FindIterations    = ir.FindIterations
	FindExpressions   = ir.FindExpressions
	FindBuffers       = ir.FindBuffers
	FindProdders      = ir.FindProdders
	FindDereferences  = ir.FindDereferences
	FindTransferCalls = ir.FindTransferCalls
)
