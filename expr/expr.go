// Copyright 2025 The Stencil Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package expr exposes the symbolic scalar expressions used for loop bounds,
// trip counts and directive clauses.
package expr

import (
	"github.com/stencil-lang/stencil/internal/expr"
)

// Expr is a symbolic integer-valued expression.
type Expr = expr.Expr

// Expression shapes.
type (
	Symbol = expr.Symbol
	Int    = expr.Int
	Raw    = expr.Raw
	Add    = expr.Add
	Mul    = expr.Mul
	Sub    = expr.Sub
	Div    = expr.Div
	Max    = expr.Max
)

// Cond is a boolean condition over expressions.
type Cond = expr.Cond

// Condition shapes.
type (
	Eq    = expr.Eq
	AnyOf = expr.AnyOf
)

// Construction and analysis helpers.
var (
	Sum         = expr.Sum
	Product     = expr.Product
	Or          = expr.Or
	FreeSymbols = expr.FreeSymbols
	Contains    = expr.Contains
	StaticInt   = expr.StaticInt
	Equal       = expr.Equal
)
