// Package expr provides the small symbolic-scalar layer the parallelization
// passes need from the compiler's expression front-end: loop bounds, trip
// counts, chunk-size formulas and guard conditions. It is deliberately tiny;
// anything beyond sums, products, division, max and equality lives in the
// front-end and reaches the passes already lowered.
package expr

import (
	"fmt"
	"strings"
)

// Expr is a symbolic integer-valued expression.
type Expr interface {
	// String renders the expression in C-like syntax, suitable for
	// embedding in a directive clause.
	String() string

	isExpr()
}

// Symbol is a named scalar, e.g. an induction variable or a thread-count
// parameter. Symbols compare by name.
type Symbol struct {
	Name string
}

// Int is an integer literal.
type Int int64

// Raw is an opaque C fragment, e.g. a runtime call supplied by a dialect
// construct. It has no free symbols and no static value.
type Raw string

// Add is a sum of two or more operands.
type Add struct {
	Ops []Expr
}

// Mul is a product of two or more operands.
type Mul struct {
	Ops []Expr
}

// Sub is a difference.
type Sub struct {
	A, B Expr
}

// Div is an integer division.
type Div struct {
	Num, Den Expr
}

// Max is the larger of two operands.
type Max struct {
	A, B Expr
}

func (Symbol) isExpr() {}
func (Int) isExpr()    {}
func (Raw) isExpr()    {}
func (Add) isExpr()    {}
func (Mul) isExpr()    {}
func (Sub) isExpr()    {}
func (Div) isExpr()    {}
func (Max) isExpr()    {}

func (s Symbol) String() string { return s.Name }
func (i Int) String() string    { return fmt.Sprintf("%d", int64(i)) }
func (r Raw) String() string    { return string(r) }

func (a Add) String() string {
	parts := make([]string, len(a.Ops))
	for i, op := range a.Ops {
		parts[i] = op.String()
	}
	return strings.Join(parts, " + ")
}

func (m Mul) String() string {
	parts := make([]string, len(m.Ops))
	for i, op := range m.Ops {
		parts[i] = paren(op)
	}
	return strings.Join(parts, "*")
}

func (s Sub) String() string {
	return fmt.Sprintf("%s - %s", s.A.String(), paren(s.B))
}

func (d Div) String() string {
	den := d.Den.String()
	switch d.Den.(type) {
	case Add, Sub, Mul, Div:
		den = "(" + den + ")"
	}
	return fmt.Sprintf("%s/%s", paren(d.Num), den)
}

func (m Max) String() string {
	return fmt.Sprintf("MAX(%s, %s)", m.A.String(), m.B.String())
}

// paren wraps additive sub-expressions so that operator precedence in the
// rendered C survives.
func paren(e Expr) string {
	switch e.(type) {
	case Add, Sub:
		return "(" + e.String() + ")"
	default:
		return e.String()
	}
}

// Sum builds an Add, collapsing the trivial cases.
func Sum(ops ...Expr) Expr {
	switch len(ops) {
	case 0:
		return Int(0)
	case 1:
		return ops[0]
	}
	return Add{Ops: ops}
}

// Product builds a Mul, collapsing the trivial cases.
func Product(ops ...Expr) Expr {
	switch len(ops) {
	case 0:
		return Int(1)
	case 1:
		return ops[0]
	}
	return Mul{Ops: ops}
}

// FreeSymbols returns every Symbol appearing in e, in first-seen order.
func FreeSymbols(e Expr) []Symbol {
	var out []Symbol
	seen := make(map[Symbol]bool)
	walk(e, func(s Symbol) {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	})
	return out
}

// Contains reports whether the symbol s appears anywhere in e.
func Contains(e Expr, s Symbol) bool {
	found := false
	walk(e, func(t Symbol) {
		if t == s {
			found = true
		}
	})
	return found
}

func walk(e Expr, f func(Symbol)) {
	switch v := e.(type) {
	case Symbol:
		f(v)
	case Add:
		for _, op := range v.Ops {
			walk(op, f)
		}
	case Mul:
		for _, op := range v.Ops {
			walk(op, f)
		}
	case Sub:
		walk(v.A, f)
		walk(v.B, f)
	case Div:
		walk(v.Num, f)
		walk(v.Den, f)
	case Max:
		walk(v.A, f)
		walk(v.B, f)
	}
}

// StaticInt evaluates e when every leaf is a literal. The second return
// value reports whether the value is statically known.
func StaticInt(e Expr) (int64, bool) {
	switch v := e.(type) {
	case Int:
		return int64(v), true
	case Add:
		var sum int64
		for _, op := range v.Ops {
			n, ok := StaticInt(op)
			if !ok {
				return 0, false
			}
			sum += n
		}
		return sum, true
	case Mul:
		prod := int64(1)
		for _, op := range v.Ops {
			n, ok := StaticInt(op)
			if !ok {
				return 0, false
			}
			prod *= n
		}
		return prod, true
	case Sub:
		a, ok := StaticInt(v.A)
		if !ok {
			return 0, false
		}
		b, ok := StaticInt(v.B)
		if !ok {
			return 0, false
		}
		return a - b, true
	case Div:
		a, ok := StaticInt(v.Num)
		if !ok {
			return 0, false
		}
		b, ok := StaticInt(v.Den)
		if !ok || b == 0 {
			return 0, false
		}
		return a / b, true
	case Max:
		a, ok := StaticInt(v.A)
		if !ok {
			return 0, false
		}
		b, ok := StaticInt(v.B)
		if !ok {
			return 0, false
		}
		return max(a, b), true
	default:
		return 0, false
	}
}

// Equal reports structural equality of a and b.
func Equal(a, b Expr) bool {
	switch va := a.(type) {
	case Symbol:
		vb, ok := b.(Symbol)
		return ok && va == vb
	case Int:
		vb, ok := b.(Int)
		return ok && va == vb
	case Raw:
		vb, ok := b.(Raw)
		return ok && va == vb
	case Add:
		vb, ok := b.(Add)
		return ok && equalSlices(va.Ops, vb.Ops)
	case Mul:
		vb, ok := b.(Mul)
		return ok && equalSlices(va.Ops, vb.Ops)
	case Sub:
		vb, ok := b.(Sub)
		return ok && Equal(va.A, vb.A) && Equal(va.B, vb.B)
	case Div:
		vb, ok := b.(Div)
		return ok && Equal(va.Num, vb.Num) && Equal(va.Den, vb.Den)
	case Max:
		vb, ok := b.(Max)
		return ok && Equal(va.A, vb.A) && Equal(va.B, vb.B)
	}
	return false
}

func equalSlices(a, b []Expr) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

// DiffIsInteger reports whether a-b is provably an integer constant: either
// the operands are structurally equal (difference zero) or both evaluate
// statically.
func DiffIsInteger(a, b Expr) bool {
	if Equal(a, b) {
		return true
	}
	_, oka := StaticInt(a)
	_, okb := StaticInt(b)
	return oka && okb
}
