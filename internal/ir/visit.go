package ir

import (
	"github.com/stencil-lang/stencil/internal/expr"
)

// Walk visits n and every node below it in pre-order.
func Walk(n Node, f func(Node)) {
	if n == nil {
		return
	}
	f(n)
	switch v := n.(type) {
	case *Iteration:
		walkAll(v.Body, f)
	case *ExpressionBundle:
		walkAll(v.Body, f)
	case *List:
		walkAll(v.Body, f)
	case *Conditional:
		walkAll(v.Then, f)
	case *Block:
		walkAll(v.Body, f)
	case *Callable:
		walkAll(v.Body, f)
	case *ParallelIteration:
		Walk(v.It, f)
	case *DeviceIteration:
		Walk(v.It, f)
	case *ParallelTree:
		walkAll(v.Prefix, f)
		Walk(v.Root, f)
	case *ParallelRegion:
		Walk(v.Tree, f)
	}
}

func walkAll(nodes []Node, f func(Node)) {
	for _, n := range nodes {
		Walk(n, f)
	}
}

// FindIterations returns every Iteration below n, pre-order.
func FindIterations(n Node) []*Iteration {
	var out []*Iteration
	Walk(n, func(m Node) {
		if it, ok := m.(*Iteration); ok {
			out = append(out, it)
		}
	})
	return out
}

// FindExpressions returns every Expression below n, pre-order.
func FindExpressions(n Node) []*Expression {
	var out []*Expression
	Walk(n, func(m Node) {
		if e, ok := m.(*Expression); ok {
			out = append(out, e)
		}
	})
	return out
}

// FindProdders returns every Prodder below n.
func FindProdders(n Node) []*Prodder {
	var out []*Prodder
	Walk(n, func(m Node) {
		if p, ok := m.(*Prodder); ok {
			out = append(out, p)
		}
	})
	return out
}

// FindDereferences returns every Dereference below n.
func FindDereferences(n Node) []*Dereference {
	var out []*Dereference
	Walk(n, func(m Node) {
		if d, ok := m.(*Dereference); ok {
			out = append(out, d)
		}
	})
	return out
}

// FindTransferCalls returns every TransferCall below n.
func FindTransferCalls(n Node) []*TransferCall {
	var out []*TransferCall
	Walk(n, func(m Node) {
		if c, ok := m.(*TransferCall); ok {
			out = append(out, c)
		}
	})
	return out
}

// FindBuffers returns the buffers referenced below n, deduplicated in
// first-seen order. With writesOnly set, only buffers appearing as an
// expression output are returned.
func FindBuffers(n Node, writesOnly bool) []*Buffer {
	var out []*Buffer
	seen := make(map[*Buffer]bool)
	add := func(b *Buffer) {
		if b != nil && !seen[b] {
			seen[b] = true
			out = append(out, b)
		}
	}
	Walk(n, func(m Node) {
		switch v := m.(type) {
		case *Expression:
			add(v.Output.Buffer)
			if !writesOnly {
				for _, b := range v.Reads {
					add(b)
				}
			}
		case *Dereference:
			if !writesOnly {
				add(v.Buffer)
			}
		case *TransferCall:
			if !writesOnly {
				add(v.Buffer)
			}
		}
	})
	return out
}

// FindThreadSymbols returns the thread-count symbols the parallel
// annotations below n reference, deduplicated.
func FindThreadSymbols(n Node) []expr.Symbol {
	var out []expr.Symbol
	seen := make(map[expr.Symbol]bool)
	add := func(s expr.Symbol) {
		if s.Name != "" && !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	Walk(n, func(m Node) {
		switch v := m.(type) {
		case *ParallelIteration:
			add(v.NThreads)
		case *ParallelTree:
			add(v.NThreads)
		case *ParallelRegion:
			add(v.NThreads)
		}
	})
	return out
}

// Trees returns every maximal loop nest below n as the chain of iterations
// from the outermost loop to one innermost loop. Parallel annotations are
// transparent: the chain carries the wrapped Iteration.
func Trees(n Node) [][]*Iteration {
	var out [][]*Iteration
	for _, root := range innerIterations(n) {
		collectChains(root, nil, &out)
	}
	return out
}

func collectChains(it *Iteration, prefix []*Iteration, out *[][]*Iteration) {
	chain := make([]*Iteration, 0, len(prefix)+1)
	chain = append(chain, prefix...)
	chain = append(chain, it)

	var inner []*Iteration
	for _, c := range it.Body {
		inner = append(inner, innerIterations(c)...)
	}
	if len(inner) == 0 {
		*out = append(*out, chain)
		return
	}
	for _, c := range inner {
		collectChains(c, chain, out)
	}
}

// innerIterations returns the first Iteration on each path below n, not
// descending past it.
func innerIterations(n Node) []*Iteration {
	switch v := n.(type) {
	case *Iteration:
		return []*Iteration{v}
	case *ParallelIteration:
		return []*Iteration{v.It}
	case *DeviceIteration:
		return []*Iteration{v.It}
	case *ExpressionBundle:
		return innerIterationsOf(v.Body)
	case *List:
		return innerIterationsOf(v.Body)
	case *Conditional:
		return innerIterationsOf(v.Then)
	case *Block:
		return innerIterationsOf(v.Body)
	case *Callable:
		return innerIterationsOf(v.Body)
	case *ParallelTree:
		return innerIterations(v.Root)
	case *ParallelRegion:
		return innerIterations(v.Tree)
	}
	return nil
}

func innerIterationsOf(nodes []Node) []*Iteration {
	var out []*Iteration
	for _, n := range nodes {
		out = append(out, innerIterations(n)...)
	}
	return out
}

// IsPerfect reports whether the nest from root down to depth is perfect:
// every level in between contains the next loop and nothing else.
func IsPerfect(root, depth *Iteration) bool {
	cur := root
	for cur != depth {
		next := soleInnerIteration(cur.Body)
		if next == nil {
			return false
		}
		cur = next
	}
	return true
}

// soleInnerIteration returns the single Iteration making up body, seen
// through bare List wrappers, or nil if body holds anything else.
func soleInnerIteration(body []Node) *Iteration {
	if len(body) != 1 {
		return nil
	}
	switch c := body[0].(type) {
	case *Iteration:
		return c
	case *List:
		return soleInnerIteration(c.Body)
	}
	return nil
}
