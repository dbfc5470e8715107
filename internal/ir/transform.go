package ir

import "fmt"

// Subs is a write-once substitution map from original nodes to their
// replacements. Registering two replacements for one node is a defect in
// the calling pass.
type Subs struct {
	m map[Node]Node
}

// NewSubs returns an empty substitution map.
func NewSubs() *Subs {
	return &Subs{m: make(map[Node]Node)}
}

// Put registers a replacement. It panics if orig is already mapped.
func (s *Subs) Put(orig, repl Node) {
	if _, dup := s.m[orig]; dup {
		panic(fmt.Sprintf("ir: node %T substituted twice", orig))
	}
	s.m[orig] = repl
}

// Has reports whether orig is already mapped.
func (s *Subs) Has(orig Node) bool {
	_, ok := s.m[orig]
	return ok
}

// Empty reports whether no substitutions are registered.
func (s *Subs) Empty() bool { return len(s.m) == 0 }

// Transform applies the substitution map to the tree rooted at n, rebuilding
// only the spines above replaced nodes. Replacement subtrees are inserted
// as-is, not descended into. Unchanged subtrees are shared with the input.
func Transform(n Node, s *Subs) Node {
	if n == nil || s == nil || s.Empty() {
		return n
	}
	return rebuild(n, s)
}

func rebuild(n Node, s *Subs) Node {
	if repl, ok := s.m[n]; ok {
		return repl
	}
	switch v := n.(type) {
	case *Iteration:
		if body, changed := rebuildAll(v.Body, s); changed {
			c := *v
			c.Body = body
			return &c
		}
	case *ExpressionBundle:
		if body, changed := rebuildAll(v.Body, s); changed {
			c := *v
			c.Body = body
			return &c
		}
	case *List:
		if body, changed := rebuildAll(v.Body, s); changed {
			c := *v
			c.Body = body
			return &c
		}
	case *Conditional:
		if then, changed := rebuildAll(v.Then, s); changed {
			c := *v
			c.Then = then
			return &c
		}
	case *Block:
		if body, changed := rebuildAll(v.Body, s); changed {
			c := *v
			c.Body = body
			return &c
		}
	case *Callable:
		if body, changed := rebuildAll(v.Body, s); changed {
			c := *v
			c.Body = body
			return &c
		}
	case *ParallelIteration:
		if it := rebuild(v.It, s); it != v.It {
			c := *v
			c.It = it.(*Iteration)
			return &c
		}
	case *DeviceIteration:
		if it := rebuild(v.It, s); it != v.It {
			c := *v
			c.It = it.(*Iteration)
			return &c
		}
	case *ParallelTree:
		prefix, pchanged := rebuildAll(v.Prefix, s)
		root := rebuild(v.Root, s)
		if pchanged || root != v.Root {
			c := *v
			c.Prefix = prefix
			c.Root = root
			return &c
		}
	case *ParallelRegion:
		if tree := rebuild(v.Tree, s); tree != Node(v.Tree) {
			c := *v
			c.Tree = tree.(*ParallelTree)
			return &c
		}
	}
	return n
}

func rebuildAll(nodes []Node, s *Subs) ([]Node, bool) {
	changed := false
	out := nodes
	for i, n := range nodes {
		r := rebuild(n, s)
		if r != n {
			if !changed {
				out = make([]Node, len(nodes))
				copy(out, nodes)
				changed = true
			}
			out[i] = r
		}
	}
	return out, changed
}
