package ir

import (
	"github.com/stencil-lang/stencil/internal/expr"
)

// Buffer is a data array referenced by the IET. The passes only consult
// buffers; allocation and layout are decided elsewhere.
type Buffer struct {
	Name    string
	Extents []expr.Expr // per-dimension size

	Heap        bool // allocated on the heap
	Local       bool // thread-local scratch, one logical copy per thread
	Aligned     bool // allocation is SIMD-aligned
	TimeHistory bool // retains full-run time history (saved time dimension)
}

// PointerArray is the shared array-of-per-thread-pointers a promoted
// thread-private buffer is accessed through inside a parallel region.
type PointerArray struct {
	Name   string
	Dim    expr.Symbol // thread-index dimension
	Buffer *Buffer
}
