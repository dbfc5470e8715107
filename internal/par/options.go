package par

import (
	"github.com/xyproto/env/v2"
)

// Options are the tuning knobs of the parallelization passes.
type Options struct {
	// CollapseNCores is the minimum number of physical cores before a
	// collapse clause is attempted at all.
	CollapseNCores int

	// CollapseWork is the minimum statically-estimated iteration count of
	// the remaining inner loops for collapsing to continue.
	CollapseWork int

	// ChunkNonaffine is the divisor coefficient used when estimating a
	// runtime chunk size for non-affine nests.
	ChunkNonaffine int

	// DynamicWork is the operation-count threshold above which dynamic
	// scheduling is selected over static.
	DynamicWork int

	// Nested is the hyperthreads-per-core threshold that must be exceeded
	// before nested parallelism is introduced.
	Nested int

	// GPUFit names the buffers declared by configuration to fit entirely
	// in device memory.
	GPUFit map[string]bool

	// ParDisabled disables host fallback when a nest cannot be offloaded.
	ParDisabled bool
}

// DefaultOptions returns the stock thresholds, each overridable from the
// environment (STENCIL_PAR_*).
func DefaultOptions() Options {
	return Options{
		CollapseNCores: env.Int("STENCIL_PAR_COLLAPSE_NCORES", 4),
		CollapseWork:   env.Int("STENCIL_PAR_COLLAPSE_WORK", 100),
		ChunkNonaffine: env.Int("STENCIL_PAR_CHUNK_NONAFFINE", 3),
		DynamicWork:    env.Int("STENCIL_PAR_DYNAMIC_WORK", 10),
		Nested:         env.Int("STENCIL_PAR_NESTED", 2),
		GPUFit:         map[string]bool{},
		ParDisabled:    env.Bool("STENCIL_PAR_DISABLED"),
	}
}
