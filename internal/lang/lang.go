// Package lang defines the dialect construct table: the fixed set of
// directive builders a target language must supply for the parallelization
// passes to emit annotations. The concrete rendering of each construct lives
// in the dialect subpackages.
package lang

import "fmt"

// Builder renders one directive construct from its textual arguments. The
// argument shape is fixed per construct key.
type Builder func(args ...string) string

// Construct keys the passes query. A dialect not defining a queried key is
// a fatal configuration defect, never a silent fallback.
const (
	Header         = "header"
	ThreadNum      = "thread-num"
	Atomic         = "atomic"
	SIMDFor        = "simd-for"
	SIMDForAligned = "simd-for-aligned"
	MapEnterTo     = "map-enter-to"
	MapEnterAlloc  = "map-enter-alloc"
	MapUpdate      = "map-update"
	MapUpdateHost  = "map-update-host"
	MapUpdateDev   = "map-update-device"
	MapRelease     = "map-release"
	MapExitDelete  = "map-exit-delete"
)

// Constructs maps construct keys to directive builders.
type Constructs map[string]Builder

// Get returns the builder for key, or an error when the dialect does not
// define it.
func (c Constructs) Get(key string) (Builder, error) {
	b, ok := c[key]
	if !ok {
		return nil, fmt.Errorf("lang: construct %q not defined by dialect", key)
	}
	return b, nil
}

// MustGet is Get for construct keys whose absence is a defect in the
// dialect wiring itself.
func (c Constructs) MustGet(key string) Builder {
	b, err := c.Get(key)
	if err != nil {
		panic(err)
	}
	return b
}
