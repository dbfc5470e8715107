// Package platform describes the hardware shape the parallelization
// heuristics are tuned against: physical core count, hyperthreading degree
// and SIMD register width.
package platform

import (
	"runtime"
)

// Platform is the descriptor consumed by the parallelization passes.
type Platform struct {
	CoresPhysical  int
	ThreadsPerCore int
	SIMDRegSize    int // bytes
}

// SIMDItems returns how many items of the given width fit one SIMD register.
func (p Platform) SIMDItems(itemBytes int) int {
	if itemBytes <= 0 {
		return 1
	}
	return p.SIMDRegSize / itemBytes
}

// Detect probes the host. Probing is best-effort: when the OS exposes no
// topology the logical CPU count is taken as physical with no
// hyperthreading.
func Detect() Platform {
	p := Platform{
		CoresPhysical:  runtime.NumCPU(),
		ThreadsPerCore: 1,
		SIMDRegSize:    16,
	}
	refineFromHost(&p)
	return p
}
