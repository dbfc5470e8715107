// Package openmp supplies the OpenMP rendering of the dialect construct
// table, for host shared-memory regions and for device offload with
// explicit data-movement directives.
package openmp

import (
	"fmt"

	"github.com/stencil-lang/stencil/internal/lang"
)

// Host returns the construct table for host shared-memory parallelism.
func Host() lang.Constructs {
	return lang.Constructs{
		lang.Header:    func(...string) string { return "omp.h" },
		lang.ThreadNum: func(...string) string { return "omp_get_thread_num()" },
		lang.Atomic:    func(...string) string { return "#pragma omp atomic update" },
		lang.SIMDFor:   func(...string) string { return "#pragma omp simd" },
		lang.SIMDForAligned: func(args ...string) string {
			return fmt.Sprintf("#pragma omp simd aligned(%s:%s)", args[0], args[1])
		},
	}
}

// Device returns the construct table for device offload. It extends the
// host table with the data-mapping directives.
func Device() lang.Constructs {
	c := Host()
	c[lang.MapEnterTo] = func(args ...string) string {
		return fmt.Sprintf("#pragma omp target enter data map(to: %s%s)", args[0], args[1])
	}
	c[lang.MapEnterAlloc] = func(args ...string) string {
		return fmt.Sprintf("#pragma omp target enter data map(alloc: %s%s)", args[0], args[1])
	}
	c[lang.MapUpdate] = func(args ...string) string {
		return fmt.Sprintf("#pragma omp target update from(%s%s)", args[0], args[1])
	}
	c[lang.MapUpdateHost] = func(args ...string) string {
		return fmt.Sprintf("#pragma omp target update from(%s%s)%s", args[0], args[1], args[2])
	}
	c[lang.MapUpdateDev] = func(args ...string) string {
		return fmt.Sprintf("#pragma omp target update to(%s%s)%s", args[0], args[1], args[2])
	}
	c[lang.MapRelease] = func(args ...string) string {
		return fmt.Sprintf("#pragma omp target exit data map(release: %s%s)%s", args[0], args[1], args[2])
	}
	c[lang.MapExitDelete] = func(args ...string) string {
		return fmt.Sprintf("#pragma omp target exit data map(delete: %s%s)%s", args[0], args[1], args[2])
	}
	return c
}
