package openmp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stencil-lang/stencil/internal/lang"
)

func TestHostConstructs(t *testing.T) {
	c := Host()

	tests := []struct {
		key  string
		args []string
		want string
	}{
		{lang.Header, nil, "omp.h"},
		{lang.ThreadNum, nil, "omp_get_thread_num()"},
		{lang.Atomic, nil, "#pragma omp atomic update"},
		{lang.SIMDFor, nil, "#pragma omp simd"},
		{lang.SIMDForAligned, []string{"u,v", "32"}, "#pragma omp simd aligned(u,v:32)"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			b, err := c.Get(tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.want, b(tt.args...))
		})
	}
}

func TestHostHasNoMappingConstructs(t *testing.T) {
	_, err := Host().Get(lang.MapEnterTo)
	assert.Error(t, err)
}

func TestDeviceConstructs(t *testing.T) {
	c := Device()

	tests := []struct {
		key  string
		args []string
		want string
	}{
		{lang.MapEnterTo, []string{"u", "[0:128]"}, "#pragma omp target enter data map(to: u[0:128])"},
		{lang.MapEnterAlloc, []string{"u", "[0:128]"}, "#pragma omp target enter data map(alloc: u[0:128])"},
		{lang.MapUpdate, []string{"u", "[0:128]"}, "#pragma omp target update from(u[0:128])"},
		{lang.MapUpdateHost, []string{"u", "[0:128]", ""}, "#pragma omp target update from(u[0:128])"},
		{lang.MapUpdateDev, []string{"u", "[0:128]", " nowait"}, "#pragma omp target update to(u[0:128]) nowait"},
		{lang.MapRelease, []string{"u", "[0:128]", " if(devicerm)"}, "#pragma omp target exit data map(release: u[0:128]) if(devicerm)"},
		{lang.MapExitDelete, []string{"u", "[0:128]", " if(devicerm && (128 != 0))"}, "#pragma omp target exit data map(delete: u[0:128]) if(devicerm && (128 != 0))"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			b, err := c.Get(tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.want, b(tt.args...))
		})
	}
}
