package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	c := Constructs{
		Atomic: func(...string) string { return "#pragma omp atomic update" },
	}

	b, err := c.Get(Atomic)
	require.NoError(t, err)
	assert.Equal(t, "#pragma omp atomic update", b())
}

func TestGetMissingKeyIsError(t *testing.T) {
	c := Constructs{}
	_, err := c.Get(MapEnterTo)
	require.Error(t, err)
	assert.Contains(t, err.Error(), MapEnterTo)
}

func TestMustGetPanicsOnMissingKey(t *testing.T) {
	c := Constructs{}
	assert.Panics(t, func() { c.MustGet(SIMDFor) })
}
