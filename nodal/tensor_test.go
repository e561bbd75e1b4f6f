package nodal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestTensorOrderingConvention pins the flattening contract: the first
// physical axis varies fastest in the flattened node index, so
// node = ix + Nq*(iy + Nq*iz). Both the accessors and the mesh writers
// rely on this; changing it silently would scramble every export.
func TestTensorOrderingConvention(t *testing.T) {
	nq := 3
	np := nq * nq
	data := make([]float64, np)
	for iy := 0; iy < nq; iy++ {
		for ix := 0; ix < nq; ix++ {
			data[ix+nq*iy] = float64(10*iy + ix)
		}
	}
	f, err := NewField("conv", np, 1, data)
	require.NoError(t, err)

	tensor, err := NewTensor(f, D2)
	require.NoError(t, err)
	assert.Equal(t, nq, tensor.Nq)

	for iy := 0; iy < nq; iy++ {
		for ix := 0; ix < nq; ix++ {
			assert.Equal(t, float64(10*iy+ix), tensor.At(ix, iy, 0, 0),
				"node (%d,%d) must sit at flat index %d", ix, iy, ix+nq*iy)
		}
	}
}

func TestTensorShapeCheck(t *testing.T) {
	f, err := NewField("f", 10, 1, make([]float64, 10))
	require.NoError(t, err)

	// 10 is not nq^2 for any nq
	_, err = NewTensor(f, D2)
	assert.ErrorIs(t, err, ErrShapeMismatch)

	// but it is nq^1 for nq=10
	tensor, err := NewTensor(f, D1)
	require.NoError(t, err)
	assert.Equal(t, 10, tensor.Nq)
}

func TestTensorFlattenRoundTrip(t *testing.T) {
	nq, k := 2, 3
	np := nq * nq * nq
	data := make([]float64, np*k)
	for i := range data {
		data[i] = float64(i) * 0.7311
	}
	f, err := NewField("rt", np, k, data)
	require.NoError(t, err)

	tensor, err := NewTensor(f, D3)
	require.NoError(t, err)

	// pure reinterpretation: flattening must reproduce the source
	// bit-for-bit
	flat := tensor.Flatten()
	require.Len(t, flat, len(data))
	for i := range data {
		assert.Equal(t, data[i], flat[i])
	}
}

func TestTensorAcrossElements(t *testing.T) {
	nq, k := 2, 2
	np := nq * nq
	data := make([]float64, np*k)
	for e := 0; e < k; e++ {
		for n := 0; n < np; n++ {
			data[n+e*np] = float64(100*e + n)
		}
	}
	f, err := NewField("elems", np, k, data)
	require.NoError(t, err)

	tensor, err := NewTensor(f, D2)
	require.NoError(t, err)
	assert.Equal(t, k, tensor.K())
	assert.Equal(t, 100., tensor.At(0, 0, 0, 1))
	assert.Equal(t, 103., tensor.At(1, 1, 0, 1))
}
