package nodal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildBuffer fills a [node, component, element] buffer with values
// encoding their own position, so layout mistakes show up as wrong
// values rather than silent transposes
func buildBuffer(np, ncomp, k int) []float64 {
	buf := make([]float64, np*ncomp*k)
	for e := 0; e < k; e++ {
		for c := 0; c < ncomp; c++ {
			for n := 0; n < np; n++ {
				buf[n+np*(c+ncomp*e)] = float64(100*e + 10*c + n)
			}
		}
	}
	return buf
}

func TestStateFieldsLayout(t *testing.T) {
	np, ncomp, k := 4, 3, 2
	buf := buildBuffer(np, ncomp, k)

	fields, err := StateFields(buf, np, ncomp, k)
	require.NoError(t, err)
	require.Len(t, fields, ncomp)

	for c := 0; c < ncomp; c++ {
		assert.Equal(t, np, fields[c].Np())
		assert.Equal(t, k, fields[c].K())
		for e := 0; e < k; e++ {
			for n := 0; n < np; n++ {
				assert.Equal(t, float64(100*e+10*c+n), fields[c].At(n, e))
			}
		}
	}
}

func TestStateFieldsAreViews(t *testing.T) {
	np, ncomp, k := 2, 2, 2
	buf := buildBuffer(np, ncomp, k)

	fields, err := StateFields(buf, np, ncomp, k)
	require.NoError(t, err)

	// Accessors never copy: a write to the source buffer must be
	// visible through the view
	buf[np*1] = -42. // node 0, component 1, element 0
	assert.Equal(t, -42., fields[1].At(0, 0))
}

func TestGeometryFieldNames(t *testing.T) {
	np, k := 8, 3
	buf := buildBuffer(np, 3, k)

	coords, err := GeometryFields(buf, np, D3, k)
	require.NoError(t, err)
	require.Len(t, coords, 3)
	assert.Equal(t, "X", coords[0].Name)
	assert.Equal(t, "Y", coords[1].Name)
	assert.Equal(t, "Z", coords[2].Name)
}

func TestShapeMismatch(t *testing.T) {
	buf := make([]float64, 10)

	_, err := StateFields(buf, 4, 3, 2) // wants 24 values
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrShapeMismatch)

	_, err = GeometryFields(buf, 5, D2, 2) // wants 20 values
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestSelectElements(t *testing.T) {
	np, ncomp, k := 3, 1, 4
	buf := buildBuffer(np, ncomp, k)

	fields, err := StateFields(buf, np, ncomp, k)
	require.NoError(t, err)

	sub, err := fields[0].SelectElements([]int{0, 2})
	require.NoError(t, err)
	assert.Equal(t, 2, sub.K())
	for n := 0; n < np; n++ {
		assert.Equal(t, fields[0].At(n, 0), sub.At(n, 0))
		assert.Equal(t, fields[0].At(n, 2), sub.At(n, 1))
	}

	_, err = fields[0].SelectElements([]int{5})
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestMatrixRoundTrip(t *testing.T) {
	np, ncomp, k := 4, 2, 3
	buf := buildBuffer(np, ncomp, k)

	fields, err := StateFields(buf, np, ncomp, k)
	require.NoError(t, err)

	M := fields[1].Matrix()
	nr, nc := M.Dims()
	assert.Equal(t, np, nr)
	assert.Equal(t, k, nc)

	back := FieldFromMatrix("rt", M)
	for e := 0; e < k; e++ {
		for n := 0; n < np; n++ {
			assert.Equal(t, fields[1].At(n, e), back.At(n, e))
		}
	}
}

func TestNewFieldExtentCheck(t *testing.T) {
	_, err := NewField("bad", 3, 2, make([]float64, 5))
	assert.ErrorIs(t, err, ErrShapeMismatch)

	f, err := NewField("ok", 3, 2, make([]float64, 6))
	require.NoError(t, err)
	assert.Equal(t, 3, f.Np())
	assert.Equal(t, 2, f.K())
}
