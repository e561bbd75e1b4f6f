package interp

import (
	"math"

	"github.com/notargets/gocfd/utils"
	"github.com/thomasgibson/dgviz/nodal"
	"gonum.org/v1/gonum/mat"
)

// NodeInterpolator resamples tensor-product nodal data from a source
// 1D node set onto m equally spaced points per axis. The d-dimensional
// operator is the d-fold Kronecker product of the 1D interpolation
// matrix with itself, shape (m^d, n^d). Because the 1D factor is the
// same on every axis, the Kronecker ordering is insensitive to which
// axis varies fastest in the flattened node index.
type NodeInterpolator struct {
	Dim nodal.Dimensionality
	M   int // destination samples per axis
	N   int // source nodes per axis

	I1D utils.Matrix // (M, N)
	IMD utils.Matrix // (M^d, N^d)
}

// NewNodeInterpolator builds the resampling operator from the source
// node coordinates (typically non-uniform quadrature nodes in [-1,1])
// to m uniform samples per axis, lifted to dim axes.
func NewNodeInterpolator(srcNodes []float64, m int, dim nodal.Dimensionality) (ni *NodeInterpolator, err error) {
	lb, err := NewLagrangeBasis1D(srcNodes)
	if err != nil {
		return
	}
	R, err := UniformPoints(m)
	if err != nil {
		return
	}
	i1d := lb.InterpolationMatrix(R)

	ni = &NodeInterpolator{
		Dim: dim,
		M:   m,
		N:   lb.Np,
		I1D: i1d,
		IMD: kroneckerPower(i1d, dim.NumAxes()),
	}
	return
}

// kroneckerPower lifts a 1D operator to d axes by repeated Kronecker
// product with itself
func kroneckerPower(A utils.Matrix, d int) (R utils.Matrix) {
	R = A
	for axis := 1; axis < d; axis++ {
		var K mat.Dense
		K.Kronecker(R.M, A.M)
		nr, nc := K.Dims()
		R = utils.NewMatrix(nr, nc, K.RawMatrix().Data)
	}
	return
}

// Resample applies the d-dimensional operator to a flattened field of
// shape (N^d, K), producing a new field of shape (M^d, K). One dense
// matmul covers all elements at once.
func (ni *NodeInterpolator) Resample(f nodal.Field) nodal.Field {
	return nodal.FieldFromMatrix(f.Name, ni.IMD.Mul(f.Matrix()))
}

// SampleCount returns the destination samples per axis
func (ni *NodeInterpolator) SampleCount() int { return ni.M }

// OperatorCache memoizes interpolators by source node set, sample
// count and dimensionality. Purely a performance optimization for
// repeated exports off the same grid; correctness never depends on a
// hit. Not safe for concurrent use, matching the single-threaded
// export pipeline.
type OperatorCache struct {
	ops map[operatorKey]*NodeInterpolator
}

type operatorKey struct {
	nodes string
	m     int
	dim   nodal.Dimensionality
}

func NewOperatorCache() *OperatorCache {
	return &OperatorCache{ops: make(map[operatorKey]*NodeInterpolator)}
}

// Get returns the cached interpolator for (srcNodes, m, dim), building
// and caching it on first use
func (c *OperatorCache) Get(srcNodes []float64, m int, dim nodal.Dimensionality) (ni *NodeInterpolator, err error) {
	key := operatorKey{nodes: fingerprint(srcNodes), m: m, dim: dim}
	if ni = c.ops[key]; ni != nil {
		return
	}
	if ni, err = NewNodeInterpolator(srcNodes, m, dim); err != nil {
		return
	}
	c.ops[key] = ni
	return
}

// fingerprint keys a node set by the exact bit patterns of its
// coordinates
func fingerprint(nodes []float64) string {
	b := make([]byte, 0, 8*len(nodes))
	for _, v := range nodes {
		u := math.Float64bits(v)
		for s := 0; s < 64; s += 8 {
			b = append(b, byte(u>>s))
		}
	}
	return string(b)
}
