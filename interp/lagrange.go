package interp

import (
	"errors"
	"fmt"
	"math"

	"github.com/notargets/gocfd/utils"
)

var (
	ErrInvalidSampleCount = errors.New("invalid sample count")
	ErrDegenerateNodes    = errors.New("degenerate interpolation nodes")
)

// LagrangeBasis1D is the Lagrange interpolating basis through a set of
// 1D nodes, in barycentric form. At order P there are (P+1) basis
// polynomials; the j-th is 1 at node j and 0 at every other node.
type LagrangeBasis1D struct {
	P       int       // Order
	Np      int       // Dimension of basis = P+1
	Weights []float64 // Barycentric weights, one per basis polynomial
	Nodes   []float64 // Nodes at which basis is defined
}

// NewLagrangeBasis1D builds the basis defined by the given nodes.
// Nodes must be strictly increasing; coincident or out-of-order nodes
// make the barycentric weights singular.
func NewLagrangeBasis1D(R []float64) (lb *LagrangeBasis1D, err error) {
	if len(R) < 1 {
		err = fmt.Errorf("%w: empty node set", ErrDegenerateNodes)
		return
	}
	for i := 1; i < len(R); i++ {
		if R[i] <= R[i-1] {
			err = fmt.Errorf("%w: nodes must be strictly increasing, got %v at position %d after %v",
				ErrDegenerateNodes, R[i], i, R[i-1])
			return
		}
	}
	lb = &LagrangeBasis1D{
		P:       len(R) - 1,
		Np:      len(R),
		Weights: make([]float64, len(R)),
		Nodes:   R,
	}
	for j := 0; j < lb.Np; j++ {
		lb.Weights[j] = 1.
	}
	for j := 0; j < lb.Np; j++ {
		for i := 0; i < lb.Np; i++ {
			if i != j {
				lb.Weights[j] /= R[j] - R[i]
			}
		}
	}
	return
}

// InterpolationMatrix evaluates every basis polynomial at the points in
// R, producing the (len(R), Np) matrix that maps nodal values to
// interpolated values at R. The points in R need not coincide with the
// defining nodes of the basis.
func (lb *LagrangeBasis1D) InterpolationMatrix(R []float64) (im utils.Matrix) {
	im = utils.NewMatrix(len(R), lb.Np) // Rows are evaluation points, columns basis polynomials
	for j := 0; j < lb.Np; j++ {
		fj := lb.EvaluateBasisPolynomial(R, j)
		for i, val := range fj {
			im.Set(i, j, val)
		}
	}
	return
}

// EvaluateBasisPolynomial evaluates the j-th basis polynomial at all
// points in R
func (lb *LagrangeBasis1D) EvaluateBasisPolynomial(R []float64, j int) (f []float64) {
	f = make([]float64, len(R))
	for i, r := range R {
		if math.Abs(r-lb.Nodes[j]) < 1.e-10 {
			f[i] = 1.
			continue
		}
		f[i] = lb.evaluateL(r) * lb.Weights[j] / (r - lb.Nodes[j])
	}
	return
}

// evaluateL is the node polynomial term shared by all basis functions
// in the barycentric form
func (lb *LagrangeBasis1D) evaluateL(r float64) (f float64) {
	f = 1.
	for _, rr := range lb.Nodes {
		f *= r - rr
	}
	return
}

// UniformPoints returns m equally spaced points spanning [-1,1]
// inclusive. m == 1 degenerates to the single point {-1}.
func UniformPoints(m int) (R []float64, err error) {
	if m < 1 {
		err = fmt.Errorf("%w: need at least one destination point, got %d", ErrInvalidSampleCount, m)
		return
	}
	R = make([]float64, m)
	if m == 1 {
		R[0] = -1.
		return
	}
	h := 2. / float64(m-1)
	for i := range R {
		R[i] = -1. + float64(i)*h
	}
	R[m-1] = 1.
	return
}
