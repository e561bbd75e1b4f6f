package grid

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// LegendreGaussLobatto returns the p+1 Legendre-Gauss-Lobatto nodes on
// [-1,1], the standard collocation points of a nodal DG basis of order
// p. The interior nodes are the zeros of P'_p, computed as the
// eigenvalues of the Golub-Welsch tridiagonal matrix of the Jacobi
// (1,1) weight.
func LegendreGaussLobatto(p int) []float64 {
	if p == 0 {
		return []float64{0.0}
	}
	if p == 1 {
		return []float64{-1.0, 1.0}
	}

	interior := gaussJacobi11(p - 2)

	x := make([]float64, p+1)
	x[0] = -1.0
	copy(x[1:p], interior)
	x[p] = 1.0
	return x
}

// gaussJacobi11 returns the N+1 Gauss quadrature points of the Jacobi
// (alpha=1, beta=1) weight. With equal exponents the recurrence
// diagonal vanishes and only the off-diagonal terms remain.
func gaussJacobi11(N int) []float64 {
	if N == 0 {
		return []float64{0.0}
	}

	off := make([]float64, N)
	for i := 0; i < N; i++ {
		n := float64(i + 1)
		h := 2*float64(i) + 2
		off[i] = 2.0 / (h + 2.0) * math.Sqrt(
			n*(n+2)*(n+1)*(n+1)/(h+1)/(h+3))
	}

	JJ := symTriDiagonal(make([]float64, N+1), off)

	var eig mat.EigenSym
	if ok := eig.Factorize(JJ, false); !ok {
		panic("eigenvalue decomposition failed for quadrature nodes")
	}
	return eig.Values(nil)
}

func symTriDiagonal(d0, d1 []float64) *mat.SymDense {
	n := len(d0)
	Tri := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		Tri.SetSym(i, i, d0[i])
		if i < n-1 {
			Tri.SetSym(i, i+1, d1[i])
		}
	}
	return Tri
}
