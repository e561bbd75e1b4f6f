package vtk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// every permutation must be a bijection on the node set
func assertBijection(t *testing.T, perm []int) {
	t.Helper()
	seen := make([]bool, len(perm))
	for lex, v := range perm {
		require.GreaterOrEqual(t, v, 0, "lex %d", lex)
		require.Less(t, v, len(perm), "lex %d", lex)
		require.False(t, seen[v], "vtk position %d assigned twice", v)
		seen[v] = true
	}
}

func TestLagrangePermutationBijective(t *testing.T) {
	for _, d := range []int{1, 2, 3} {
		for nq := 2; nq <= 6; nq++ {
			assertBijection(t, lagrangePermutation(nq, d))
		}
	}
}

func TestLagrangeCurveOrdering(t *testing.T) {
	// order 3 curve: endpoints first, then the interior run
	perm := lagrangePermutation(4, 1)
	assert.Equal(t, []int{0, 2, 3, 1}, perm)
}

// TestLagrangeQuadOrderingOrder2 pins the full 3x3 permutation against
// VTK's quadrilateral numbering: corners 0-3 counterclockwise from the
// origin, edge midpoints 4-7 (bottom, right, top, left), center 8.
func TestLagrangeQuadOrderingOrder2(t *testing.T) {
	perm := lagrangePermutation(3, 2)
	require.Len(t, perm, 9)

	want := map[[2]int]int{
		{0, 0}: 0, {2, 0}: 1, {2, 2}: 2, {0, 2}: 3,
		{1, 0}: 4, {2, 1}: 5, {1, 2}: 6, {0, 1}: 7,
		{1, 1}: 8,
	}
	for ij, vtkPos := range want {
		lex := ij[0] + 3*ij[1]
		assert.Equal(t, vtkPos, perm[lex], "node (%d,%d)", ij[0], ij[1])
	}
}

// TestLagrangeHexOrderingOrder2 spot-checks the 27-node hexahedron:
// 8 corners, 12 edge midpoints, 6 face centers, 1 body center
func TestLagrangeHexOrderingOrder2(t *testing.T) {
	perm := lagrangePermutation(3, 3)
	require.Len(t, perm, 27)
	assertBijection(t, perm)

	lex := func(i, j, k int) int { return i + 3*(j+3*k) }

	// corners, bottom face then top face, counterclockwise
	assert.Equal(t, 0, perm[lex(0, 0, 0)])
	assert.Equal(t, 1, perm[lex(2, 0, 0)])
	assert.Equal(t, 2, perm[lex(2, 2, 0)])
	assert.Equal(t, 3, perm[lex(0, 2, 0)])
	assert.Equal(t, 4, perm[lex(0, 0, 2)])
	assert.Equal(t, 5, perm[lex(2, 0, 2)])
	assert.Equal(t, 6, perm[lex(2, 2, 2)])
	assert.Equal(t, 7, perm[lex(0, 2, 2)])

	// first bottom edge midpoint and first vertical edge midpoint
	assert.Equal(t, 8, perm[lex(1, 0, 0)])
	assert.Equal(t, 16, perm[lex(0, 0, 1)])

	// face centers: x-min, x-max, y-min, y-max, z-min, z-max
	assert.Equal(t, 20, perm[lex(0, 1, 1)])
	assert.Equal(t, 21, perm[lex(2, 1, 1)])
	assert.Equal(t, 22, perm[lex(1, 0, 1)])
	assert.Equal(t, 23, perm[lex(1, 2, 1)])
	assert.Equal(t, 24, perm[lex(1, 1, 0)])
	assert.Equal(t, 25, perm[lex(1, 1, 2)])

	// body center is last
	assert.Equal(t, 26, perm[lex(1, 1, 1)])
}
