package grid

import (
	"fmt"

	"github.com/thomasgibson/dgviz/nodal"
	"github.com/thomasgibson/dgviz/partitions"
)

// CartesianGrid is a structured tensor-product grid over an axis-
// aligned box, with Legendre-Gauss-Lobatto solution nodes per element.
// It satisfies the export pipeline's grid provider contract and serves
// as the reference implementation of the coordinate layout
// [node, axis, element] with node varying fastest.
type CartesianGrid struct {
	dim   nodal.Dimensionality
	order int
	nq    int

	cells    [3]int // elements per axis, unused axes 1
	lo, hi   [3]float64
	refNodes []float64
	coords   []float64

	ownership *partitions.ElementOwnership
}

// NewCartesianGrid builds a grid of order-p elements over the box
// [lo,hi] with cells[a] elements along axis a. cells, lo and hi must
// each have one entry per axis.
func NewCartesianGrid(dim nodal.Dimensionality, order int, cells []int, lo, hi []float64) (g *CartesianGrid, err error) {
	d := dim.NumAxes()
	if len(cells) != d || len(lo) != d || len(hi) != d {
		err = fmt.Errorf("need %d extents per axis argument, got cells=%d lo=%d hi=%d",
			d, len(cells), len(lo), len(hi))
		return
	}
	g = &CartesianGrid{
		dim:      dim,
		order:    order,
		nq:       order + 1,
		refNodes: LegendreGaussLobatto(order),
	}
	for a := 0; a < 3; a++ {
		g.cells[a] = 1
	}
	for a := 0; a < d; a++ {
		if cells[a] < 1 {
			err = fmt.Errorf("axis %d has %d elements", a, cells[a])
			return nil, err
		}
		if hi[a] <= lo[a] {
			err = fmt.Errorf("axis %d box extent [%v,%v] is empty", a, lo[a], hi[a])
			return nil, err
		}
		g.cells[a] = cells[a]
		g.lo[a] = lo[a]
		g.hi[a] = hi[a]
	}
	g.ownership = partitions.AllReal(g.NumElements())
	g.buildCoordinates()
	return
}

// SetOwnership replaces the default all-owned ownership, for
// partitioned runs where some local elements are halo copies
func (g *CartesianGrid) SetOwnership(own *partitions.ElementOwnership) error {
	if err := own.Validate(); err != nil {
		return err
	}
	if own.NumElements != g.NumElements() {
		return fmt.Errorf("ownership covers %d elements, grid has %d",
			own.NumElements, g.NumElements())
	}
	g.ownership = own
	return nil
}

func (g *CartesianGrid) Np() int {
	np := 1
	for a := 0; a < g.dim.NumAxes(); a++ {
		np *= g.nq
	}
	return np
}

func (g *CartesianGrid) Dims() nodal.Dimensionality { return g.dim }
func (g *CartesianGrid) Order() int                 { return g.order }
func (g *CartesianGrid) RefNodes() []float64        { return g.refNodes }

func (g *CartesianGrid) NumElements() int {
	return g.cells[0] * g.cells[1] * g.cells[2]
}

func (g *CartesianGrid) Coordinates() []float64 { return g.coords }

func (g *CartesianGrid) Ownership() *partitions.ElementOwnership { return g.ownership }

// buildCoordinates lays out physical node coordinates as
// [node, axis, element], node fastest within each element, elements
// ordered lexicographically by their (ex, ey, ez) cell index
func (g *CartesianGrid) buildCoordinates() {
	var (
		d  = g.dim.NumAxes()
		np = g.Np()
		k  = g.NumElements()
		h  [3]float64
	)
	for a := 0; a < d; a++ {
		h[a] = (g.hi[a] - g.lo[a]) / float64(g.cells[a])
	}
	g.coords = make([]float64, np*d*k)
	for e := 0; e < k; e++ {
		ex := e % g.cells[0]
		ey := (e / g.cells[0]) % g.cells[1]
		ez := e / (g.cells[0] * g.cells[1])
		cell := [3]int{ex, ey, ez}
		for n := 0; n < np; n++ {
			node := [3]int{
				n % g.nq,
				(n / g.nq) % g.nq,
				n / (g.nq * g.nq),
			}
			for a := 0; a < d; a++ {
				x := g.lo[a] + h[a]*(float64(cell[a])+(g.refNodes[node[a]]+1.)/2.)
				g.coords[n+np*(a+d*e)] = x
			}
		}
	}
}
