package nodal

import (
	"fmt"
)

// Tensor reinterprets a flattened Field as a d-dimensional
// tensor-product node array plus a trailing element axis:
// shape (Nq, Nq, ..., K) with d leading axes of extent Nq.
//
// The reinterpretation is pure: no data moves. The flattened node index
// and the tensor axes agree on the convention that the FIRST physical
// axis varies fastest, so for d=3
//
//	node = ix + Nq*iy + Nq*Nq*iz
//
// This matches the ordering produced by the field accessors and is
// relied on by the mesh writers.
type Tensor struct {
	Name string
	Nq   int
	Dim  Dimensionality

	field Field
}

// NewTensor checks that the field's node extent is Nq^d for some
// integer Nq and returns the tensor view
func NewTensor(f Field, dim Dimensionality) (t Tensor, err error) {
	nq, ok := perAxisExtent(f.Np(), dim.NumAxes())
	if !ok {
		err = fmt.Errorf("%w: field %s has %d nodes per element, not a tensor grid for %d axes",
			ErrShapeMismatch, f.Name, f.Np(), dim.NumAxes())
		return
	}
	t = Tensor{Name: f.Name, Nq: nq, Dim: dim, field: f}
	return
}

// perAxisExtent finds nq with nq^d == np by integer search
func perAxisExtent(np, d int) (nq int, ok bool) {
	for nq = 1; ; nq++ {
		p := 1
		for i := 0; i < d; i++ {
			p *= nq
		}
		if p == np {
			return nq, true
		}
		if p > np {
			return 0, false
		}
	}
}

// K returns the element count
func (t Tensor) K() int { return t.field.K() }

// NodeIndex flattens tensor node coordinates, first axis fastest.
// Axes beyond the tensor's dimensionality must be passed as 0.
func (t Tensor) NodeIndex(ix, iy, iz int) int {
	return ix + t.Nq*(iy+t.Nq*iz)
}

// At returns the value at tensor node (ix, iy, iz) of an element
func (t Tensor) At(ix, iy, iz, elem int) float64 {
	return t.field.At(t.NodeIndex(ix, iy, iz), elem)
}

// AtNode returns the value at a flattened node index of an element
func (t Tensor) AtNode(node, elem int) float64 {
	return t.field.At(node, elem)
}

// Flatten copies the tensor back into a contiguous flattened array,
// node index fastest then element. Round-trips bit-for-bit with the
// source field.
func (t Tensor) Flatten() (data []float64) {
	np := t.field.Np()
	data = make([]float64, np*t.field.K())
	for e := 0; e < t.field.K(); e++ {
		for i := 0; i < np; i++ {
			data[i+e*np] = t.field.At(i, e)
		}
	}
	return
}
