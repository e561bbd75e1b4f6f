package export

import (
	"errors"

	"github.com/thomasgibson/dgviz/nodal"
	"github.com/thomasgibson/dgviz/partitions"
)

var (
	ErrNameCountMismatch = errors.New("field name count mismatch")
	ErrWriterFailure     = errors.New("mesh writer failure")
)

// GridProvider is the solver-side collaborator supplying everything
// the export pipeline needs to interpret a state buffer: element node
// layout, reference coordinates and element ownership. The pipeline
// only reads from it.
type GridProvider interface {
	// Np returns nodes per element, Nq^d for tensor-product elements
	Np() int
	// Dims returns the spatial dimensionality
	Dims() nodal.Dimensionality
	// Order returns the polynomial order of the solution basis
	Order() int
	// RefNodes returns the 1D reference quadrature nodes in [-1,1],
	// strictly increasing, length Nq
	RefNodes() []float64
	// NumElements returns the local element count including halo
	NumElements() int
	// Coordinates returns physical node coordinates flattened as
	// [node, axis, element] with node varying fastest
	Coordinates() []float64
	// Ownership identifies the owned (non-halo) elements
	Ownership() *partitions.ElementOwnership
}

// MeshWriter is the downstream sink producing the on-disk
// visualization files. Both entry points receive geometry tensors (one
// per axis) and named field tensors covering only owned elements; the
// pipeline treats the writer as opaque and propagates its errors
// unchanged.
type MeshWriter interface {
	// WriteRaw emits the native solution nodes as a mesh of linear
	// cells, one cell per node interval per axis
	WriteRaw(prefix string, coords, fields []nodal.Tensor) error

	// WriteHighOrder emits one Lagrange-type cell per element,
	// sampled at samplesPerAxis uniform points per axis
	WriteHighOrder(prefix string, coords, fields []nodal.Tensor, samplesPerAxis int) error
}
