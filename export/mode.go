package export

import (
	"github.com/thomasgibson/dgviz/nodal"
)

// exportMode is the output topology, resolved once at the start of a
// pipeline run instead of re-branching on the sample count at every
// step. rawExport keeps the native nodes and writes linear cells;
// highOrderExport resamples and writes one Lagrange cell per element.
type exportMode interface {
	// nodesPerAxis is the per-axis node count of the tensors handed
	// to the writer
	nodesPerAxis() int
	write(w MeshWriter, prefix string, coords, fields []nodal.Tensor) error
}

type rawExport struct {
	nq int // native nodes per axis
}

func (m rawExport) nodesPerAxis() int { return m.nq }

func (m rawExport) write(w MeshWriter, prefix string, coords, fields []nodal.Tensor) error {
	return w.WriteRaw(prefix, coords, fields)
}

type highOrderExport struct {
	samples int // uniform samples per axis
}

func (m highOrderExport) nodesPerAxis() int { return m.samples }

func (m highOrderExport) write(w MeshWriter, prefix string, coords, fields []nodal.Tensor) error {
	return w.WriteHighOrder(prefix, coords, fields, m.samples)
}
