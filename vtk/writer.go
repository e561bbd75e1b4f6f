package vtk

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/thomasgibson/dgviz/nodal"
)

// Legacy VTK cell type tags
const (
	vtkLine       = 3
	vtkQuad       = 9
	vtkHexahedron = 12

	vtkLagrangeCurve         = 68
	vtkLagrangeQuadrilateral = 70
	vtkLagrangeHexahedron    = 72
)

// Writer emits legacy ASCII VTK unstructured-grid files. It implements
// the mesh writer contract of the export pipeline: WriteRaw connects
// adjacent solution nodes as linear cells, WriteHighOrder emits one
// arbitrary-order Lagrange cell per element.
type Writer struct {
	// Dir is the output directory; empty means the working directory
	Dir string

	// Title is the dataset title line, defaulted if empty
	Title string
}

// NewWriter returns a writer targeting the given directory
func NewWriter(dir string) *Writer {
	return &Writer{Dir: dir}
}

// WriteRaw writes the native nodal boxes as linear cells: each element
// contributes (Nq-1)^d cells, so the visualization mesh is finer than
// the element mesh by the node spacing.
func (w *Writer) WriteRaw(prefix string, coords, fields []nodal.Tensor) error {
	return w.writeFile(prefix, coords, fields, func(fw *bufio.Writer, t nodal.Tensor) {
		writeLinearCells(fw, t)
	})
}

// WriteHighOrder writes one Lagrange-type cell per element with
// samplesPerAxis points per axis, in VTK's Lagrange point ordering.
func (w *Writer) WriteHighOrder(prefix string, coords, fields []nodal.Tensor, samplesPerAxis int) error {
	return w.writeFile(prefix, coords, fields, func(fw *bufio.Writer, t nodal.Tensor) {
		writeLagrangeCells(fw, t)
	})
}

func (w *Writer) writeFile(prefix string, coords, fields []nodal.Tensor,
	cells func(*bufio.Writer, nodal.Tensor)) error {
	if len(coords) == 0 {
		return fmt.Errorf("no coordinate tensors")
	}
	name := filepath.Join(w.Dir, prefix+".vtk")
	f, err := os.Create(name)
	if err != nil {
		return err
	}

	fw := bufio.NewWriter(f)
	title := w.Title
	if title == "" {
		title = "dgviz nodal field export"
	}
	fmt.Fprintf(fw, "# vtk DataFile Version 3.0\n")
	fmt.Fprintf(fw, "%s\n", title)
	fmt.Fprintf(fw, "ASCII\n")
	fmt.Fprintf(fw, "DATASET UNSTRUCTURED_GRID\n")

	writePoints(fw, coords)
	cells(fw, coords[0])
	writePointData(fw, fields)

	if err = fw.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// writePoints emits all nodes of all elements, element major with the
// flattened node index (first axis fastest) inside each element. Cell
// connectivity below relies on this point numbering.
func writePoints(fw *bufio.Writer, coords []nodal.Tensor) {
	t := coords[0]
	np := pow(t.Nq, t.Dim.NumAxes())
	total := np * t.K()
	fmt.Fprintf(fw, "POINTS %d double\n", total)
	for e := 0; e < t.K(); e++ {
		for i := 0; i < np; i++ {
			var xyz [3]float64
			for c := range coords {
				xyz[c] = coords[c].AtNode(i, e)
			}
			fmt.Fprintf(fw, "%16.9e %16.9e %16.9e\n", xyz[0], xyz[1], xyz[2])
		}
	}
}

// writeLinearCells connects each pair of adjacent nodes along every
// axis into a linear cell: lines in 1D, quads in 2D, hexahedra in 3D
func writeLinearCells(fw *bufio.Writer, t nodal.Tensor) {
	var (
		d        = t.Dim.NumAxes()
		nq       = t.Nq
		np       = pow(nq, d)
		perElem  = pow(nq-1, d)
		nCells   = perElem * t.K()
		cellSize = 1 << d // 2, 4 or 8 corners
	)
	fmt.Fprintf(fw, "CELLS %d %d\n", nCells, nCells*(cellSize+1))
	for e := 0; e < t.K(); e++ {
		base := e * np
		switch d {
		case 1:
			for i := 0; i < nq-1; i++ {
				fmt.Fprintf(fw, "2 %d %d\n", base+i, base+i+1)
			}
		case 2:
			for j := 0; j < nq-1; j++ {
				for i := 0; i < nq-1; i++ {
					n00 := base + t.NodeIndex(i, j, 0)
					n10 := base + t.NodeIndex(i+1, j, 0)
					n11 := base + t.NodeIndex(i+1, j+1, 0)
					n01 := base + t.NodeIndex(i, j+1, 0)
					fmt.Fprintf(fw, "4 %d %d %d %d\n", n00, n10, n11, n01)
				}
			}
		case 3:
			for k := 0; k < nq-1; k++ {
				for j := 0; j < nq-1; j++ {
					for i := 0; i < nq-1; i++ {
						fmt.Fprintf(fw, "8 %d %d %d %d %d %d %d %d\n",
							base+t.NodeIndex(i, j, k),
							base+t.NodeIndex(i+1, j, k),
							base+t.NodeIndex(i+1, j+1, k),
							base+t.NodeIndex(i, j+1, k),
							base+t.NodeIndex(i, j, k+1),
							base+t.NodeIndex(i+1, j, k+1),
							base+t.NodeIndex(i+1, j+1, k+1),
							base+t.NodeIndex(i, j+1, k+1))
					}
				}
			}
		}
	}
	cellType := [4]int{0, vtkLine, vtkQuad, vtkHexahedron}[d]
	fmt.Fprintf(fw, "CELL_TYPES %d\n", nCells)
	for c := 0; c < nCells; c++ {
		fmt.Fprintf(fw, "%d\n", cellType)
	}
}

// writeLagrangeCells emits one Lagrange cell per element, permuting
// the lexicographic node ordering into VTK's vertex/edge/face/interior
// ordering
func writeLagrangeCells(fw *bufio.Writer, t nodal.Tensor) {
	var (
		d    = t.Dim.NumAxes()
		nq   = t.Nq
		np   = pow(nq, d)
		perm = lagrangePermutation(nq, d)
	)
	fmt.Fprintf(fw, "CELLS %d %d\n", t.K(), t.K()*(np+1))
	conn := make([]int, np)
	for e := 0; e < t.K(); e++ {
		base := e * np
		for lex, vtkPos := range perm {
			conn[vtkPos] = base + lex
		}
		fmt.Fprintf(fw, "%d", np)
		for _, p := range conn {
			fmt.Fprintf(fw, " %d", p)
		}
		fmt.Fprintf(fw, "\n")
	}
	cellType := [4]int{0, vtkLagrangeCurve, vtkLagrangeQuadrilateral, vtkLagrangeHexahedron}[d]
	fmt.Fprintf(fw, "CELL_TYPES %d\n", t.K())
	for c := 0; c < t.K(); c++ {
		fmt.Fprintf(fw, "%d\n", cellType)
	}
}

// writePointData emits one SCALARS block per named field, in the same
// point numbering as writePoints
func writePointData(fw *bufio.Writer, fields []nodal.Tensor) {
	if len(fields) == 0 {
		return
	}
	t := fields[0]
	np := pow(t.Nq, t.Dim.NumAxes())
	fmt.Fprintf(fw, "POINT_DATA %d\n", np*t.K())
	for _, f := range fields {
		fmt.Fprintf(fw, "SCALARS %s double\n", f.Name)
		fmt.Fprintf(fw, "LOOKUP_TABLE default\n")
		for e := 0; e < f.K(); e++ {
			for i := 0; i < np; i++ {
				fmt.Fprintf(fw, "%16.9e\n", f.AtNode(i, e))
			}
		}
	}
}

func pow(base, exp int) (p int) {
	p = 1
	for i := 0; i < exp; i++ {
		p *= base
	}
	return
}
